package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/api/handlers"
	"github.com/maheshrc27/contentflow/internal/api/middleware"
)

type Handlers struct {
	Entries     *handlers.EntryHandler
	Cards       *handlers.CardHandler
	Profile     *handlers.ProfileHandler
	Credentials *handlers.CredentialHandler
	Callbacks   *handlers.CallbackHandler
}

func RegisterRoutes(app *fiber.App, h Handlers, auth *middleware.AuthMiddleware) {
	app.Get("/auth/:service", h.Credentials.Connect)
	app.Get("/auth/:service/callback", h.Credentials.Callback)

	hooks := app.Group("/webhooks", auth.WebhookSecret())
	hooks.Post("/publish-status", h.Callbacks.PublishStatus)
	hooks.Post("/slides", h.Callbacks.Slides)

	api := app.Group("/api")
	api.Use(auth.AuthMiddleware())

	api.Get("/entries", h.Entries.ListEntries)
	api.Post("/entries", h.Entries.GenerateEntry)
	api.Post("/entries/refresh", h.Entries.RefreshEntries)
	api.Put("/entries/:id", h.Entries.UpdateEntry)
	api.Delete("/entries/:id", h.Entries.DeleteEntry)
	api.Put("/entries/:id/content", h.Entries.SaveContent)

	api.Get("/cards", h.Cards.ListCards)
	api.Get("/calendar", h.Cards.Calendar)
	api.Put("/cards/:id", h.Cards.UpdateContent)
	api.Delete("/cards/:id", h.Cards.DeleteCard)
	api.Put("/cards/:id/image", h.Cards.UpdateImage)
	api.Post("/cards/:id/image/generate", h.Cards.GenerateImage)
	api.Put("/cards/:id/schedule", h.Cards.Schedule)
	api.Post("/cards/:id/publish", h.Cards.Publish)
	api.Post("/cards/:id/slides/download", h.Cards.DownloadSlides)
	api.Get("/cards/:id/images", h.Cards.ListImages)
	api.Post("/cards/:id/images", h.Cards.UploadImage)

	api.Get("/profile", h.Profile.GetProfile)
	api.Put("/profile", h.Profile.UpdateProfile)

	api.Get("/credentials", h.Credentials.ListCredentials)
	api.Get("/credentials/state", h.Credentials.State)
	api.Put("/credentials/wordpress", h.Credentials.SaveWordPress)
	api.Delete("/credentials/:service", h.Credentials.DeleteCredential)
}
