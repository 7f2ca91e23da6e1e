package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/maheshrc27/contentflow/internal/projector"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/timeutil"
	"github.com/maheshrc27/contentflow/internal/webhook"
)

func GetUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

func GetEmail(c *fiber.Ctx) string {
	email, _ := c.Locals("email").(string)
	return email
}

func errorStatus(err error) int {
	var statusErr *webhook.StatusError
	switch {
	case errors.Is(err, service.ErrInvalidCardID),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrWebhookNotConfigured):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &statusErr),
		errors.Is(err, webhook.ErrRequestFailed),
		errors.Is(err, webhook.ErrUnexpectedResponse):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err verbatim with the status it maps to.
func respondError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Println(err.Error())
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}

// Viewer builds the per-request presentation settings for cards.
type Viewer struct {
	Locations     *timeutil.Locations
	DefaultLocale string
}

// Location resolves the caller's zone. The name outlives the request in the
// location cache, so it is copied out of fiber's reused buffer.
func (v Viewer) Location(c *fiber.Ctx) *time.Location {
	name := c.Get("X-Timezone")
	if name == "" {
		name = c.Query("tz")
	}
	return v.Locations.Resolve(utils.CopyString(name))
}

func (v Viewer) View(c *fiber.Ctx) projector.View {
	locale := c.Query("locale")
	if locale == "" {
		if lang := c.Get(fiber.HeaderAcceptLanguage); len(lang) >= 2 {
			locale = strings.ToLower(lang[:2])
		}
	}
	if locale == "" {
		locale = v.DefaultLocale
	}
	return projector.View{
		Now:      time.Now(),
		Location: v.Location(c),
		Locale:   locale,
	}
}
