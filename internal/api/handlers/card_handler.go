package handlers

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/projector"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
	"github.com/maheshrc27/contentflow/internal/webhook"
)

type CardHandler struct {
	cs     service.CardService
	gs     service.GalleryService
	viewer Viewer
}

func NewCardHandler(cs service.CardService, gs service.GalleryService, viewer Viewer) *CardHandler {
	return &CardHandler{cs: cs, gs: gs, viewer: viewer}
}

func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	cards, err := h.cs.List(c.Context(), GetUserID(c), c.QueryBool("refresh", false), h.viewer.View(c))
	if err != nil {
		return respondError(c, err)
	}
	if cards == nil {
		cards = []projector.Card{}
	}
	return c.Status(fiber.StatusOK).JSON(cards)
}

// Calendar defaults to the current month in the caller's timezone.
func (h *CardHandler) Calendar(c *fiber.Ctx) error {
	view := h.viewer.View(c)
	now := view.Now.In(view.Location)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, view.Location)
	to := from.AddDate(0, 1, 0)

	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			return badRequest(c, "from must be an RFC 3339 time")
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			return badRequest(c, "to must be an RFC 3339 time")
		}
	}

	cards, err := h.cs.Calendar(c.Context(), GetUserID(c), from, to, view)
	if err != nil {
		return respondError(c, err)
	}
	if cards == nil {
		cards = []projector.Card{}
	}
	return c.Status(fiber.StatusOK).JSON(cards)
}

func (h *CardHandler) UpdateContent(c *fiber.Ctx) error {
	var req transfer.ContentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.cs.UpdateContent(c.Context(), GetUserID(c), c.Params("id"), req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	if err := h.cs.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *CardHandler) UpdateImage(c *fiber.Ctx) error {
	var req transfer.ImageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.cs.UpdateImage(c.Context(), GetUserID(c), c.Params("id"), req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *CardHandler) GenerateImage(c *fiber.Ctx) error {
	url, err := h.cs.GenerateImage(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(transfer.ImageRequest{ImageURL: url})
}

func (h *CardHandler) Schedule(c *fiber.Ctx) error {
	var req transfer.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	at, err := req.Instant(h.viewer.Location(c))
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err := h.cs.UpdateSchedule(c.Context(), GetUserID(c), c.Params("id"), at); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *CardHandler) Publish(c *fiber.Ctx) error {
	outcome, err := h.cs.Publish(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	switch o := outcome.(type) {
	case webhook.Immediate:
		return c.Status(fiber.StatusOK).JSON(transfer.PublishResponse{Status: o.Status, Link: o.Link})
	case webhook.Queued:
		return c.Status(fiber.StatusAccepted).JSON(transfer.PublishResponse{Queued: true, Status: o.Status})
	}
	return c.SendStatus(fiber.StatusInternalServerError)
}

func (h *CardHandler) DownloadSlides(c *fiber.Ctx) error {
	if err := h.cs.RequestSlideDownload(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

func (h *CardHandler) ListImages(c *fiber.Ctx) error {
	images, err := h.gs.List(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(images)
}

func (h *CardHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return respondError(c, err)
	}

	img, err := h.gs.Upload(c.Context(), GetUserID(c), c.Params("id"), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(img)
}
