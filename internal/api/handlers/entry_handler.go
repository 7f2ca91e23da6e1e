package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/normalize"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type EntryHandler struct {
	es service.EntryService
}

func NewEntryHandler(es service.EntryService) *EntryHandler {
	return &EntryHandler{es: es}
}

func (h *EntryHandler) ListEntries(c *fiber.Ctx) error {
	entries, err := h.es.List(c.Context(), GetUserID(c), c.QueryBool("refresh", false))
	if err != nil {
		return respondError(c, err)
	}
	if entries == nil {
		entries = []normalize.Entry{}
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}

func (h *EntryHandler) RefreshEntries(c *fiber.Ctx) error {
	entries, err := h.es.List(c.Context(), GetUserID(c), true)
	if err != nil {
		return respondError(c, err)
	}
	if entries == nil {
		entries = []normalize.Entry{}
	}
	return c.Status(fiber.StatusOK).JSON(entries)
}

func (h *EntryHandler) GenerateEntry(c *fiber.Ctx) error {
	var req transfer.EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	entry, err := h.es.Generate(c.Context(), GetUserID(c), GetEmail(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *EntryHandler) UpdateEntry(c *fiber.Ctx) error {
	var req transfer.EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.es.Update(c.Context(), GetUserID(c), c.Params("id"), req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// SaveContent accepts either the platformContent map or the platforms array.
func (h *EntryHandler) SaveContent(c *fiber.Ctx) error {
	var payload normalize.Payload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.es.SaveContent(c.Context(), GetUserID(c), c.Params("id"), payload); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *EntryHandler) DeleteEntry(c *fiber.Ctx) error {
	if err := h.es.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
