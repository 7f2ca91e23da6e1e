package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

type ProfileHandler struct {
	ps service.ProfileService
}

func NewProfileHandler(ps service.ProfileService) *ProfileHandler {
	return &ProfileHandler{ps: ps}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.ps.Get(c.Context(), GetUserID(c), GetEmail(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var req transfer.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.ps.Update(c.Context(), GetUserID(c), GetEmail(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(profile)
}
