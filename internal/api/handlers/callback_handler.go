package handlers

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
)

// CallbackHandler serves the endpoints the automation calls back into. They
// answer with {success, message|error}.
type CallbackHandler struct {
	cs service.CallbackService
}

func NewCallbackHandler(cs service.CallbackService) *CallbackHandler {
	return &CallbackHandler{cs: cs}
}

func callbackError(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status != fiber.StatusBadRequest && status != fiber.StatusNotFound {
		log.Println(err.Error())
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(transfer.CallbackResponse{Success: false, Error: err.Error()})
}

func (h *CallbackHandler) PublishStatus(c *fiber.Ctx) error {
	var cb transfer.PublishStatusCallback
	if err := c.BodyParser(&cb); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(transfer.CallbackResponse{Error: "Invalid payload"})
	}

	if err := h.cs.PublishStatus(c.Context(), cb); err != nil {
		return callbackError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(transfer.CallbackResponse{
		Success: true,
		Message: fmt.Sprintf("Rendering %s marked %s", cb.PlatformID, cb.Status),
	})
}

func (h *CallbackHandler) Slides(c *fiber.Ctx) error {
	var cb transfer.SlidesCallback
	if err := c.BodyParser(&cb); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(transfer.CallbackResponse{Error: "Invalid payload"})
	}

	updated, err := h.cs.ReplaceSlides(c.Context(), cb)
	if err != nil {
		return callbackError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(transfer.CallbackResponse{
		Success: true,
		Message: fmt.Sprintf("Replaced %d slides on %d renderings", len(cb.SlideImages), updated),
	})
}
