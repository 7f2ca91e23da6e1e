package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/contentflow/configs"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/transfer"
	"github.com/maheshrc27/contentflow/pkg/utils"
)

const stateTTL = 10 * time.Minute

type CredentialHandler struct {
	cs  service.CredentialService
	cfg config.Config
}

func NewCredentialHandler(cs service.CredentialService, cfg config.Config) *CredentialHandler {
	return &CredentialHandler{cs: cs, cfg: cfg}
}

// Connect redirects to the consent page. state is a token signed with the
// API secret that identifies the user on the way back.
func (h *CredentialHandler) Connect(c *fiber.Ctx) error {
	state := c.Query("state")
	if _, err := utils.ValidateToken(h.cfg.JWTSecret, state); err != nil {
		return badRequest(c, "Unable to validate user")
	}

	authURL, err := h.cs.AuthURL(c.Params("service"), state)
	if err != nil {
		return respondError(c, err)
	}
	return c.Redirect(authURL)
}

func (h *CredentialHandler) Callback(c *fiber.Ctx) error {
	claims, err := utils.ValidateToken(h.cfg.JWTSecret, c.Query("state"))
	if err != nil {
		return badRequest(c, "Unable to validate user")
	}

	if err := h.cs.Connect(c.Context(), claims.Subject, c.Params("service"), c.Query("code")); err != nil {
		return respondError(c, err)
	}

	redirectURL := fmt.Sprintf("%s/settings/credentials", h.cfg.FrontendURL)
	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

// State issues the token the frontend passes to Connect.
func (h *CredentialHandler) State(c *fiber.Ctx) error {
	token, err := utils.GenerateToken(h.cfg.JWTSecret, GetUserID(c), GetEmail(c), stateTTL)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"state": token})
}

func (h *CredentialHandler) ListCredentials(c *fiber.Ctx) error {
	creds, err := h.cs.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(creds)
}

func (h *CredentialHandler) SaveWordPress(c *fiber.Ctx) error {
	var req transfer.WordPressCredentialRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.cs.SaveWordPress(c.Context(), GetUserID(c), req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *CredentialHandler) DeleteCredential(c *fiber.Ctx) error {
	if err := h.cs.Delete(c.Context(), GetUserID(c), c.Params("service")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
