package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/models"
	"github.com/propertypinoy/website/internal/services"
)

type ContactSubmitter interface {
	Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactSubmission, error)
}

type ContactHandler struct {
	pages
	contacts ContactSubmitter
}

func NewContactHandler(contacts ContactSubmitter, site config.Site) *ContactHandler {
	return &ContactHandler{pages: pages{site: site}, contacts: contacts}
}

// Create handles POST /api/contact.
func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	row, err := h.contacts.Submit(c.UserContext(), req)
	if err != nil {
		status, message := contactFailure(c, err)
		return jsonError(c, status, message)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ContactResponse{
		Message: "Contact form submitted successfully",
		Data:    []models.ContactSubmission{*row},
	})
}

// Page renders the contact form.
func (h *ContactHandler) Page(c *fiber.Ctx) error {
	return h.render(c, "pages/contact", mainLayout, fiber.Map{"Title": "Contact", "Form": dto.ContactRequest{}})
}

// Submit handles the HTML form post and re-renders the page with the
// outcome.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		c.Status(fiber.StatusBadRequest)
		return h.render(c, "pages/contact", mainLayout, fiber.Map{"Title": "Contact", "Form": req, "Error": "Invalid form submission"})
	}

	if _, err := h.contacts.Submit(c.UserContext(), req); err != nil {
		status, message := contactFailure(c, err)
		c.Status(status)
		return h.render(c, "pages/contact", mainLayout, fiber.Map{"Title": "Contact", "Form": req, "Error": message})
	}
	return h.render(c, "pages/contact", mainLayout, fiber.Map{"Title": "Contact", "Form": dto.ContactRequest{}, "Success": true})
}

func contactFailure(c *fiber.Ctx, err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return fiber.StatusBadRequest, "Missing required fields"
	case errors.Is(err, services.ErrInvalidEmail):
		return fiber.StatusBadRequest, "Invalid email address"
	default:
		slog.Error("contact submission failed", "action", "contact_submit", "trace_id", traceID(c), "error", err)
		return fiber.StatusInternalServerError, "Failed to submit contact form"
	}
}
