package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/identity"
)

const (
	mainLayout  = "layouts/main"
	adminLayout = "layouts/admin"
)

// Sessions is the cookie session surface the handlers use.
type Sessions interface {
	Resolve(c *fiber.Ctx) (*identity.User, error)
	Establish(c *fiber.Ctx, s *identity.Session)
	Clear(c *fiber.Ctx)
	AccessToken(c *fiber.Ctx) string
}

type Roles interface {
	IsAdmin(ctx context.Context, authUserID uuid.UUID) bool
}

// pages renders templates with the public site settings attached.
type pages struct {
	site config.Site
}

func (p pages) render(c *fiber.Ctx, view, layout string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Site"] = p.site
	return c.Render(view, data, layout)
}

func traceID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

func jsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}
