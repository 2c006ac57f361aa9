package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/models"
)

type UserTypeLister interface {
	ListUserTypes(ctx context.Context) ([]models.UserType, error)
}

type UserTypeHandler struct {
	types UserTypeLister
}

func NewUserTypeHandler(types UserTypeLister) *UserTypeHandler {
	return &UserTypeHandler{types: types}
}

// List handles GET /api/user-types.
func (h *UserTypeHandler) List(c *fiber.Ctx) error {
	types, err := h.types.ListUserTypes(c.UserContext())
	if err != nil {
		slog.Error("list user types failed", "action", "list_user_types", "trace_id", traceID(c), "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to load user types")
	}

	result := make([]dto.UserTypeResponse, 0, len(types))
	for _, t := range types {
		result = append(result, dto.UserTypeResponse{ID: t.ID, TypeName: t.TypeName})
	}
	return c.JSON(result)
}
