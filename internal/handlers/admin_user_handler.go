package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/models"
	"github.com/propertypinoy/website/internal/services"
)

type UserCreator interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*services.CreateUserResult, error)
}

type AdminUserHandler struct {
	users UserCreator
}

func NewAdminUserHandler(users UserCreator) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

// Create handles POST /api/admin/create-user. The route performs no
// authentication of its own; see the temporary admin page toggle.
func (h *AdminUserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := h.users.CreateUser(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			return jsonError(c, fiber.StatusBadRequest, "Missing required fields: email, password, firstName, lastName")
		case errors.Is(err, services.ErrIdentityCreate):
			slog.Error("auth user creation failed", "action", "create_user", "trace_id", traceID(c), "error", err)
			return jsonError(c, fiber.StatusInternalServerError, "Failed to create auth user")
		case errors.Is(err, services.ErrProfileCreate):
			return jsonError(c, fiber.StatusInternalServerError, "Failed to create user information")
		default:
			slog.Error("create user failed", "action", "create_user", "trace_id", traceID(c), "error", err)
			return jsonError(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateUserResponse{
		Message:   "User created successfully",
		User:      dto.UserResponse{ID: res.User.ID, Email: res.User.Email},
		UserInfo:  []models.UserProfile{*res.Profile},
		CompanyID: res.CompanyID,
	})
}
