package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/propertypinoy/website/internal/models"
	"github.com/propertypinoy/website/internal/repository"
)

// AdminRole is the only user type label granted admin access. Matching
// is exact and case-sensitive.
const AdminRole = "Admin"

var (
	ErrProfileNotFound = errors.New("no profile linked to identity")
	ErrRoleMissing     = errors.New("profile has no user type")
)

type ProfileFinder interface {
	FindProfileWithType(ctx context.Context, authUserID uuid.UUID) (*models.UserProfile, error)
}

// RoleService resolves the role label of an identity. The edge gate, the
// admin guard and the login handler all go through it.
type RoleService struct {
	profiles ProfileFinder
}

func NewRoleService(profiles ProfileFinder) *RoleService {
	return &RoleService{profiles: profiles}
}

// LookupRole returns the user type label of the profile linked to
// authUserID.
func (s *RoleService) LookupRole(ctx context.Context, authUserID uuid.UUID) (string, error) {
	profile, err := s.profiles.FindProfileWithType(ctx, authUserID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrProfileNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up role: %w", err)
	}
	if profile.UserType == nil || profile.UserType.TypeName == "" {
		return "", ErrRoleMissing
	}
	return profile.UserType.TypeName, nil
}

// IsAdmin reports whether authUserID is an admin. Any lookup failure
// denies.
func (s *RoleService) IsAdmin(ctx context.Context, authUserID uuid.UUID) bool {
	role, err := s.LookupRole(ctx, authUserID)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) && !errors.Is(err, ErrRoleMissing) {
			slog.Error("role lookup failed", "action", "role_lookup", "auth_user_id", authUserID.String(), "error", err)
		}
		return false
	}
	return role == AdminRole
}
