package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/identity"
	"github.com/propertypinoy/website/internal/metrics"
	"github.com/propertypinoy/website/internal/models"
	"github.com/propertypinoy/website/internal/normalize"
)

var (
	ErrIdentityCreate = errors.New("failed to create auth user")
	ErrProfileCreate  = errors.New("failed to create user information")
)

// IdentityAdmin is the administrative half of the identity provider.
type IdentityAdmin interface {
	AdminCreateUser(ctx context.Context, attrs identity.AdminUserAttributes) (*identity.User, error)
	AdminDeleteUser(ctx context.Context, id uuid.UUID) error
}

type UserStore interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	DeleteCompany(ctx context.Context, id uuid.UUID) error
	EnsureUserType(ctx context.Context, name string) (*models.UserType, error)
	EnsureUserStatus(ctx context.Context, key, label string) (*models.UserStatus, error)
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
}

type CreateUserResult struct {
	User      *identity.User
	Profile   *models.UserProfile
	CompanyID *uuid.UUID
}

type UserService struct {
	identity IdentityAdmin
	store    UserStore
	// compensationTimeout bounds the rollback calls, which run on a
	// context detached from the request.
	compensationTimeout time.Duration
}

func NewUserService(admin IdentityAdmin, store UserStore) *UserService {
	return &UserService{identity: admin, store: store, compensationTimeout: 10 * time.Second}
}

// CreateUser creates an identity and its profile, plus an optional
// company. Company and lookup failures are logged and skipped. When the
// profile insert fails, the company and identity created earlier are
// deleted again.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*CreateUserResult, error) {
	in := normalizeUser(req)
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		return nil, ErrMissingFields
	}

	user, err := s.identity.AdminCreateUser(ctx, identity.AdminUserAttributes{
		Email:        in.Email,
		Password:     in.Password,
		EmailConfirm: true,
		UserMetadata: map[string]any{
			"first_name": in.FirstName,
			"last_name":  in.LastName,
		},
	})
	if err != nil {
		metrics.UserCreations.WithLabelValues("identity_failed").Inc()
		return nil, fmt.Errorf("%w: %w", ErrIdentityCreate, err)
	}
	log := slog.With("action", "create_user", "auth_user_id", user.ID.String())

	var companyID *uuid.UUID
	if in.CompanyName != "" {
		company := companyFrom(in)
		if err := s.store.CreateCompany(ctx, company); err != nil {
			log.Error("company insert failed, continuing without company", "error", err)
		} else {
			companyID = &company.ID
		}
	}

	profile := &models.UserProfile{
		AuthUserID: user.ID,
		CompanyID:  companyID,
		UserTypeID: s.resolveUserType(ctx, log, in),
		StatusID:   s.resolveActiveStatus(ctx, log),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		MiddleName: normalize.Optional(in.MiddleName),
		Gender:     normalize.Optional(in.Gender),
		Birthdate:  normalize.Optional(in.Birthdate),
		Email:      in.Email,
		Phone:      normalize.Optional(in.Phone),
		Address:    normalize.Optional(in.Address),
		City:       normalize.Optional(in.City),
		Country:    normalize.Optional(in.Country),
	}
	if err := s.store.CreateProfile(ctx, profile); err != nil {
		log.Error("profile insert failed, rolling back", "error", err)
		s.compensate(ctx, log, user.ID, companyID)
		metrics.UserCreations.WithLabelValues("profile_failed").Inc()
		return nil, fmt.Errorf("%w: %w", ErrProfileCreate, err)
	}

	metrics.UserCreations.WithLabelValues("created").Inc()
	log.Info("user created", "company_id", companyID)
	return &CreateUserResult{User: user, Profile: profile, CompanyID: companyID}, nil
}

func (s *UserService) resolveUserType(ctx context.Context, log *slog.Logger, in dto.CreateUserRequest) *uuid.UUID {
	for _, ref := range []string{in.UserTypeID, in.UserType} {
		if id, err := uuid.Parse(ref); err == nil {
			return &id
		}
	}
	if in.UserType == "" {
		return nil
	}
	row, err := s.store.EnsureUserType(ctx, in.UserType)
	if err != nil {
		log.Error("user type ensure failed, continuing without type", "user_type", in.UserType, "error", err)
		return nil
	}
	return &row.ID
}

func (s *UserService) resolveActiveStatus(ctx context.Context, log *slog.Logger) *uuid.UUID {
	row, err := s.store.EnsureUserStatus(ctx, models.StatusActive, models.StatusActiveLabel)
	if err != nil {
		log.Error("user status ensure failed, continuing without status", "error", err)
		return nil
	}
	return &row.ID
}

func (s *UserService) compensate(ctx context.Context, log *slog.Logger, authUserID uuid.UUID, companyID *uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.compensationTimeout)
	defer cancel()

	if companyID != nil {
		if err := s.store.DeleteCompany(ctx, *companyID); err != nil {
			log.Error("orphaned company left behind", "company_id", companyID.String(), "error", err)
		}
	}
	if err := s.identity.AdminDeleteUser(ctx, authUserID); err != nil {
		metrics.UserCreations.WithLabelValues("orphaned").Inc()
		log.Error("orphaned auth user left behind", "error", err)
	}
}

func normalizeUser(req dto.CreateUserRequest) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Email:      normalize.Email(req.Email),
		Password:   req.Password,
		FirstName:  normalize.Name(req.FirstName),
		LastName:   normalize.Name(req.LastName),
		MiddleName: normalize.Name(req.MiddleName),
		Gender:     normalize.Text(req.Gender),
		Birthdate:  normalize.Text(req.Birthdate),
		Phone:      normalize.Phone(req.Phone),
		Address:    normalize.Name(req.Address),
		City:       normalize.Name(req.City),
		Country:    normalize.Name(req.Country),
		UserType:   normalize.Text(req.UserType),
		UserTypeID: normalize.Text(req.UserTypeID),

		CompanyName:    normalize.Name(req.CompanyName),
		CompanyType:    normalize.Text(req.CompanyType),
		Industry:       normalize.Text(req.Industry),
		RegistrationNo: normalize.Text(req.RegistrationNo),
		CompanyAddress: normalize.Name(req.CompanyAddress),
		CompanyCity:    normalize.Name(req.CompanyCity),
		CompanyCountry: normalize.Name(req.CompanyCountry),
		CompanyPhone:   normalize.Phone(req.CompanyPhone),
		CompanyEmail:   normalize.Email(req.CompanyEmail),
		Website:        normalize.Text(req.Website),
	}
}

func companyFrom(in dto.CreateUserRequest) *models.Company {
	return &models.Company{
		CompanyName:    in.CompanyName,
		CompanyType:    normalize.Optional(in.CompanyType),
		Industry:       normalize.Optional(in.Industry),
		RegistrationNo: normalize.Optional(in.RegistrationNo),
		Address:        normalize.Optional(in.CompanyAddress),
		City:           normalize.Optional(in.CompanyCity),
		Country:        normalize.Optional(in.CompanyCountry),
		Phone:          normalize.Optional(in.CompanyPhone),
		Email:          normalize.Optional(in.CompanyEmail),
		Website:        normalize.Optional(in.Website),
	}
}
