package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/propertypinoy/website/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Store is the gorm-backed access to the hosted relational backend.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindProfileWithType loads the profile linked to authUserID together
// with its user type.
func (s *Store) FindProfileWithType(ctx context.Context, authUserID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).
		Scopes(ForAuthUser(authUserID)).
		Preload("UserType").
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

func (s *Store) CreateCompany(ctx context.Context, company *models.Company) error {
	if err := s.db.WithContext(ctx).Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (s *Store) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Company{}, "id = ?", id).Error
}

// EnsureUserType returns the user type labelled name, creating it when
// absent. A single upsert on the unique type_name index removes the
// read-then-insert race between concurrent requests.
func (s *Store) EnsureUserType(ctx context.Context, name string) (*models.UserType, error) {
	description := name + " user type"
	row := models.UserType{TypeName: name, Description: &description}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type_name"}},
			DoUpdates: clause.Assignments(map[string]any{"type_name": gorm.Expr("EXCLUDED.type_name")}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user type %q: %w", name, err)
	}
	return &row, nil
}

func (s *Store) EnsureUserStatus(ctx context.Context, key, label string) (*models.UserStatus, error) {
	description := label + " user status"
	row := models.UserStatus{StatusKey: key, StatusLabel: label, Description: &description}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "status_key"}},
			DoUpdates: clause.Assignments(map[string]any{"status_key": gorm.Expr("EXCLUDED.status_key")}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user status %q: %w", key, err)
	}
	return &row, nil
}

func (s *Store) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (s *Store) CreateContact(ctx context.Context, contact *models.ContactSubmission) error {
	if err := s.db.WithContext(ctx).Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create contact submission: %w", err)
	}
	return nil
}

// ListUserTypes returns every user type ordered by label.
func (s *Store) ListUserTypes(ctx context.Context) ([]models.UserType, error) {
	var types []models.UserType
	if err := s.db.WithContext(ctx).Select("id", "type_name").Order("type_name").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list user types: %w", err)
	}
	return types, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
