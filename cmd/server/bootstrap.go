package main

import (
	"errors"

	"gorm.io/gorm"

	"github.com/propertypinoy/website/internal/config"
	"github.com/propertypinoy/website/internal/database"
	"github.com/propertypinoy/website/internal/identity"
)

func requireIdentityConfig(cfg *config.Config) error {
	if cfg.SupabaseURL == "" {
		return errors.New("SUPABASE_URL is required")
	}
	if cfg.SupabaseServiceRoleKey == "" {
		return errors.New("SUPABASE_SERVICE_ROLE_KEY is required")
	}
	return nil
}

func newIdentityClient(cfg *config.Config) *identity.Client {
	return identity.NewClient(identity.Config{
		ProjectURL: cfg.SupabaseURL,
		PublicKey:  cfg.SupabaseAnonKey,
		AdminKey:   cfg.SupabaseServiceRoleKey,
		Timeout:    cfg.IdentityTimeout,
	})
}

// openDatabase connects and brings the schema up to date.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, 0); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
