package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/propertypinoy/website/internal/dto"
	"github.com/propertypinoy/website/internal/metrics"
	"github.com/propertypinoy/website/internal/models"
	"github.com/propertypinoy/website/internal/normalize"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidEmail  = errors.New("invalid email address")
)

type ContactStore interface {
	CreateContact(ctx context.Context, contact *models.ContactSubmission) error
}

type ContactService struct {
	store ContactStore
}

func NewContactService(store ContactStore) *ContactService {
	return &ContactService{store: store}
}

// Submit normalizes and validates a contact form and stores it.
func (s *ContactService) Submit(ctx context.Context, req dto.ContactRequest) (*models.ContactSubmission, error) {
	first := normalize.Name(req.FirstName)
	last := normalize.Name(req.LastName)
	email := normalize.Email(req.Email)
	message := normalize.Text(req.Message)

	if first == "" || last == "" || email == "" || message == "" {
		metrics.ContactSubmissions.WithLabelValues("rejected").Inc()
		return nil, ErrMissingFields
	}
	if !normalize.ValidEmail(email) {
		metrics.ContactSubmissions.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidEmail
	}

	row := &models.ContactSubmission{
		FirstName: first,
		LastName:  last,
		Name:      first + " " + last,
		Email:     email,
		Phone:     normalize.Optional(normalize.Phone(req.Phone)),
		Subject:   normalize.Optional(normalize.Text(req.Subject)),
		Message:   message,
		Company:   normalize.Optional(normalize.Name(req.Company)),
	}
	if err := s.store.CreateContact(ctx, row); err != nil {
		metrics.ContactSubmissions.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to store contact submission: %w", err)
	}
	metrics.ContactSubmissions.WithLabelValues("stored").Inc()
	return row, nil
}
