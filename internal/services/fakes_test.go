package services_test

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/propertypinoy/website/internal/identity"
	"github.com/propertypinoy/website/internal/models"
	"github.com/propertypinoy/website/internal/repository"
)

var errBackend = errors.New("backend unavailable")

// memStore is an in-memory stand-in for repository.Store.
type memStore struct {
	mu        sync.Mutex
	profiles  map[uuid.UUID]*models.UserProfile
	types     map[string]*models.UserType
	statuses  map[string]*models.UserStatus
	companies map[uuid.UUID]*models.Company
	contacts  []*models.ContactSubmission

	findErr    error
	companyErr error
	typeErr    error
	statusErr  error
	profileErr error
	contactErr error
}

func newMemStore() *memStore {
	return &memStore{
		profiles:  map[uuid.UUID]*models.UserProfile{},
		types:     map[string]*models.UserType{},
		statuses:  map[string]*models.UserStatus{},
		companies: map[uuid.UUID]*models.Company{},
	}
}

func (m *memStore) FindProfileWithType(_ context.Context, authUserID uuid.UUID) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	p, ok := m.profiles[authUserID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (m *memStore) CreateCompany(_ context.Context, company *models.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.companyErr != nil {
		return m.companyErr
	}
	company.ID = uuid.New()
	m.companies[company.ID] = company
	return nil
}

func (m *memStore) DeleteCompany(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.companies, id)
	return nil
}

func (m *memStore) EnsureUserType(_ context.Context, name string) (*models.UserType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.typeErr != nil {
		return nil, m.typeErr
	}
	if t, ok := m.types[name]; ok {
		return t, nil
	}
	t := &models.UserType{ID: uuid.New(), TypeName: name}
	m.types[name] = t
	return t, nil
}

func (m *memStore) EnsureUserStatus(_ context.Context, key, label string) (*models.UserStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	if s, ok := m.statuses[key]; ok {
		return s, nil
	}
	s := &models.UserStatus{ID: uuid.New(), StatusKey: key, StatusLabel: label}
	m.statuses[key] = s
	return s, nil
}

func (m *memStore) CreateProfile(_ context.Context, profile *models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.profileErr != nil {
		return m.profileErr
	}
	profile.ID = uuid.New()
	m.profiles[profile.AuthUserID] = profile
	return nil
}

func (m *memStore) CreateContact(_ context.Context, contact *models.ContactSubmission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.contactErr != nil {
		return m.contactErr
	}
	contact.ID = uuid.New()
	m.contacts = append(m.contacts, contact)
	return nil
}

type fakeIdentity struct {
	mu        sync.Mutex
	users     map[string]*identity.User
	created   []identity.AdminUserAttributes
	deleted   []uuid.UUID
	deleteErr error
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{users: map[string]*identity.User{}}
}

func (f *fakeIdentity) AdminCreateUser(_ context.Context, attrs identity.AdminUserAttributes) (*identity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[attrs.Email]; ok {
		return nil, &identity.APIError{Status: http.StatusUnprocessableEntity, Code: "email_exists", Message: "A user with this email address has already been registered"}
	}
	u := &identity.User{ID: uuid.New(), Email: attrs.Email}
	f.users[attrs.Email] = u
	f.created = append(f.created, attrs)
	return u, nil
}

func (f *fakeIdentity) AdminDeleteUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	for email, u := range f.users {
		if u.ID == id {
			delete(f.users, email)
		}
	}
	return nil
}
