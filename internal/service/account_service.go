package service

import (
	"context"
	"errors"
	"strings"

	"github.com/coursely/coursely-backend/internal/model"
	"github.com/coursely/coursely-backend/internal/repository"
	"github.com/rs/zerolog"
)

// AdminStore is the credential store the account service persists admins to.
// Implemented by repository.AdminRepository.
type AdminStore interface {
	GetByID(ctx context.Context, id int) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	Create(ctx context.Context, a *model.Admin) error
}

// AccountService orchestrates admin registration and login.
type AccountService struct {
	admins AdminStore
	auth   *AuthService
	log    zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(admins AdminStore, auth *AuthService, log zerolog.Logger) *AccountService {
	return &AccountService{
		admins: admins,
		auth:   auth,
		log:    log.With().Str("component", "account_service").Logger(),
	}
}

// Register creates a new admin account and returns its safe projection.
// Emails are lower-cased so the unique index is effectively case-insensitive.
// The duplicate pre-check is a fast path; the database index remains the
// authoritative guard under concurrent registrations.
func (s *AccountService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AdminView, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, repository.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrAdminNotFound) {
		return nil, err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Email:        email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.log.Info().Int("admin_id", admin.ID).Msg("admin registered")

	view := admin.View()
	return &view, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password both return ErrInvalidCredentials so responses never reveal
// which one was wrong.
func (s *AccountService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.auth.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(admin)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{Token: token, Admin: admin.View()}, nil
}

// GetByID resolves an admin record, typically for the session middleware.
func (s *AccountService) GetByID(ctx context.Context, id int) (*model.Admin, error) {
	return s.admins.GetByID(ctx, id)
}
