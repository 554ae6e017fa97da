// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/cinemapulse/internal/metrics"
	"github.com/tomtom215/cinemapulse/internal/models"
	"github.com/tomtom215/cinemapulse/internal/storage"
	"github.com/tomtom215/cinemapulse/internal/validation"
)

// Account rules
const (
	MinPasswordLength = 6
	MinNameLength     = 2
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User-facing messages for the sentinel errors below.
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgUserExists         = "User already exists"
	MsgNotAuthenticated   = "Not authenticated"
)

var (
	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserExists is returned when registering a taken email.
	ErrUserExists = errors.New("user already exists")
)

// FieldError rejects registration input.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// UserStore is the storage surface accounts need.
type UserStore interface {
	GetUser(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

// RegistrationNotifier observes new accounts. Implementations must not block.
type RegistrationNotifier interface {
	UserRegistered(u *models.User)
}

// Service registers and authenticates users.
type Service struct {
	users      UserStore
	notifier   RegistrationNotifier
	bcryptCost int
	admins     map[string]bool
	logger     zerolog.Logger
	now        func() time.Time
}

// NewService creates a Service. notifier may be nil.
func NewService(users UserStore, notifier RegistrationNotifier, bcryptCost int, adminEmails []string, logger zerolog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[models.NormalizeEmail(e)] = true
	}
	return &Service{
		users:      users,
		notifier:   notifier,
		bcryptCost: bcryptCost,
		admins:     admins,
		logger:     logger.With().Str("component", "auth").Logger(),
		now:        time.Now,
	}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateRegistration checks registration input in the order the messages
// are reported: email, password, name.
func ValidateRegistration(email, password, name string) *FieldError {
	if !validation.EmailPattern.MatchString(email) {
		return &FieldError{Field: "email", Message: "Invalid email format"}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &FieldError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)}
	}
	if utf8.RuneCountInString(name) < MinNameLength {
		return &FieldError{Field: "name", Message: fmt.Sprintf("Name must be at least %d characters", MinNameLength)}
	}
	return nil
}

// Register creates an account. It returns *FieldError for bad input,
// ErrUserExists for a taken email, or a wrapped storage error.
func (s *Service) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if fe := ValidateRegistration(email, password, name); fe != nil {
		metrics.AuthAttempts.WithLabelValues("register", "invalid").Inc()
		return nil, fe
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
		IsActive:     true,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			metrics.AuthAttempts.WithLabelValues("register", "exists").Inc()
			return nil, ErrUserExists
		}
		metrics.AuthAttempts.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("create user: %w", err)
	}
	metrics.AuthAttempts.WithLabelValues("register", "ok").Inc()

	if s.notifier != nil {
		s.notifier.UserRegistered(u)
	}
	s.logger.Info().Str("user", email).Msg("user registered")
	return u, nil
}

// Login checks credentials. Unknown users, wrong passwords and inactive
// accounts all return ErrInvalidCredentials; storage failures are returned
// wrapped so callers can report unavailability.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)

	u, err := s.users.GetUser(ctx, email)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil || !u.IsActive || !CheckPassword(u.PasswordHash, password) {
		metrics.AuthAttempts.WithLabelValues("login", "denied").Inc()
		s.logger.Debug().Str("user", email).Msg("login rejected")
		return nil, ErrInvalidCredentials
	}

	metrics.AuthAttempts.WithLabelValues("login", "ok").Inc()
	return u, nil
}

// RolesFor returns the roles granted to email.
func (s *Service) RolesFor(email string) []string {
	if s.admins[models.NormalizeEmail(email)] {
		return []string{RoleUser, RoleAdmin}
	}
	return []string{RoleUser}
}

// SubjectFor builds the authenticated subject for u.
func (s *Service) SubjectFor(u *models.User) *Subject {
	return &Subject{Email: u.Email, Name: u.Name, Roles: s.RolesFor(u.Email)}
}
