package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/logger"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/security"
	"github.com/ajayabd17/she-help-srm-safe/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the email/password pair did not match any account.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSession indicates no account is currently logged in, or the stored session is stale.
	ErrNoSession = errors.New("no active session")
)

// SessionService resolves and mutates the current session: a stored email
// reference matched against the account directory.
type SessionService struct {
	directory port.AccountDirectory
	sessions  port.SessionStore
	logger    *zap.Logger
}

// NewSessionService constructs a session service.
func NewSessionService(directory port.AccountDirectory, sessions port.SessionStore, log *zap.Logger) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionService{directory: directory, sessions: sessions, logger: log}
}

// Current resolves the logged-in account from the stored session email.
// A stored email with no directory match is treated as absent; the stale
// scalar is left in place for the next login to overwrite.
func (s *SessionService) Current(ctx context.Context) (*domain.Account, error) {
	email, ok, err := s.sessions.CurrentEmail(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !ok || strings.TrimSpace(email) == "" {
		return nil, ErrNoSession
	}

	account, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Debug("session email has no directory match",
				zap.String("email", logger.MaskEmail(email)),
			)
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("resolve session account: %w", err)
	}
	return account, nil
}

// Login matches the credentials against the directory and records the
// session email on success.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.directory.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	match, err := security.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	if err := s.sessions.SetCurrentEmail(ctx, account.Email); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.logger.Info("login succeeded",
		zap.String("account_id", account.ID),
		zap.String("email", logger.MaskEmail(account.Email)),
		zap.String("role", string(account.Role)),
	)
	return account, nil
}

// Logout clears the stored session email only.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
