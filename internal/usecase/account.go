package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/logger"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/security"
)

// University email domains accepted at registration.
var allowedEmailDomains = []string{"@srmist.edu.in", "@srmuniversity.edu.in"}

var (
	// ErrPasswordPolicyViolation indicates the password does not satisfy complexity requirements.
	ErrPasswordPolicyViolation = errors.New("password does not meet complexity requirements")
	// ErrInvalidEmailDomain indicates the email does not belong to the university.
	ErrInvalidEmailDomain = errors.New("email must be a university address")
	// ErrValidation wraps field-level registration and profile problems.
	ErrValidation = errors.New("validation failed")
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name           string
	Email          string
	Password       string
	Department     string
	Year           int
	RegisterNumber string
}

// AccountService handles registration and profile maintenance on top of the
// account directory.
type AccountService struct {
	directory         port.AccountDirectory
	passwordValidator *security.PasswordValidator
	logger            *zap.Logger
}

// NewAccountService constructs an account service.
func NewAccountService(directory port.AccountDirectory, validator *security.PasswordValidator, log *zap.Logger) *AccountService {
	if validator == nil {
		validator = security.DefaultPasswordValidator(8, 0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AccountService{directory: directory, passwordValidator: validator, logger: log}
}

// Register creates a student account. The role is fixed at creation and the
// profile starts incomplete; only an explicit profile update flips the flag.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	department := strings.TrimSpace(input.Department)

	if len([]rune(name)) < 2 {
		return domain.Account{}, fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}
	if !hasAllowedDomain(email) {
		return domain.Account{}, ErrInvalidEmailDomain
	}
	if department == "" {
		return domain.Account{}, fmt.Errorf("%w: department is required", ErrValidation)
	}
	if !validYear(input.Year) {
		return domain.Account{}, fmt.Errorf("%w: year must be between 1 and 6, or postgraduate", ErrValidation)
	}

	if err := s.passwordValidator.Validate(input.Password); err != nil {
		return domain.Account{}, fmt.Errorf("%w: %v", ErrPasswordPolicyViolation, err)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := domain.Account{
		ID:                uuid.NewString(),
		Name:              name,
		Email:             email,
		Role:              domain.RoleStudent,
		Department:        department,
		Year:              input.Year,
		RegisterNumber:    strings.TrimSpace(input.RegisterNumber),
		PasswordHash:      passwordHash,
		PasswordAlgo:      security.PasswordAlgo,
		IsProfileComplete: false,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.directory.Register(ctx, account); err != nil {
		return domain.Account{}, err
	}

	s.logger.Info("student registered",
		zap.String("account_id", account.ID),
		zap.String("email", logger.MaskEmail(account.Email)),
	)
	return account, nil
}

// UpdateProfile applies a partial merge and marks the profile complete as a
// side effect, whichever fields were supplied.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Account, error) {
	if update.Name != nil && len([]rune(strings.TrimSpace(*update.Name))) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}
	if update.Year != nil && !validYear(*update.Year) {
		return nil, fmt.Errorf("%w: year must be between 1 and 6, or postgraduate", ErrValidation)
	}

	account, err := s.directory.UpdateProfile(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", zap.String("account_id", account.ID))
	return account, nil
}

// SeedAdmin builds the fixed administrator record from configuration values,
// hashing the configured password at startup. The admin profile is always
// complete.
func SeedAdmin(name, email, password, department string) (domain.Account, error) {
	hash, err := security.HashPassword(password)
	if err != nil {
		return domain.Account{}, fmt.Errorf("hash admin password: %w", err)
	}

	return domain.Account{
		ID:                "admin1",
		Name:              name,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Role:              domain.RoleAdmin,
		Department:        department,
		PasswordHash:      hash,
		PasswordAlgo:      security.PasswordAlgo,
		IsProfileComplete: true,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

func validYear(year int) bool {
	return year == domain.YearPostGraduate || (year >= 1 && year <= 6)
}

func hasAllowedDomain(email string) bool {
	for _, suffix := range allowedEmailDomains {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}
	return false
}
