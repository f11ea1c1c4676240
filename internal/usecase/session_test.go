package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/security"
	"github.com/ajayabd17/she-help-srm-safe/internal/repository"
)

type mockAccountDirectory struct {
	accounts []domain.Account

	findErr       error
	registerErr   error
	registerCalls int
	registered    domain.Account

	updateErr    error
	updateCalls  int
	updateLastID string
}

func (m *mockAccountDirectory) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for i := range m.accounts {
		if strings.EqualFold(m.accounts[i].Email, email) {
			account := m.accounts[i]
			return &account, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockAccountDirectory) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			account := m.accounts[i]
			return &account, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockAccountDirectory) Register(_ context.Context, account domain.Account) error {
	m.registerCalls++
	m.registered = account
	if m.registerErr != nil {
		return m.registerErr
	}
	for i := range m.accounts {
		if strings.EqualFold(m.accounts[i].Email, account.Email) {
			return repository.ErrEmailExists
		}
	}
	m.accounts = append(m.accounts, account)
	return nil
}

func (m *mockAccountDirectory) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) (*domain.Account, error) {
	m.updateCalls++
	m.updateLastID = id
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	for i := range m.accounts {
		if m.accounts[i].ID != id {
			continue
		}
		if update.Name != nil {
			m.accounts[i].Name = *update.Name
		}
		if update.Department != nil {
			m.accounts[i].Department = *update.Department
		}
		if update.Year != nil {
			m.accounts[i].Year = *update.Year
		}
		if update.RegisterNumber != nil {
			m.accounts[i].RegisterNumber = *update.RegisterNumber
		}
		m.accounts[i].IsProfileComplete = true
		account := m.accounts[i]
		return &account, nil
	}
	return nil, repository.ErrNotFound
}

type mockSessionStore struct {
	email string
	ok    bool

	readErr    error
	setErr     error
	setCalls   int
	clearCalls int
}

func (m *mockSessionStore) CurrentEmail(context.Context) (string, bool, error) {
	return m.email, m.ok, m.readErr
}

func (m *mockSessionStore) SetCurrentEmail(_ context.Context, email string) error {
	m.setCalls++
	if m.setErr != nil {
		return m.setErr
	}
	m.email = email
	m.ok = true
	return nil
}

func (m *mockSessionStore) Clear(context.Context) error {
	m.clearCalls++
	m.email = ""
	m.ok = false
	return nil
}

func hashedAccount(t *testing.T, id, email, password string, role domain.Role) domain.Account {
	t.Helper()
	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return domain.Account{
		ID:           id,
		Name:         "Test Account",
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		PasswordAlgo: security.PasswordAlgo,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestLoginSuccessStoresSessionEmail(t *testing.T) {
	directory := &mockAccountDirectory{accounts: []domain.Account{
		hashedAccount(t, "u1", "a@srmuniversity.edu.in", "Abcdef12", domain.RoleStudent),
	}}
	sessions := &mockSessionStore{}
	svc := NewSessionService(directory, sessions, zaptest.NewLogger(t))

	account, err := svc.Login(context.Background(), "a@srmuniversity.edu.in", "Abcdef12")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if account.ID != "u1" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if sessions.email != "a@srmuniversity.edu.in" {
		t.Fatalf("session email not stored, got %q", sessions.email)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewSessionService(&mockAccountDirectory{}, &mockSessionStore{}, zaptest.NewLogger(t))

	_, err := svc.Login(context.Background(), "nobody@srmist.edu.in", "Abcdef12")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	directory := &mockAccountDirectory{accounts: []domain.Account{
		hashedAccount(t, "u1", "a@srmuniversity.edu.in", "Abcdef12", domain.RoleStudent),
	}}
	sessions := &mockSessionStore{}
	svc := NewSessionService(directory, sessions, zaptest.NewLogger(t))

	_, err := svc.Login(context.Background(), "a@srmuniversity.edu.in", "WrongPass1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if sessions.setCalls != 0 {
		t.Fatal("failed login must not store a session")
	}
}

func TestLoginEmptyCredentials(t *testing.T) {
	svc := NewSessionService(&mockAccountDirectory{}, &mockSessionStore{}, zaptest.NewLogger(t))

	if _, err := svc.Login(context.Background(), "", "Abcdef12"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got: %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@srmist.edu.in", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got: %v", err)
	}
}

func TestCurrentWithoutSession(t *testing.T) {
	svc := NewSessionService(&mockAccountDirectory{}, &mockSessionStore{}, zaptest.NewLogger(t))

	_, err := svc.Current(context.Background())
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got: %v", err)
	}
}

func TestCurrentWithStaleSessionEmail(t *testing.T) {
	sessions := &mockSessionStore{email: "gone@srmist.edu.in", ok: true}
	svc := NewSessionService(&mockAccountDirectory{}, sessions, zaptest.NewLogger(t))

	_, err := svc.Current(context.Background())
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for stale email, got: %v", err)
	}

	// The stale scalar is left in place, not cleared.
	if sessions.clearCalls != 0 {
		t.Fatal("stale session must not be cleared")
	}
	if sessions.email != "gone@srmist.edu.in" {
		t.Fatalf("stale email must survive, got %q", sessions.email)
	}
}

func TestCurrentResolvesAccount(t *testing.T) {
	directory := &mockAccountDirectory{accounts: []domain.Account{
		hashedAccount(t, "u1", "a@srmuniversity.edu.in", "Abcdef12", domain.RoleStudent),
	}}
	sessions := &mockSessionStore{email: "a@srmuniversity.edu.in", ok: true}
	svc := NewSessionService(directory, sessions, zaptest.NewLogger(t))

	account, err := svc.Current(context.Background())
	if err != nil {
		t.Fatalf("Current returned error: %v", err)
	}
	if account.ID != "u1" {
		t.Fatalf("unexpected account: %+v", account)
	}
}

func TestLogoutClearsSessionOnly(t *testing.T) {
	sessions := &mockSessionStore{email: "a@srmist.edu.in", ok: true}
	svc := NewSessionService(&mockAccountDirectory{}, sessions, zaptest.NewLogger(t))

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if sessions.clearCalls != 1 {
		t.Fatalf("expected one clear call, got %d", sessions.clearCalls)
	}
}
