package kv

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/infra/storage"
	"github.com/ajayabd17/she-help-srm-safe/internal/repository"
)

// AccountDirectory keeps the account list in memory, seeded with the fixed
// administrator record, and mirrors every mutation to the persisted
// registeredUsers collection. Persisted accounts are merged in once on first
// access; the seed admin always stays first. Email uniqueness is enforced
// here, at registration time, not by the storage layer.
type AccountDirectory struct {
	store  port.Store
	logger *zap.Logger

	mu       sync.Mutex
	accounts []domain.Account
	merged   bool
}

// NewAccountDirectory constructs the directory with the seed administrator
// as its only entry.
func NewAccountDirectory(store port.Store, seedAdmin domain.Account, logger *zap.Logger) *AccountDirectory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountDirectory{
		store:    store,
		logger:   logger,
		accounts: []domain.Account{seedAdmin},
	}
}

// FindByEmail scans the directory for an exact email match, first match wins.
func (d *AccountDirectory) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureMerged(ctx); err != nil {
		return nil, err
	}

	for i := range d.accounts {
		if strings.EqualFold(d.accounts[i].Email, email) {
			account := d.accounts[i]
			return &account, nil
		}
	}
	return nil, repository.ErrNotFound
}

// FindByID scans the directory by identifier.
func (d *AccountDirectory) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureMerged(ctx); err != nil {
		return nil, err
	}

	for i := range d.accounts {
		if d.accounts[i].ID == id {
			account := d.accounts[i]
			return &account, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Register appends a new account after checking email uniqueness, writing
// both the in-memory list and the persisted collection.
func (d *AccountDirectory) Register(ctx context.Context, account domain.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureMerged(ctx); err != nil {
		return err
	}

	for i := range d.accounts {
		if strings.EqualFold(d.accounts[i].Email, account.Email) {
			return repository.ErrEmailExists
		}
	}

	d.accounts = append(d.accounts, account)
	return d.persist(ctx)
}

// UpdateProfile merges the partial fields into the stored record. Unspecified
// fields are never replaced. Completing any profile update marks the profile
// complete, even when it already was.
func (d *AccountDirectory) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.ensureMerged(ctx); err != nil {
		return nil, err
	}

	for i := range d.accounts {
		if d.accounts[i].ID != id {
			continue
		}

		if update.Name != nil {
			d.accounts[i].Name = *update.Name
		}
		if update.Department != nil {
			d.accounts[i].Department = *update.Department
		}
		if update.Year != nil {
			d.accounts[i].Year = *update.Year
		}
		if update.RegisterNumber != nil {
			d.accounts[i].RegisterNumber = *update.RegisterNumber
		}
		d.accounts[i].IsProfileComplete = true

		if err := d.persist(ctx); err != nil {
			return nil, err
		}

		account := d.accounts[i]
		return &account, nil
	}

	return nil, repository.ErrNotFound
}

// ensureMerged folds persisted accounts into the in-memory list exactly once,
// skipping emails already present and preserving persisted order after the
// seed entries. Callers must hold the mutex.
func (d *AccountDirectory) ensureMerged(ctx context.Context) error {
	if d.merged {
		return nil
	}

	var persisted []domain.Account
	if err := d.store.ReadCollection(ctx, storage.KeyRegisteredUsers, &persisted); err != nil {
		return err
	}

	for _, candidate := range persisted {
		exists := false
		for i := range d.accounts {
			if strings.EqualFold(d.accounts[i].Email, candidate.Email) {
				exists = true
				break
			}
		}
		if !exists {
			d.accounts = append(d.accounts, candidate)
		}
	}

	d.merged = true
	d.logger.Debug("account directory merged with persisted accounts",
		zap.Int("total", len(d.accounts)),
	)
	return nil
}

// persist writes the full directory back to the store. Callers must hold the
// mutex.
func (d *AccountDirectory) persist(ctx context.Context) error {
	return d.store.WriteCollection(ctx, storage.KeyRegisteredUsers, d.accounts)
}
