package memory

// Package memory provides a simple in-memory implementation used for development and tests.
// It keeps code paths easy to follow while allowing us to plug in a real DB later.
import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/adanna/bankcore/internal/bank"
	"github.com/adanna/bankcore/internal/errs"
)

// Store is an in-memory implementation of the account store used by the
// services. A single RWMutex guards the maps; every mutation section is
// short, so mutations on different accounts do not contend for long and the
// compare-and-swap on balances stays atomic.
type Store struct {
	mu       sync.RWMutex
	accounts map[string]bank.Account
	// byEmail maps lowercased email -> account number for the uniqueness index.
	byEmail map[string]string
	now     func() time.Time
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		accounts: make(map[string]bank.Account),
		byEmail:  make(map[string]string),
		now:      time.Now,
	}
}

// SeedAccount inserts a record directly, bypassing uniqueness errors. Dev/test helper.
func (s *Store) SeedAccount(a bank.Account) {
	s.mu.Lock()
	s.accounts[a.AccountNumber] = a
	s.byEmail[emailKey(a.Email)] = a.AccountNumber
	s.mu.Unlock()
}

// Reset drops all records. Test helper.
func (s *Store) Reset() {
	s.mu.Lock()
	s.accounts = map[string]bank.Account{}
	s.byEmail = map[string]string{}
	s.mu.Unlock()
}

func emailKey(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// Create inserts a new account. The email and account number uniqueness
// checks happen under the same lock as the insert, so two concurrent
// creations for the same email cannot both succeed.
func (s *Store) Create(_ context.Context, a bank.Account) (bank.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[a.AccountNumber]; ok {
		return bank.Account{}, errs.ErrNumberExists
	}
	if _, ok := s.byEmail[emailKey(a.Email)]; ok {
		return bank.Account{}, errs.ErrEmailExists
	}
	ts := s.now().UTC()
	a.CreatedAt = ts
	a.UpdatedAt = ts
	s.accounts[a.AccountNumber] = a
	s.byEmail[emailKey(a.Email)] = a.AccountNumber
	return a, nil
}

// GetByNumber returns a snapshot of the account for the number.
func (s *Store) GetByNumber(_ context.Context, accountNumber string) (bank.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountNumber]
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	return a, nil
}

// GetByEmail returns a snapshot of the account registered under the email.
func (s *Store) GetByEmail(_ context.Context, email string) (bank.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	num, ok := s.byEmail[emailKey(email)]
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	a, ok := s.accounts[num]
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	return a, nil
}

// ExistsByNumber reports whether an account exists for the number.
func (s *Store) ExistsByNumber(_ context.Context, accountNumber string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[accountNumber]
	return ok, nil
}

// ExistsByEmail reports whether an account exists for the email.
func (s *Store) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[emailKey(email)]
	return ok, nil
}

// UpdateProfile replaces the profile and status of an existing account and
// refreshes UpdatedAt. Balance, email and identifiers are left untouched.
func (s *Store) UpdateProfile(_ context.Context, accountNumber string, p bank.Profile, st bank.Status) (bank.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountNumber]
	if !ok {
		return bank.Account{}, errs.ErrNotFound
	}
	a.Profile = p
	a.Status = st
	a.UpdatedAt = s.now().UTC()
	s.accounts[accountNumber] = a
	return a, nil
}

// Delete removes the account record irreversibly.
func (s *Store) Delete(_ context.Context, accountNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountNumber]
	if !ok {
		return errs.ErrNotFound
	}
	delete(s.accounts, accountNumber)
	delete(s.byEmail, emailKey(a.Email))
	return nil
}

// CompareAndSwapBalance writes newMinor only if the stored balance still
// equals expectedMinor. Returns false on a lost race so the caller can
// re-read and retry. The check and the write share the lock, so no reader
// ever observes an intermediate balance.
func (s *Store) CompareAndSwapBalance(_ context.Context, accountNumber string, expectedMinor, newMinor int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountNumber]
	if !ok {
		return false, errs.ErrNotFound
	}
	if a.BalanceMinor() != expectedMinor {
		return false, nil
	}
	a.Balance = bank.AmountFromMinor(newMinor)
	a.UpdatedAt = s.now().UTC()
	s.accounts[accountNumber] = a
	return true, nil
}
