package httpapi

import (
	"context"

	"github.com/adanna/bankcore/internal/bank"
)

// Store is the full persistence surface the HTTP server wires through the
// services. Both the in-memory and the postgres implementations satisfy it.
type Store interface {
	Create(ctx context.Context, a bank.Account) (bank.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (bank.Account, error)
	GetByEmail(ctx context.Context, email string) (bank.Account, error)
	ExistsByNumber(ctx context.Context, accountNumber string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, accountNumber string, p bank.Profile, st bank.Status) (bank.Account, error)
	Delete(ctx context.Context, accountNumber string) error
	CompareAndSwapBalance(ctx context.Context, accountNumber string, expectedMinor, newMinor int64) (bool, error)
}
