// Package transaction applies credit and debit mutations to account
// balances. Validation order is fixed: account exists, amount is positive,
// account is active, and (debits only) funds are sufficient. Writes go
// through the store's compare-and-swap so that concurrent mutations on the
// same account never lose updates.
package transaction

import (
	"context"

	"github.com/govalues/money"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/adanna/bankcore/internal/bank"
	"github.com/adanna/bankcore/internal/errs"
)

// maxRetries bounds the compare-and-swap loop. A lost race re-reads the
// balance, re-validates status and funds, and tries again; spending the
// budget surfaces ErrConcurrentUpdate instead of spinning.
const maxRetries = 5

var (
	txApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bank",
			Name:      "transactions_total",
			Help:      "Total balance mutations by type and outcome",
		},
		[]string{"type", "outcome"},
	)
	casRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bank",
			Name:      "balance_cas_retries_total",
			Help:      "Balance compare-and-swap retries after a lost race",
		},
	)
)

// Store defines the account operations the processor needs.
type Store interface {
	GetByNumber(ctx context.Context, accountNumber string) (bank.Account, error)
	CompareAndSwapBalance(ctx context.Context, accountNumber string, expectedMinor, newMinor int64) (bool, error)
}

// Service exposes balance mutations. Results carry the post-mutation snapshot.
type Service interface {
	Credit(ctx context.Context, accountNumber string, amount money.Amount) (bank.Account, error)
	Debit(ctx context.Context, accountNumber string, amount money.Amount) (bank.Account, error)
}

type service struct {
	store Store
}

// New constructs the transaction processor.
func New(store Store) Service { return &service{store: store} }

func (s *service) Credit(ctx context.Context, accountNumber string, amount money.Amount) (bank.Account, error) {
	acc, err := s.apply(ctx, accountNumber, amount, false)
	txApplied.WithLabelValues("credit", outcome(err)).Inc()
	return acc, err
}

func (s *service) Debit(ctx context.Context, accountNumber string, amount money.Amount) (bank.Account, error) {
	acc, err := s.apply(ctx, accountNumber, amount, true)
	txApplied.WithLabelValues("debit", outcome(err)).Inc()
	return acc, err
}

// apply runs the shared validation pipeline and the bounded CAS loop.
func (s *service) apply(ctx context.Context, accountNumber string, amount money.Amount, debit bool) (bank.Account, error) {
	acc, err := s.store.GetByNumber(ctx, accountNumber)
	if err != nil {
		return bank.Account{}, err
	}
	units, ok := amount.MinorUnits()
	if !ok || units <= 0 {
		return bank.Account{}, errs.ErrInvalidAmount
	}
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			casRetries.Inc()
			// lost the race: re-read and re-validate against the fresh balance
			acc, err = s.store.GetByNumber(ctx, accountNumber)
			if err != nil {
				return bank.Account{}, err
			}
		}
		if !acc.Status.IsActive() {
			return bank.Account{}, errs.ErrAccountInactive
		}
		current := acc.BalanceMinor()
		var next int64
		if debit {
			if current < units {
				return bank.Account{}, errs.ErrInsufficientBalance
			}
			next = current - units
		} else {
			next = current + units
		}
		swapped, err := s.store.CompareAndSwapBalance(ctx, accountNumber, current, next)
		if err != nil {
			return bank.Account{}, err
		}
		if swapped {
			acc.Balance = bank.AmountFromMinor(next)
			return acc, nil
		}
	}
	return bank.Account{}, errs.ErrConcurrentUpdate
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
