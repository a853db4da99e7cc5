package transaction

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanna/bankcore/internal/bank"
	"github.com/adanna/bankcore/internal/errs"
	"github.com/adanna/bankcore/internal/storage/memory"
)

func seed(t *testing.T, status bank.Status, balanceMinor int64) (*memory.Store, string) {
	t.Helper()
	store := memory.New()
	acc := bank.Account{
		ID:            uuid.New(),
		AccountNumber: "2026123456",
		Email:         "holder@example.com",
		Profile:       bank.Profile{Kind: bank.ProfileBasic, Firstname: "Ada", Lastname: "Obi"},
		Balance:       bank.AmountFromMinor(balanceMinor),
		Status:        status,
	}
	store.SeedAccount(acc)
	return store, acc.AccountNumber
}

func TestCreditUnknownAccountBeforeAmountCheck(t *testing.T) {
	store := memory.New()
	svc := New(store)

	// a bad amount on a missing account still reports not-found first
	_, err := svc.Credit(context.Background(), "missing", bank.AmountFromMinor(0))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCreditInvalidAmount(t *testing.T) {
	store, num := seed(t, bank.StatusActive, 0)
	svc := New(store)

	_, err := svc.Credit(context.Background(), num, bank.AmountFromMinor(0))
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)

	_, err = svc.Credit(context.Background(), num, bank.AmountFromMinor(-500))
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
}

func TestCreditInactiveAccount(t *testing.T) {
	store, num := seed(t, bank.StatusInactive, 0)
	svc := New(store)

	_, err := svc.Credit(context.Background(), num, bank.AmountFromMinor(1000))
	assert.ErrorIs(t, err, errs.ErrAccountInactive)
}

func TestDebitInsufficientBalance(t *testing.T) {
	store, num := seed(t, bank.StatusActive, 500)
	svc := New(store)

	_, err := svc.Debit(context.Background(), num, bank.AmountFromMinor(501))
	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

	// the failed debit must not touch the balance
	acc, err := store.GetByNumber(context.Background(), num)
	require.NoError(t, err)
	assert.Equal(t, int64(500), acc.BalanceMinor())
}

func TestCreditThenDebit(t *testing.T) {
	store, num := seed(t, bank.StatusActive, 0)
	svc := New(store)
	ctx := context.Background()

	acc, err := svc.Credit(ctx, num, bank.AmountFromMinor(10000))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), acc.BalanceMinor())

	acc, err = svc.Debit(ctx, num, bank.AmountFromMinor(3000))
	require.NoError(t, err)
	assert.Equal(t, int64(7000), acc.BalanceMinor())

	_, err = svc.Debit(ctx, num, bank.AmountFromMinor(100000))
	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)

	acc, err = store.GetByNumber(ctx, num)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), acc.BalanceMinor())
}

func TestDebitExactBalance(t *testing.T) {
	store, num := seed(t, bank.StatusActive, 2500)
	svc := New(store)

	acc, err := svc.Debit(context.Background(), num, bank.AmountFromMinor(2500))
	require.NoError(t, err)
	assert.Equal(t, int64(0), acc.BalanceMinor())
}

func TestConcurrentMutationsLoseNoUpdates(t *testing.T) {
	store, num := seed(t, bank.StatusActive, 100000)
	svc := New(store)
	ctx := context.Background()

	const credits, debits = 40, 40
	var wg sync.WaitGroup
	for i := 0; i < credits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, err := svc.Credit(ctx, num, bank.AmountFromMinor(100))
				if err == nil {
					return
				}
				if !errors.Is(err, errs.ErrConcurrentUpdate) {
					t.Errorf("credit: %v", err)
					return
				}
			}
		}()
	}
	for i := 0; i < debits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, err := svc.Debit(ctx, num, bank.AmountFromMinor(50))
				if err == nil {
					return
				}
				if !errors.Is(err, errs.ErrConcurrentUpdate) {
					t.Errorf("debit: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	acc, err := store.GetByNumber(ctx, num)
	require.NoError(t, err)
	assert.Equal(t, int64(100000+credits*100-debits*50), acc.BalanceMinor())
}
