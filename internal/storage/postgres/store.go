package postgres

// Package postgres provides a pgx-backed account store that satisfies the
// repository interfaces used by the services.
//
// It is intentionally small and explicit. Migrations that create the expected
// schema live under db/migrations. This package focuses on mapping between the
// domain entities and SQL rows and running the necessary statements.

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanna/bankcore/internal/bank"
	"github.com/adanna/bankcore/internal/errs"
)

// Store holds a pgx connection pool. All methods are safe for concurrent use.
// Balance updates rely on a SQL compare-and-update, so no process-level lock
// is held across validate+write and different accounts never serialize
// against each other.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

const accountColumns = `id, account_number, email, kind,
	firstname, lastname, othername, gender, address, state_of_origin,
	phone_number, alt_phone_number,
	customer_reference, date_of_birth, business_name, business_reg_number,
	balance_minor, status, created_at, updated_at`

// Create inserts an account row. The unique indexes on email and
// account_number make the existence check and the insert atomic with respect
// to concurrent creations.
func (s *Store) Create(ctx context.Context, a bank.Account) (bank.Account, error) {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	var custRef *string
	var dob *time.Time
	if c := a.Profile.Customer; c != nil {
		custRef = &c.ReferenceNumber
		d := c.DateOfBirth
		dob = &d
	}
	var bizName, bizReg *string
	if m := a.Profile.Merchant; m != nil {
		bizName = &m.BusinessName
		bizReg = &m.RegistrationNumber
	}
	_, err := s.pool.Exec(ctx, `
		insert into accounts (id, account_number, email, kind,
			firstname, lastname, othername, gender, address, state_of_origin,
			phone_number, alt_phone_number,
			customer_reference, date_of_birth, business_name, business_reg_number,
			balance_minor, status, created_at, updated_at)
		values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`, a.ID, a.AccountNumber, strings.ToLower(a.Email), a.Profile.Kind,
		a.Profile.Firstname, a.Profile.Lastname, a.Profile.Othername, a.Profile.Gender,
		a.Profile.Address, a.Profile.StateOfOrigin, a.Profile.PhoneNumber, a.Profile.AltPhoneNumber,
		custRef, dob, bizName, bizReg,
		a.BalanceMinor(), a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return bank.Account{}, errs.ErrEmailExists
			}
			return bank.Account{}, errs.ErrNumberExists
		}
		return bank.Account{}, err
	}
	return a, nil
}

// GetByNumber fetches a single account by its account number.
func (s *Store) GetByNumber(ctx context.Context, accountNumber string) (bank.Account, error) {
	row := s.pool.QueryRow(ctx, `
		select `+accountColumns+`
		from accounts
		where account_number = $1
	`, accountNumber)
	return scanAccount(row)
}

// GetByEmail fetches a single account by contact email.
func (s *Store) GetByEmail(ctx context.Context, email string) (bank.Account, error) {
	row := s.pool.QueryRow(ctx, `
		select `+accountColumns+`
		from accounts
		where email = $1
	`, strings.ToLower(strings.TrimSpace(email)))
	return scanAccount(row)
}

// ExistsByNumber reports whether an account row exists for the number.
func (s *Store) ExistsByNumber(ctx context.Context, accountNumber string) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx, `
		select exists(select 1 from accounts where account_number = $1)
	`, accountNumber).Scan(&ok)
	return ok, err
}

// ExistsByEmail reports whether an account row exists for the email.
func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx, `
		select exists(select 1 from accounts where email = $1)
	`, strings.ToLower(strings.TrimSpace(email))).Scan(&ok)
	return ok, err
}

// UpdateProfile replaces profile fields and status, refreshing updated_at.
func (s *Store) UpdateProfile(ctx context.Context, accountNumber string, p bank.Profile, st bank.Status) (bank.Account, error) {
	var custRef *string
	var dob *time.Time
	if c := p.Customer; c != nil {
		custRef = &c.ReferenceNumber
		d := c.DateOfBirth
		dob = &d
	}
	var bizName, bizReg *string
	if m := p.Merchant; m != nil {
		bizName = &m.BusinessName
		bizReg = &m.RegistrationNumber
	}
	ct, err := s.pool.Exec(ctx, `
		update accounts
		set firstname=$1, lastname=$2, othername=$3, gender=$4, address=$5,
			state_of_origin=$6, phone_number=$7, alt_phone_number=$8,
			customer_reference=$9, date_of_birth=$10, business_name=$11,
			business_reg_number=$12, status=$13, updated_at=now()
		where account_number=$14
	`, p.Firstname, p.Lastname, p.Othername, p.Gender, p.Address,
		p.StateOfOrigin, p.PhoneNumber, p.AltPhoneNumber,
		custRef, dob, bizName, bizReg, st, accountNumber)
	if err != nil {
		return bank.Account{}, err
	}
	if ct.RowsAffected() == 0 {
		return bank.Account{}, errs.ErrNotFound
	}
	return s.GetByNumber(ctx, accountNumber)
}

// Delete removes the account row.
func (s *Store) Delete(ctx context.Context, accountNumber string) error {
	ct, err := s.pool.Exec(ctx, `delete from accounts where account_number = $1`, accountNumber)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// CompareAndSwapBalance updates the balance only if the stored value still
// matches expectedMinor. A zero rows-affected result means the race was lost
// or the row is gone; the caller distinguishes by re-reading.
func (s *Store) CompareAndSwapBalance(ctx context.Context, accountNumber string, expectedMinor, newMinor int64) (bool, error) {
	ct, err := s.pool.Exec(ctx, `
		update accounts
		set balance_minor=$1, updated_at=now()
		where account_number=$2 and balance_minor=$3
	`, newMinor, accountNumber, expectedMinor)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

func scanAccount(row pgx.Row) (bank.Account, error) {
	var a bank.Account
	var custRef *string
	var dob *time.Time
	var bizName, bizReg *string
	var balanceMinor int64
	err := row.Scan(&a.ID, &a.AccountNumber, &a.Email, &a.Profile.Kind,
		&a.Profile.Firstname, &a.Profile.Lastname, &a.Profile.Othername, &a.Profile.Gender,
		&a.Profile.Address, &a.Profile.StateOfOrigin, &a.Profile.PhoneNumber, &a.Profile.AltPhoneNumber,
		&custRef, &dob, &bizName, &bizReg,
		&balanceMinor, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return bank.Account{}, errs.ErrNotFound
	}
	if err != nil {
		return bank.Account{}, err
	}
	a.Balance = bank.AmountFromMinor(balanceMinor)
	if a.Profile.Kind == bank.ProfileCustomer {
		c := &bank.CustomerData{}
		if custRef != nil {
			c.ReferenceNumber = *custRef
		}
		if dob != nil {
			c.DateOfBirth = *dob
		}
		a.Profile.Customer = c
	}
	if a.Profile.Kind == bank.ProfileMerchant {
		m := &bank.MerchantData{}
		if bizName != nil {
			m.BusinessName = *bizName
		}
		if bizReg != nil {
			m.RegistrationNumber = *bizReg
		}
		a.Profile.Merchant = m
	}
	return a, nil
}
