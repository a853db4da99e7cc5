// Package account implements the account lifecycle rules: creation with a
// unique contact email and generated account number, enquiries, full and
// partial profile updates, and deletion. The profile variant picked at
// creation never changes afterwards.
package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adanna/bankcore/internal/bank"
	"github.com/adanna/bankcore/internal/errs"
	"github.com/adanna/bankcore/internal/notify"
)

// createAttempts bounds re-allocation when an insert loses an account-number
// race despite the generator's own existence check.
const createAttempts = 3

// Store defines the persistence operations the manager needs.
type Store interface {
	Create(ctx context.Context, a bank.Account) (bank.Account, error)
	GetByNumber(ctx context.Context, accountNumber string) (bank.Account, error)
	GetByEmail(ctx context.Context, email string) (bank.Account, error)
	UpdateProfile(ctx context.Context, accountNumber string, p bank.Profile, st bank.Status) (bank.Account, error)
	Delete(ctx context.Context, accountNumber string) error
}

// NumberGenerator allocates unused account numbers.
type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// CreateInput carries everything needed to open an account.
type CreateInput struct {
	Email   string
	Profile bank.Profile
}

// UpdateInput is a full replacement of the mutable profile fields. Supplied
// values overwrite unconditionally, blanks included. The variant payload is
// applied only when it matches the account's fixed kind; a nil payload keeps
// the current variant data.
type UpdateInput struct {
	Firstname      string
	Lastname       string
	Othername      string
	Gender         string
	Address        string
	StateOfOrigin  string
	PhoneNumber    string
	AltPhoneNumber string
	Customer       *bank.CustomerData
	Merchant       *bank.MerchantData
}

// PatchInput applies only the fields that are present; nil pointers keep
// current values.
type PatchInput struct {
	Firstname      *string
	Lastname       *string
	Othername      *string
	Gender         *string
	Address        *string
	StateOfOrigin  *string
	PhoneNumber    *string
	AltPhoneNumber *string
	Customer       *bank.CustomerData
	Merchant       *bank.MerchantData
}

// Service orchestrates account lifecycle operations.
type Service interface {
	Create(ctx context.Context, in CreateInput) (bank.Account, bool, error)
	Get(ctx context.Context, accountNumber string) (bank.Account, error)
	Update(ctx context.Context, accountNumber string, in UpdateInput) (bank.Account, error)
	PartialUpdate(ctx context.Context, accountNumber string, in PatchInput) (bank.Account, error)
	Delete(ctx context.Context, accountNumber string) error
	NameEnquiry(ctx context.Context, accountNumber string) (string, error)
	BalanceEnquiry(ctx context.Context, accountNumber string) (bank.Account, error)
}

type service struct {
	store    Store
	numbers  NumberGenerator
	notifier notify.Notifier
	log      *slog.Logger
}

// New constructs the lifecycle manager.
func New(store Store, numbers NumberGenerator, notifier notify.Notifier, log *slog.Logger) Service {
	return &service{store: store, numbers: numbers, notifier: notifier, log: log}
}

// Create opens an account. If the email is already on file the existing
// snapshot is returned with created=false; that is not an error. On success
// the notifier fires from a goroutine and its outcome never affects the
// result.
func (s *service) Create(ctx context.Context, in CreateInput) (bank.Account, bool, error) {
	if strings.TrimSpace(in.Email) == "" {
		return bank.Account{}, false, errs.ErrInvalid
	}
	if err := validateProfile(in.Profile); err != nil {
		return bank.Account{}, false, err
	}
	if existing, err := s.store.GetByEmail(ctx, in.Email); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return bank.Account{}, false, err
	}

	var created bank.Account
	for attempt := 0; ; attempt++ {
		number, err := s.numbers.Generate(ctx)
		if err != nil {
			return bank.Account{}, false, err
		}
		acc := bank.Account{
			ID:            uuid.New(),
			AccountNumber: number,
			Email:         strings.ToLower(strings.TrimSpace(in.Email)),
			Profile:       in.Profile,
			Balance:       bank.ZeroAmount(),
			Status:        bank.StatusActive,
		}
		created, err = s.store.Create(ctx, acc)
		if err == nil {
			break
		}
		if errors.Is(err, errs.ErrEmailExists) {
			// lost a creation race for the same email; hand back the winner
			existing, gerr := s.store.GetByEmail(ctx, in.Email)
			if gerr != nil {
				return bank.Account{}, false, gerr
			}
			return existing, false, nil
		}
		if errors.Is(err, errs.ErrNumberExists) && attempt < createAttempts-1 {
			continue
		}
		return bank.Account{}, false, err
	}

	go s.sendWelcome(created)
	return created, true, nil
}

func (s *service) Get(ctx context.Context, accountNumber string) (bank.Account, error) {
	return s.store.GetByNumber(ctx, accountNumber)
}

func (s *service) Update(ctx context.Context, accountNumber string, in UpdateInput) (bank.Account, error) {
	current, err := s.store.GetByNumber(ctx, accountNumber)
	if err != nil {
		return bank.Account{}, err
	}
	p := bank.Profile{
		Kind:           current.Profile.Kind,
		Firstname:      in.Firstname,
		Lastname:       in.Lastname,
		Othername:      in.Othername,
		Gender:         in.Gender,
		Address:        in.Address,
		StateOfOrigin:  in.StateOfOrigin,
		PhoneNumber:    in.PhoneNumber,
		AltPhoneNumber: in.AltPhoneNumber,
		Customer:       current.Profile.Customer,
		Merchant:       current.Profile.Merchant,
	}
	if current.Profile.Kind == bank.ProfileCustomer && in.Customer != nil {
		c := *in.Customer
		p.Customer = &c
	}
	if current.Profile.Kind == bank.ProfileMerchant && in.Merchant != nil {
		m := *in.Merchant
		p.Merchant = &m
	}
	return s.store.UpdateProfile(ctx, accountNumber, p, current.Status)
}

func (s *service) PartialUpdate(ctx context.Context, accountNumber string, in PatchInput) (bank.Account, error) {
	current, err := s.store.GetByNumber(ctx, accountNumber)
	if err != nil {
		return bank.Account{}, err
	}
	p := current.Profile
	if in.Firstname != nil {
		p.Firstname = *in.Firstname
	}
	if in.Lastname != nil {
		p.Lastname = *in.Lastname
	}
	if in.Othername != nil {
		p.Othername = *in.Othername
	}
	if in.Gender != nil {
		p.Gender = *in.Gender
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	if in.StateOfOrigin != nil {
		p.StateOfOrigin = *in.StateOfOrigin
	}
	if in.PhoneNumber != nil {
		p.PhoneNumber = *in.PhoneNumber
	}
	if in.AltPhoneNumber != nil {
		p.AltPhoneNumber = *in.AltPhoneNumber
	}
	if current.Profile.Kind == bank.ProfileCustomer && in.Customer != nil {
		c := *in.Customer
		p.Customer = &c
	}
	if current.Profile.Kind == bank.ProfileMerchant && in.Merchant != nil {
		m := *in.Merchant
		p.Merchant = &m
	}
	return s.store.UpdateProfile(ctx, accountNumber, p, current.Status)
}

func (s *service) Delete(ctx context.Context, accountNumber string) error {
	return s.store.Delete(ctx, accountNumber)
}

func (s *service) NameEnquiry(ctx context.Context, accountNumber string) (string, error) {
	acc, err := s.store.GetByNumber(ctx, accountNumber)
	if err != nil {
		return "", err
	}
	return acc.FullName(), nil
}

func (s *service) BalanceEnquiry(ctx context.Context, accountNumber string) (bank.Account, error) {
	return s.store.GetByNumber(ctx, accountNumber)
}

// sendWelcome delivers the account-opened notification. Failures are logged
// and swallowed; the account exists regardless of delivery outcome.
func (s *service) sendWelcome(acc bank.Account) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	subject := "Account Created Successfully"
	switch acc.Profile.Kind {
	case bank.ProfileCustomer:
		subject = "Customer " + subject
	case bank.ProfileMerchant:
		subject = "Merchant " + subject
	}
	body := "Dear " + acc.FullName() + ",\n\n" +
		"Your account has been successfully created with the following details:\n" +
		"Account Number: " + acc.AccountNumber + "\n" +
		"Best regards,\nThe Bank Team"
	if err := s.notifier.Notify(ctx, acc.Email, subject, body); err != nil {
		s.log.Error("welcome notification failed", "account_number", acc.AccountNumber, "err", err)
	}
}

// validateProfile checks that the variant payload matches the declared kind.
func validateProfile(p bank.Profile) error {
	switch p.Kind {
	case bank.ProfileBasic:
		if p.Customer != nil || p.Merchant != nil {
			return errs.ErrInvalid
		}
	case bank.ProfileCustomer:
		if p.Customer == nil || p.Merchant != nil {
			return errs.ErrInvalid
		}
	case bank.ProfileMerchant:
		if p.Merchant == nil || p.Customer != nil {
			return errs.ErrInvalid
		}
	default:
		return errs.ErrInvalid
	}
	return nil
}
