package bank

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/money"
)

// Currency is the single currency all balances are denominated in.
// Amounts round-trip through minor units (kobo), so no precision is lost.
const Currency = "NGN"

// Status enumerates the lifecycle state of an account.
type Status string

const (
	// StatusActive permits balance mutations and profile updates.
	StatusActive Status = "active"
	// StatusInactive blocks credits and debits while keeping the record readable.
	StatusInactive Status = "inactive"
)

// IsActive reports whether the status allows balance mutations.
// Comparison is case-insensitive to tolerate stored legacy values.
func (s Status) IsActive() bool { return strings.EqualFold(string(s), string(StatusActive)) }

// ProfileKind tags the profile variant. The variant is fixed at creation.
type ProfileKind string

const (
	ProfileBasic    ProfileKind = "basic"
	ProfileCustomer ProfileKind = "customer"
	ProfileMerchant ProfileKind = "merchant"
)

// CustomerData carries the fields specific to customer accounts.
type CustomerData struct {
	ReferenceNumber string
	DateOfBirth     time.Time
}

// MerchantData carries the fields specific to merchant accounts.
type MerchantData struct {
	BusinessName       string
	RegistrationNumber string
}

// Profile holds the descriptive fields of an account holder plus the
// variant-specific payload. Exactly one of Customer/Merchant is non-nil,
// matching Kind; both are nil for basic profiles.
type Profile struct {
	Kind           ProfileKind
	Firstname      string
	Lastname       string
	Othername      string
	Gender         string
	Address        string
	StateOfOrigin  string
	PhoneNumber    string
	AltPhoneNumber string
	Customer       *CustomerData
	Merchant       *MerchantData
}

// Account is the sole entity of the ledger core. The store owns all records;
// callers only ever see value copies.
type Account struct {
	ID            uuid.UUID
	AccountNumber string
	Email         string
	Profile       Profile
	Balance       money.Amount
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName concatenates first, last and other names, skipping empties.
func (a Account) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Profile.Firstname, a.Profile.Lastname, a.Profile.Othername} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// BalanceMinor returns the balance in minor units.
func (a Account) BalanceMinor() int64 {
	units, _ := a.Balance.MinorUnits()
	return units
}

// ZeroAmount returns a zero balance in the ledger currency.
func ZeroAmount() money.Amount {
	z, _ := money.NewAmountFromMinorUnits(Currency, 0)
	return z
}

// AmountFromMinor builds an amount in the ledger currency from minor units.
func AmountFromMinor(units int64) money.Amount {
	a, _ := money.NewAmountFromMinorUnits(Currency, units)
	return a
}

// FormatMinor renders minor units as a decimal string, e.g. 7000 -> "70.00".
func FormatMinor(units int64) string {
	neg := units < 0
	if neg {
		units = -units
	}
	whole := units / 100
	frac := units % 100
	out := itoa(whole) + "." + pad2(frac)
	if neg {
		return "-" + out
	}
	return out
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + itoa(n)
	}
	return itoa(n)
}
