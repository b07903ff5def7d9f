package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/money"
)

// SplitType says how an expense's amount is divided between its participants.
type SplitType string

const (
	// SplitEqual divides the amount equally; stored share amounts are advisory.
	SplitEqual SplitType = "equal"
	// SplitCustom uses the stored share amounts as authoritative.
	SplitCustom SplitType = "custom"
	// SplitPercentage stores percentages; converted to SplitCustom before persisting.
	SplitPercentage SplitType = "percentage"
	// SplitPayment marks a settlement transaction between two people.
	SplitPayment SplitType = "payment"
)

var (
	ErrMissingPayer        = errors.New("expense has no payer")
	ErrMissingParticipants = errors.New("expense has no participants")
	ErrInvalidAmount       = errors.New("expense amount must be positive")
	ErrSharesMismatch      = errors.New("participant shares do not add up to the expense amount")
	ErrPercentMismatch     = errors.New("participant percentages must add up to 100")
	ErrUnknownSplitType    = errors.New("unknown split type")
)

// Valid reports whether t is one of the known split types.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitCustom, SplitPercentage, SplitPayment:
		return true
	}
	return false
}

// Share is one participant's part of an expense.
type Share struct {
	// UserID identifies the participant (user or friend ID).
	UserID string

	// Amount is what the participant owes toward the expense.
	// Zero means "not set". For SplitPercentage it holds the percentage until materialised.
	Amount decimal.Decimal
}

// Expense is a shared cost or, when IsPayment is set, a payment between two people.
//
// Fields that may be absent on historical records are left at their zero value:
// an empty PaidBy, a nil Participants slice or a zero Amount. The balance engine
// skips such records instead of failing.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// OwnerID is the user whose ledger the record belongs to.
	OwnerID string

	Description string

	// Amount is the total cost (or the payment amount).
	Amount decimal.Decimal

	// PaidBy is the identifier of the payer.
	PaidBy string

	// Participants are the people sharing the expense, payer included or not.
	Participants []Share

	SplitType SplitType

	// IsPayment is set on settlement transactions.
	IsPayment bool

	// GroupID optionally ties the expense to a group.
	GroupID string

	Category string
	Notes    string

	// Date is the day the expense was incurred. Display and ordering only.
	Date time.Time

	// CreatedAt is the Unix timestamp when the record was stored.
	CreatedAt int64
}

// ParticipantIDs returns the participant identifiers in stored order.
func (e *Expense) ParticipantIDs() []string {
	ids := make([]string, len(e.Participants))
	for i, p := range e.Participants {
		ids[i] = p.UserID
	}
	return ids
}

// Involves reports whether id paid for or participates in the expense.
func (e *Expense) Involves(id string) bool {
	if e.PaidBy == id {
		return true
	}
	for _, p := range e.Participants {
		if p.UserID == id {
			return true
		}
	}
	return false
}

// Validate checks a record before it is written to the store.
// Stored history is not re-validated; the engine tolerates malformed records.
func (e *Expense) Validate() error {
	if e.PaidBy == "" {
		return ErrMissingPayer
	}
	if len(e.Participants) == 0 {
		return ErrMissingParticipants
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !e.SplitType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSplitType, e.SplitType)
	}
	for _, p := range e.Participants {
		if p.UserID == "" {
			return fmt.Errorf("participant without identifier: %w", ErrMissingParticipants)
		}
		if p.Amount.IsNegative() {
			return fmt.Errorf("negative share for %s: %w", p.UserID, ErrInvalidAmount)
		}
	}
	if e.SplitType == SplitCustom && !e.IsPayment {
		total := decimal.Zero
		for _, p := range e.Participants {
			total = total.Add(p.Amount)
		}
		if !money.IsNoise(total.Sub(e.Amount)) {
			return fmt.Errorf("%w: shares %s, amount %s", ErrSharesMismatch, money.Format(total), money.Format(e.Amount))
		}
	}
	return nil
}

// MaterializeShares converts percentage splits into custom amounts and fills in the
// advisory per-person amount of equal splits. It must run before Validate on new records.
func MaterializeShares(e *Expense) error {
	switch e.SplitType {
	case SplitPercentage:
		if len(e.Participants) == 0 {
			return nil
		}
		hundred := decimal.NewFromInt(100)
		total := decimal.Zero
		for _, p := range e.Participants {
			total = total.Add(p.Amount)
		}
		if !money.IsNoise(total.Sub(hundred)) {
			return fmt.Errorf("%w: got %s", ErrPercentMismatch, total.String())
		}
		// Shares are rounded to cents; the last one takes the remainder so they sum to Amount.
		last := len(e.Participants) - 1
		allocated := decimal.Zero
		for i := range e.Participants[:last] {
			share := money.Round2(e.Amount.Mul(e.Participants[i].Amount).Div(hundred))
			e.Participants[i].Amount = share
			allocated = allocated.Add(share)
		}
		e.Participants[last].Amount = e.Amount.Sub(allocated)
		e.SplitType = SplitCustom
	case SplitEqual:
		if len(e.Participants) == 0 {
			return nil
		}
		share := e.Amount.Div(decimal.NewFromInt(int64(len(e.Participants))))
		for i := range e.Participants {
			e.Participants[i].Amount = share
		}
	}
	return nil
}
