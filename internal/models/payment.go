package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a request to record money handed from one person to another.
type Payment struct {
	// From is the person paying (debtor settling up).
	From string

	// To is the person receiving the money (creditor being paid).
	To string

	Amount decimal.Decimal
	Date   time.Time
	Notes  string

	// GroupID optionally ties the payment to a group.
	GroupID string
}

// NewPayment builds the expense record for a payment.
//
// The payer is listed with a zero share and the receiver with the full amount, so the
// receiver "owes" the payer the amount back and the payer's debt shrinks by it.
// name resolves identifiers to display names for the description; the current user is
// rendered as "You"/"you".
func NewPayment(ownerID string, p Payment, name func(id string) string) *Expense {
	from := name(p.From)
	to := name(p.To)
	if p.From == ownerID {
		from = "You"
	}
	if p.To == ownerID {
		to = "you"
	}

	return &Expense{
		OwnerID:     ownerID,
		Description: fmt.Sprintf("Payment: %s paid %s", from, to),
		Amount:      p.Amount,
		PaidBy:      p.From,
		Participants: []Share{
			{UserID: p.From, Amount: decimal.Zero},
			{UserID: p.To, Amount: p.Amount},
		},
		SplitType: SplitPayment,
		IsPayment: true,
		GroupID:   p.GroupID,
		Notes:     p.Notes,
		Date:      p.Date,
	}
}
