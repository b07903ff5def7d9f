package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/money"
	"github.com/splitease/splitease/internal/models"
)

// Summary holds the current user's totals across all settlements.
type Summary struct {
	// TotalOwedToUser is what others owe the current user.
	TotalOwedToUser decimal.Decimal
	// TotalUserOwes is what the current user owes others.
	TotalUserOwes decimal.Decimal
	// NetBalance is TotalOwedToUser - TotalUserOwes.
	NetBalance decimal.Decimal
}

// Summarize totals the settlements touching currentUser. An empty currentUser yields
// zero totals.
func Summarize(settlements []Settlement, currentUser string) Summary {
	owed, owes := decimal.Zero, decimal.Zero
	if currentUser != "" {
		for _, s := range settlements {
			switch currentUser {
			case s.To:
				owed = owed.Add(s.Amount)
			case s.From:
				owes = owes.Add(s.Amount)
			}
		}
	}
	owed, owes = money.Round2(owed), money.Round2(owes)
	return Summary{
		TotalOwedToUser: owed,
		TotalUserOwes:   owes,
		NetBalance:      owed.Sub(owes),
	}
}

// BalancesInvolving returns the settlements where id is debtor or creditor.
func BalancesInvolving(settlements []Settlement, id string) []Settlement {
	var out []Settlement
	for _, s := range settlements {
		if s.Involves(id) {
			out = append(out, s)
		}
	}
	return out
}

// BalancesInGroup returns the settlements whose both sides are group members.
func BalancesInGroup(settlements []Settlement, members []string) []Settlement {
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m] = true
	}
	var out []Settlement
	for _, s := range settlements {
		if set[s.From] && set[s.To] {
			out = append(out, s)
		}
	}
	return out
}

// CounterpartyBalance is the signed balance between the current user and one other person.
type CounterpartyBalance struct {
	ID string
	// Amount is positive when the other person owes the current user.
	Amount decimal.Decimal
}

// CounterpartyBalances lists one signed balance per person the current user has an open
// settlement with, in settlement order.
func CounterpartyBalances(settlements []Settlement, currentUser string) []CounterpartyBalance {
	if currentUser == "" {
		return nil
	}
	var out []CounterpartyBalance
	for _, s := range settlements {
		switch currentUser {
		case s.To:
			out = append(out, CounterpartyBalance{ID: s.From, Amount: s.Amount})
		case s.From:
			out = append(out, CounterpartyBalance{ID: s.To, Amount: s.Amount.Neg()})
		}
	}
	return out
}

// BalanceWith returns the signed balance between currentUser and other: positive when
// other owes currentUser, zero when settled.
func BalanceWith(settlements []Settlement, currentUser, other string) decimal.Decimal {
	for _, c := range CounterpartyBalances(settlements, currentUser) {
		if c.ID == other {
			return c.Amount
		}
	}
	return decimal.Zero
}

// SuggestPayment proposes the payment that would settle the balance between currentUser
// and friendID. ok is false when the pair is already settled.
func SuggestPayment(settlements []Settlement, currentUser, friendID string) (p models.Payment, ok bool) {
	if currentUser == "" || friendID == "" {
		return models.Payment{}, false
	}
	for _, s := range settlements {
		if (s.From == currentUser && s.To == friendID) || (s.From == friendID && s.To == currentUser) {
			return models.Payment{From: s.From, To: s.To, Amount: s.Amount}, true
		}
	}
	return models.Payment{}, false
}
