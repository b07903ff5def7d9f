package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
)

// Allocate folds one expense into the ledger and returns the number of shares posted.
//
// Algorithm:
//   - Records without payer, participants or a positive amount are skipped.
//   - An expense whose only participant is the payer affects nobody.
//   - Payments: the receiver is the first participant that is not the payer. The payment
//     reduces what the payer owes the receiver, so it is posted as owes[receiver][payer].
//   - Equal splits, and custom splits whose stored amounts are all zero with more than one
//     participant, use amount / count(participants) for every non-payer.
//   - Other custom splits use the stored amount; zero or negative shares owe nothing.
//   - Each share is posted as owes[participant][payer] when both are known identifiers.
//
// Every skip is reported to obs. Allocation order does not matter: posting is additive.
func Allocate(l *Ledger, e *models.Expense, obs Observer) int {
	if obs == nil {
		obs = nopObserver{}
	}

	switch {
	case e.PaidBy == "":
		obs.RecordSkipped(e.ID, "", SkipMissingPayer)
		return 0
	case len(e.Participants) == 0:
		obs.RecordSkipped(e.ID, "", SkipMissingParticipants)
		return 0
	case !e.Amount.IsPositive():
		obs.RecordSkipped(e.ID, "", SkipNonPositiveAmount)
		return 0
	}

	if len(e.Participants) == 1 && e.Participants[0].UserID == e.PaidBy {
		obs.RecordSkipped(e.ID, "", SkipSelfExpense)
		return 0
	}

	if e.IsPayment || e.SplitType == models.SplitPayment {
		return allocatePayment(l, e, obs)
	}

	shares := sharesFor(e)
	posted := 0
	for _, p := range e.Participants {
		if p.UserID == e.PaidBy {
			continue
		}
		share := shares(p)
		if !share.IsPositive() {
			continue
		}
		if !l.post(p.UserID, e.PaidBy, share) {
			obs.RecordSkipped(e.ID, p.UserID, SkipUnknownIdentifier)
			continue
		}
		posted++
	}
	return posted
}

func allocatePayment(l *Ledger, e *models.Expense, obs Observer) int {
	receiver := ""
	for _, p := range e.Participants {
		if p.UserID != "" && p.UserID != e.PaidBy {
			receiver = p.UserID
			break
		}
	}
	if receiver == "" {
		obs.RecordSkipped(e.ID, "", SkipNoReceiver)
		return 0
	}
	if !l.post(receiver, e.PaidBy, e.Amount) {
		obs.RecordSkipped(e.ID, receiver, SkipUnknownIdentifier)
		return 0
	}
	return 1
}

// sharesFor picks the per-participant amount rule for a non-payment expense.
func sharesFor(e *models.Expense) func(models.Share) decimal.Decimal {
	if e.SplitType == models.SplitEqual || (len(e.Participants) > 1 && !hasStoredAmounts(e)) {
		equal := e.Amount.Div(decimal.NewFromInt(int64(len(e.Participants))))
		return func(models.Share) decimal.Decimal { return equal }
	}
	return func(p models.Share) decimal.Decimal { return p.Amount }
}

func hasStoredAmounts(e *models.Expense) bool {
	for _, p := range e.Participants {
		if p.Amount.IsPositive() {
			return true
		}
	}
	return false
}
