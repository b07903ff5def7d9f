package calculator

import (
	"context"
	"log/slog"
)

// SkipReason classifies why a record or share was left out of the ledger.
type SkipReason string

const (
	SkipMissingPayer        SkipReason = "missing_payer"
	SkipMissingParticipants SkipReason = "missing_participants"
	SkipNonPositiveAmount   SkipReason = "non_positive_amount"
	SkipSelfExpense         SkipReason = "self_expense"
	SkipNoReceiver          SkipReason = "no_receiver"
	SkipUnknownIdentifier   SkipReason = "unknown_identifier"
)

// Observer receives a call for every record or share the allocation skips.
// participantID is empty when the whole record was skipped.
type Observer interface {
	RecordSkipped(expenseID, participantID string, reason SkipReason)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(expenseID, participantID string, reason SkipReason)

// RecordSkipped calls f.
func (f ObserverFunc) RecordSkipped(expenseID, participantID string, reason SkipReason) {
	f(expenseID, participantID, reason)
}

// LogObserver reports skips on logger at Warn level. Self-expenses are expected and
// logged at Debug.
func LogObserver(logger *slog.Logger) Observer {
	return ObserverFunc(func(expenseID, participantID string, reason SkipReason) {
		level := slog.LevelWarn
		if reason == SkipSelfExpense {
			level = slog.LevelDebug
		}
		logger.Log(context.Background(), level, "Skipping expense in balance calculation",
			"expense_id", expenseID,
			"participant_id", participantID,
			"reason", string(reason),
		)
	})
}

// MultiObserver fans a skip out to every non-nil observer.
func MultiObserver(observers ...Observer) Observer {
	return ObserverFunc(func(expenseID, participantID string, reason SkipReason) {
		for _, o := range observers {
			if o != nil {
				o.RecordSkipped(expenseID, participantID, reason)
			}
		}
	})
}

type nopObserver struct{}

func (nopObserver) RecordSkipped(string, string, SkipReason) {}
