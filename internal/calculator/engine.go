package calculator

import "log/slog"

// Engine runs the balance pipeline over snapshots. It holds no state besides the
// observer and is safe for concurrent use.
type Engine struct {
	observer Observer
}

// NewEngine creates an engine reporting skipped records to obs.
// A nil obs logs skips through the default slog logger.
func NewEngine(obs Observer) *Engine {
	if obs == nil {
		obs = LogObserver(slog.Default())
	}
	return &Engine{observer: obs}
}

// Ledger builds the pairwise matrix for the snapshot and folds every expense into it.
func (e *Engine) Ledger(s *Snapshot) *Ledger {
	l := BuildLedger(s.Identifiers())
	if l.Len() == 0 {
		return l
	}
	for i := range s.Expenses {
		Allocate(l, &s.Expenses[i], e.observer)
	}
	return l
}

// CalculateBalances returns the simplified settlement list for the snapshot.
func (e *Engine) CalculateBalances(s *Snapshot) []Settlement {
	settlements := Simplify(e.Ledger(s))
	slog.Debug("Balances calculated",
		"current_user", s.CurrentUserID,
		"expenses_count", len(s.Expenses),
		"friends_count", len(s.Friends),
		"settlements_count", len(settlements),
	)
	return settlements
}

// Summary returns the current user's totals for the snapshot.
func (e *Engine) Summary(s *Snapshot) Summary {
	return Summarize(e.CalculateBalances(s), s.CurrentUserID)
}

// GroupBalances returns the settlements between members of groupID.
// ok is false when the group is not in the snapshot.
func (e *Engine) GroupBalances(s *Snapshot, groupID string) (settlements []Settlement, ok bool) {
	g := s.GroupByID(groupID)
	if g == nil {
		return nil, false
	}
	return BalancesInGroup(e.CalculateBalances(s), g.Members), true
}
