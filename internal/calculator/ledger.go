// Package calculator derives who owes whom from a snapshot of expense records.
//
// The pipeline is BuildLedger -> Allocate (once per expense) -> Simplify, followed by
// the aggregate queries in aggregate.go. Every step is a pure function of its input:
// nothing is cached between calls and no input, however malformed, makes it fail.
package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Ledger is the pairwise debt matrix: owes[debtor][creditor] is the amount debtor has
// accumulated toward creditor from expenses alone, not yet netted against the reverse
// direction.
type Ledger struct {
	owes map[string]map[string]decimal.Decimal
	ids  []string
}

// BuildLedger creates a zero-initialised matrix over the given identifiers.
// Every identifier gets an entry for every other identifier; there are no self-entries.
// Empty and duplicate identifiers are ignored.
func BuildLedger(ids []string) *Ledger {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		unique = append(unique, id)
	}
	sort.Strings(unique)

	owes := make(map[string]map[string]decimal.Decimal, len(unique))
	for _, debtor := range unique {
		row := make(map[string]decimal.Decimal, len(unique)-1)
		for _, creditor := range unique {
			if creditor != debtor {
				row[creditor] = decimal.Zero
			}
		}
		owes[debtor] = row
	}

	return &Ledger{owes: owes, ids: unique}
}

// Identifiers returns the known identifiers in ascending order.
func (l *Ledger) Identifiers() []string {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out
}

// Known reports whether id has a row in the matrix.
func (l *Ledger) Known(id string) bool {
	_, ok := l.owes[id]
	return ok
}

// Len returns the number of known identifiers.
func (l *Ledger) Len() int {
	return len(l.ids)
}

// Owes returns the accumulated directed debt of debtor toward creditor.
func (l *Ledger) Owes(debtor, creditor string) decimal.Decimal {
	return l.owes[debtor][creditor]
}

// Net returns the signed amount u owes v once both directions are combined.
// Positive means u owes v; negative means v owes u. Net(u, v) == -Net(v, u).
func (l *Ledger) Net(u, v string) decimal.Decimal {
	return l.Owes(u, v).Sub(l.Owes(v, u))
}

// post adds amount to owes[debtor][creditor]. It reports false, leaving the matrix
// untouched, when either side is unknown or both sides are the same person.
func (l *Ledger) post(debtor, creditor string, amount decimal.Decimal) bool {
	if debtor == creditor {
		return false
	}
	row, ok := l.owes[debtor]
	if !ok || !l.Known(creditor) {
		return false
	}
	row[creditor] = row[creditor].Add(amount)
	return true
}
