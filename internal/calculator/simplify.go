package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/money"
)

// Settlement is a net debt: From owes To exactly Amount.
type Settlement struct {
	From   string
	To     string
	Amount decimal.Decimal
}

// Involves reports whether id is either side of the settlement.
func (s Settlement) Involves(id string) bool {
	return s.From == id || s.To == id
}

// Simplify collapses the matrix into at most one settlement per unordered pair.
//
// Each pair {u, v} with u < v is visited once. Pairs whose net is within
// money.Threshold are settled and produce nothing; otherwise the debtor side owes the
// rounded absolute net. The result is ordered by (u, v).
func Simplify(l *Ledger) []Settlement {
	var settlements []Settlement
	for i, u := range l.ids {
		for _, v := range l.ids[i+1:] {
			net := l.Net(u, v)
			if money.IsNoise(net) {
				continue
			}
			if net.IsPositive() {
				settlements = append(settlements, Settlement{From: u, To: v, Amount: money.Round2(net)})
			} else {
				settlements = append(settlements, Settlement{From: v, To: u, Amount: money.Round2(net.Neg())})
			}
		}
	}
	return settlements
}
