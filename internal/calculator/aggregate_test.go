package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splitease/splitease/internal/money"
)

var sample = []Settlement{
	{From: "bob", To: "me", Amount: d("30.00")},
	{From: "me", To: "carol", Amount: d("12.50")},
	{From: "dave", To: "me", Amount: d("0.25")},
	{From: "bob", To: "carol", Amount: d("7.00")},
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample, "me")
	assert.Equal(t, "30.25", money.Format(s.TotalOwedToUser))
	assert.Equal(t, "12.50", money.Format(s.TotalUserOwes))
	assert.Equal(t, "17.75", money.Format(s.NetBalance))

	s = Summarize(sample, "carol")
	assert.Equal(t, "19.50", money.Format(s.TotalOwedToUser))
	assert.Equal(t, "0.00", money.Format(s.TotalUserOwes))
	assert.Equal(t, "19.50", money.Format(s.NetBalance))
}

func TestSummarizeWithoutCurrentUser(t *testing.T) {
	s := Summarize(sample, "")
	assert.True(t, s.TotalOwedToUser.IsZero())
	assert.True(t, s.TotalUserOwes.IsZero())
	assert.True(t, s.NetBalance.IsZero())

	s = Summarize(nil, "me")
	assert.Equal(t, "0.00", money.Format(s.NetBalance))
}

func TestBalancesInvolving(t *testing.T) {
	assert.Equal(t, []row{
		{"bob", "me", "30.00"},
		{"bob", "carol", "7.00"},
	}, rows(BalancesInvolving(sample, "bob")))

	assert.Empty(t, BalancesInvolving(sample, "nobody"))
}

func TestBalancesInGroup(t *testing.T) {
	assert.Equal(t, []row{
		{"bob", "me", "30.00"},
		{"me", "carol", "12.50"},
		{"bob", "carol", "7.00"},
	}, rows(BalancesInGroup(sample, []string{"me", "bob", "carol"})))

	assert.Equal(t, []row{
		{"bob", "carol", "7.00"},
	}, rows(BalancesInGroup(sample, []string{"bob", "carol"})))

	assert.Empty(t, BalancesInGroup(sample, nil))
}

func TestCounterpartyBalances(t *testing.T) {
	got := CounterpartyBalances(sample, "me")
	assert.Len(t, got, 3)
	want := map[string]string{"bob": "30.00", "carol": "-12.50", "dave": "0.25"}
	for _, c := range got {
		assert.Equal(t, want[c.ID], money.Format(c.Amount), c.ID)
	}

	assert.Nil(t, CounterpartyBalances(sample, ""))
}

func TestBalanceWith(t *testing.T) {
	assert.Equal(t, "30.00", money.Format(BalanceWith(sample, "me", "bob")))
	assert.Equal(t, "-12.50", money.Format(BalanceWith(sample, "me", "carol")))
	assert.True(t, BalanceWith(sample, "me", "erin").IsZero())
}

func TestSuggestPayment(t *testing.T) {
	p, ok := SuggestPayment(sample, "me", "carol")
	assert.True(t, ok)
	assert.Equal(t, "me", p.From)
	assert.Equal(t, "carol", p.To)
	assert.Equal(t, "12.50", money.Format(p.Amount))

	p, ok = SuggestPayment(sample, "me", "bob")
	assert.True(t, ok)
	assert.Equal(t, "bob", p.From)
	assert.Equal(t, "me", p.To)

	_, ok = SuggestPayment(sample, "me", "erin")
	assert.False(t, ok)
	_, ok = SuggestPayment(sample, "", "bob")
	assert.False(t, ok)
}
