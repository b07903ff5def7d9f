package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitease/splitease/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func share(id, amount string) models.Share {
	if amount == "" {
		return models.Share{UserID: id}
	}
	return models.Share{UserID: id, Amount: d(amount)}
}

func TestBuildLedger(t *testing.T) {
	l := BuildLedger([]string{"carol", "alice", "bob", "alice", ""})

	require.Equal(t, []string{"alice", "bob", "carol"}, l.Identifiers())
	assert.Equal(t, 3, l.Len())

	for _, u := range l.Identifiers() {
		assert.True(t, l.Known(u))
		row := l.owes[u]
		assert.Len(t, row, 2, "row for %s", u)
		_, self := row[u]
		assert.False(t, self, "self entry for %s", u)
		for v, amount := range row {
			assert.True(t, amount.IsZero(), "%s -> %s", u, v)
		}
	}
	assert.False(t, l.Known(""))
	assert.False(t, l.Known("dave"))
}

func TestBuildLedgerEmpty(t *testing.T) {
	l := BuildLedger(nil)
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, Simplify(l))
}

func TestLedgerPost(t *testing.T) {
	l := BuildLedger([]string{"alice", "bob"})

	assert.True(t, l.post("bob", "alice", d("12.5")))
	assert.True(t, l.post("alice", "bob", d("2.5")))
	assert.False(t, l.post("alice", "alice", d("1")))
	assert.False(t, l.post("dave", "alice", d("1")))
	assert.False(t, l.post("alice", "dave", d("1")))

	assert.True(t, l.Owes("bob", "alice").Equal(d("12.5")))
	assert.True(t, l.Net("bob", "alice").Equal(d("10")))
	assert.True(t, l.Net("alice", "bob").Equal(d("-10")))
	assert.True(t, l.Owes("dave", "alice").IsZero())
}
