package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/splitease/splitease/internal/money"
)

// row is a settlement with a formatted amount, for readable comparisons.
type row struct {
	From, To, Amount string
}

func rows(settlements []Settlement) []row {
	out := make([]row, len(settlements))
	for i, s := range settlements {
		out[i] = row{s.From, s.To, money.Format(s.Amount)}
	}
	return out
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name  string
		posts [][3]string // debtor, creditor, amount
		want  []row
	}{
		{
			name: "nothing posted",
			want: []row{},
		},
		{
			name:  "single debt",
			posts: [][3]string{{"bob", "alice", "12.5"}},
			want:  []row{{"bob", "alice", "12.50"}},
		},
		{
			name:  "reverse directions net out",
			posts: [][3]string{{"bob", "alice", "30"}, {"alice", "bob", "45"}},
			want:  []row{{"alice", "bob", "15.00"}},
		},
		{
			name:  "exactly settled",
			posts: [][3]string{{"bob", "alice", "30"}, {"alice", "bob", "30"}},
			want:  []row{},
		},
		{
			name:  "within threshold is settled",
			posts: [][3]string{{"bob", "alice", "10.01"}, {"alice", "bob", "10"}},
			want:  []row{},
		},
		{
			name:  "just above threshold",
			posts: [][3]string{{"bob", "alice", "10.012"}, {"alice", "bob", "10"}},
			want:  []row{{"bob", "alice", "0.01"}},
		},
		{
			name: "ordered by pair",
			posts: [][3]string{
				{"carol", "bob", "5"},
				{"alice", "carol", "7"},
				{"bob", "alice", "3"},
			},
			want: []row{
				{"bob", "alice", "3.00"},
				{"alice", "carol", "7.00"},
				{"carol", "bob", "5.00"},
			},
		},
		{
			name:  "rounds half away from zero",
			posts: [][3]string{{"alice", "bob", "0.125"}},
			want:  []row{{"alice", "bob", "0.13"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := BuildLedger([]string{"alice", "bob", "carol"})
			for _, p := range tt.posts {
				assert.True(t, l.post(p[0], p[1], d(p[2])))
			}
			assert.Equal(t, tt.want, rows(Simplify(l)))
		})
	}
}
