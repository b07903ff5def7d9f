package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"12.34", "12.34", false},
		{"12,34", "12.34", false},
		{" 7 ", "7", false},
		{"0.333", "0.333", false},
		{"0", "0", false},
		{"", "", true},
		{"-1", "", true},
		{"+1", "", true},
		{"1.2.3", "", true},
		{"abc", "", true},
		{"1 000", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParsePositiveRejectsZero(t *testing.T) {
	_, err := ParsePositive("0.00")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	d, err := ParsePositive("0.01")
	require.NoError(t, err)
	assert.Equal(t, "0.01", d.String())
}

func TestRound2AndFormat(t *testing.T) {
	third := decimal.NewFromInt(100).Div(decimal.NewFromInt(3))
	assert.Equal(t, "33.33", Format(third))
	assert.Equal(t, "33.33", Round2(third).String())

	assert.Equal(t, "0.01", Format(decimal.RequireFromString("0.005")))
	assert.Equal(t, "-0.01", Format(decimal.RequireFromString("-0.005")))
	assert.Equal(t, "42.00", Format(decimal.NewFromInt(42)))
}

func TestIsNoise(t *testing.T) {
	assert.True(t, IsNoise(decimal.Zero))
	assert.True(t, IsNoise(decimal.RequireFromString("0.01")))
	assert.True(t, IsNoise(decimal.RequireFromString("-0.01")))
	assert.False(t, IsNoise(decimal.RequireFromString("0.011")))
	assert.False(t, IsNoise(decimal.RequireFromString("-5")))
}

func TestSum(t *testing.T) {
	got := Sum(decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2"))
	assert.True(t, got.Equal(decimal.RequireFromString("0.3")))
	assert.True(t, Sum().IsZero())
}
