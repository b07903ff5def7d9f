package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/splitease/splitease/internal/calculator"
)

func TestRecordSkipped(t *testing.T) {
	m := New()
	m.RecordSkipped("e1", "", calculator.SkipMissingPayer)
	m.RecordSkipped("e2", "", calculator.SkipMissingPayer)
	m.RecordSkipped("e3", "ghost", calculator.SkipUnknownIdentifier)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.skipped.WithLabelValues(string(calculator.SkipMissingPayer))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.skipped.WithLabelValues(string(calculator.SkipUnknownIdentifier))))
}

func TestOpenSettlementsAggregatesUsers(t *testing.T) {
	m := New()
	m.SetOpenSettlements("alice", 3)
	m.SetOpenSettlements("bob", 2)
	m.SetOpenSettlements("alice", 1)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.open))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.recomputations))

	m.ForgetUser("bob")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.open))
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.RecordSkipped("e1", "", calculator.SkipSelfExpense)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.True(t, strings.Contains(string(body), `splitease_balance_skipped_records_total{reason="self_expense"} 1`))
	assert.True(t, strings.Contains(string(body), "splitease_open_settlements 0"))
}
