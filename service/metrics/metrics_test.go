package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/core/types"
)

func TestObserveTypedAndStoredResults(t *testing.T) {
	m := New()
	pool := common.SeedAddress("pool")
	user := common.SeedAddress("user")

	m.Observe(&types.Event{
		Contract: pool,
		Type:     stakepool.EventDeposit,
		Result: &stakepool.DepositResult{
			Pid:       1,
			User:      user,
			Amount:    amount.NewAmount(100, 0),
			Harvested: amount.NewAmount(2, 0),
			Principal: amount.NewAmount(99, 0),
			Fee:       amount.NewAmount(1, 0),
			Shortfall: amount.ZeroCoin(),
		},
	})
	// the shape a journal entry has after a store round trip
	m.Observe(&types.Event{
		Contract: pool,
		Type:     stakepool.EventWithdraw,
		Result: map[string]interface{}{
			"pid":       float64(1),
			"user":      user.String(),
			"amount":    "50",
			"harvested": "3.5",
			"principal": "50",
			"fee":       "0",
			"shortfall": "0.5",
		},
	})
	m.Observe(&types.Event{Contract: pool, Type: "Unknown", Result: nil})

	labels := []string{pool.String(), "1"}
	assert.Equal(t, 100.0, testutil.ToFloat64(m.deposits.WithLabelValues(labels...)))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.withdrawals.WithLabelValues(labels...)))
	assert.Equal(t, 5.5, testutil.ToFloat64(m.harvested.WithLabelValues(labels...)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fees.WithLabelValues(labels...)))
	assert.Equal(t, 0.5, testutil.ToFloat64(m.shortfall.WithLabelValues(labels...)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("Unknown")))

	m.SetStaked(pool, 1, amount.NewAmount(49, 0))
	assert.Equal(t, 49.0, testutil.ToFloat64(m.staked.WithLabelValues(labels...)))
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetStaked(common.SeedAddress("pool"), 0, amount.NewAmount(7, 0))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "hogpool_staked_tokens"))
}

func TestToFloat(t *testing.T) {
	assert.Equal(t, 0.0, ToFloat(nil))
	assert.Equal(t, 1.25, ToFloat(amount.MustParseAmount("1.25")))
}
