package metrics

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/rlog"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/core/types"
)

const namespace = "hogpool"

var log = rlog.New("metrics")

// Metrics records pool activity from journaled events
type Metrics struct {
	registry    *prometheus.Registry
	events      *prometheus.CounterVec
	deposits    *prometheus.CounterVec
	withdrawals *prometheus.CounterVec
	emergencies *prometheus.CounterVec
	harvested   *prometheus.CounterVec
	fees        *prometheus.CounterVec
	shortfall   *prometheus.CounterVec
	staked      *prometheus.GaugeVec
}

// New returns Metrics registered on its own registry
func New() *Metrics {
	poolLabels := []string{"pool", "pid"}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "journaled events by type",
		}, []string{"type"}),
		deposits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deposited_tokens_total",
			Help:      "gross deposited amount",
		}, poolLabels),
		withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawn_tokens_total",
			Help:      "gross withdrawn amount",
		}, poolLabels),
		emergencies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emergency_withdrawn_tokens_total",
			Help:      "principal returned by emergency withdraw",
		}, poolLabels),
		harvested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "harvested_reward_total",
			Help:      "reward paid to stakers",
		}, poolLabels),
		fees: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fees_total",
			Help:      "deposit and withdraw fees sent to the fee recipient",
		}, poolLabels),
		shortfall: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reward_shortfall_total",
			Help:      "reward owed but not covered by the reserve",
		}, poolLabels),
		staked: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "staked_tokens",
			Help:      "TotalStaked of the pool",
		}, poolLabels),
	}
	m.registry.MustRegister(m.events, m.deposits, m.withdrawals, m.emergencies, m.harvested, m.fees, m.shortfall, m.staked)
	return m
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe counts one event, unknown types only bump the event counter
func (m *Metrics) Observe(ev *types.Event) {
	m.events.WithLabelValues(ev.Type).Inc()
	switch ev.Type {
	case stakepool.EventDeposit:
		res := &stakepool.DepositResult{}
		if err := DecodeResult(ev, res); err != nil {
			log.Warn("Observe", "type", ev.Type, "err", err)
			return
		}
		labels := poolLabels(ev.Contract, res.Pid)
		m.deposits.WithLabelValues(labels...).Add(ToFloat(res.Amount))
		m.harvested.WithLabelValues(labels...).Add(ToFloat(res.Harvested))
		m.fees.WithLabelValues(labels...).Add(ToFloat(res.Fee))
		m.shortfall.WithLabelValues(labels...).Add(ToFloat(res.Shortfall))
	case stakepool.EventWithdraw:
		res := &stakepool.WithdrawResult{}
		if err := DecodeResult(ev, res); err != nil {
			log.Warn("Observe", "type", ev.Type, "err", err)
			return
		}
		labels := poolLabels(ev.Contract, res.Pid)
		m.withdrawals.WithLabelValues(labels...).Add(ToFloat(res.Amount))
		m.harvested.WithLabelValues(labels...).Add(ToFloat(res.Harvested))
		m.fees.WithLabelValues(labels...).Add(ToFloat(res.Fee))
		m.shortfall.WithLabelValues(labels...).Add(ToFloat(res.Shortfall))
	case stakepool.EventEmergencyWithdraw:
		res := &stakepool.EmergencyWithdrawResult{}
		if err := DecodeResult(ev, res); err != nil {
			log.Warn("Observe", "type", ev.Type, "err", err)
			return
		}
		m.emergencies.WithLabelValues(poolLabels(ev.Contract, res.Pid)...).Add(ToFloat(res.Amount))
	}
}

// SetStaked records the TotalStaked of a pool
func (m *Metrics) SetStaked(pool common.Address, pid uint64, staked *amount.Amount) {
	m.staked.WithLabelValues(poolLabels(pool, pid)...).Set(ToFloat(staked))
}

func poolLabels(pool common.Address, pid uint64) []string {
	return []string{pool.String(), strconv.FormatUint(pid, 10)}
}

// DecodeResult fills out from the event result.
// Results of events read back from a store are generic maps and go through json.
func DecodeResult(ev *types.Event, out interface{}) error {
	switch r := ev.Result.(type) {
	case *stakepool.DepositResult:
		if o, ok := out.(*stakepool.DepositResult); ok {
			*o = *r
			return nil
		}
	case *stakepool.WithdrawResult:
		if o, ok := out.(*stakepool.WithdrawResult); ok {
			*o = *r
			return nil
		}
	case *stakepool.EmergencyWithdrawResult:
		if o, ok := out.(*stakepool.EmergencyWithdrawResult); ok {
			*o = *r
			return nil
		}
	}
	bs, err := json.Marshal(ev.Result)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := json.Unmarshal(bs, out); err != nil {
		return errors.Wrapf(err, "%v result", ev.Type)
	}
	return nil
}

// ToFloat returns the amount in whole tokens
func ToFloat(am *amount.Amount) float64 {
	if am == nil || am.Int == nil {
		return 0
	}
	f, _ := decimal.NewFromBigInt(am.Int, -amount.FractionalCount).Float64()
	return f
}
