package ghog

import (
	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
)

const (
	EventAdd            = "Add"
	EventSet            = "Set"
	EventSharePerSecond = "SharePerSecond"
	EventGauge          = "Gauge"
)

type PoolAddedResult struct {
	Pid           uint64         `json:"pid"`
	Token         common.Address `json:"token"`
	AllocPoint    uint64         `json:"allocPoint"`
	DepositFeeBP  uint16         `json:"depositFeeBP"`
	WithdrawFeeBP uint16         `json:"withdrawFeeBP"`
	Gauge         common.Address `json:"gauge"`
}

type PoolSetResult struct {
	Pid             uint64         `json:"pid"`
	AllocPoint      uint64         `json:"allocPoint"`
	TotalAllocPoint uint64         `json:"totalAllocPoint"`
	DepositFeeBP    uint16         `json:"depositFeeBP"`
	WithdrawFeeBP   uint16         `json:"withdrawFeeBP"`
	Gauge           common.Address `json:"gauge"`
}

type RateResult struct {
	Previous       *amount.Amount `json:"previous"`
	SharePerSecond *amount.Amount `json:"sharePerSecond"`
}

type GaugeResult struct {
	Pid      uint64         `json:"pid"`
	Previous common.Address `json:"previous"`
	Gauge    common.Address `json:"gauge"`
}
