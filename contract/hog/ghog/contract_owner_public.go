package ghog

import (
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/core/types"
)

//////////////////////////////////////////////////
// Public Writer only Operator Functions
// Every change of weights, fees or rate settles all pools first
//////////////////////////////////////////////////

// Add opens a pool for token, one pool per token
func (cont *GHogContract) Add(cc *types.ContractContext, token common.Address, allocPoint uint64, depositFeeBP uint16, withdrawFeeBP uint16, gauge common.Address) (*PoolAddedResult, error) {
	eng := cont.engine()
	if err := eng.CheckOperator(cc); err != nil {
		return nil, err
	}
	if err := eng.MassUpdatePools(cc); err != nil {
		return nil, err
	}
	pool := accrual.NewPoolInfo(token, allocPoint, depositFeeBP, withdrawFeeBP, cont.lastRewardTime(cc))
	pool.Gauge = gauge
	pid, err := stakepool.AddPool(cc, pool)
	if err != nil {
		return nil, err
	}

	result := &PoolAddedResult{
		Pid:           pid,
		Token:         token,
		AllocPoint:    allocPoint,
		DepositFeeBP:  depositFeeBP,
		WithdrawFeeBP: withdrawFeeBP,
		Gauge:         gauge,
	}
	cc.EmitEvent(EventAdd, result)
	return result, nil
}

// Set changes the weight, fees and gauge of pid
func (cont *GHogContract) Set(cc *types.ContractContext, pid uint64, allocPoint uint64, depositFeeBP uint16, withdrawFeeBP uint16, gauge common.Address) (*PoolSetResult, error) {
	eng := cont.engine()
	if err := eng.CheckOperator(cc); err != nil {
		return nil, err
	}
	if err := eng.MassUpdatePools(cc); err != nil {
		return nil, err
	}
	if _, err := stakepool.SetFees(cc, pid, depositFeeBP, withdrawFeeBP); err != nil {
		return nil, err
	}
	if _, err := stakepool.SetAllocPoint(cc, pid, allocPoint); err != nil {
		return nil, err
	}
	if _, err := stakepool.SetGauge(cc, pid, gauge); err != nil {
		return nil, err
	}

	result := &PoolSetResult{
		Pid:             pid,
		AllocPoint:      allocPoint,
		TotalAllocPoint: stakepool.TotalAllocPoint(cc),
		DepositFeeBP:    depositFeeBP,
		WithdrawFeeBP:   withdrawFeeBP,
		Gauge:           gauge,
	}
	cc.EmitEvent(EventSet, result)
	return result, nil
}

// SetSharePerSecond changes the emission rate from now on
func (cont *GHogContract) SetSharePerSecond(cc *types.ContractContext, rate *amount.Amount) (*RateResult, error) {
	eng := cont.engine()
	if err := eng.CheckOperator(cc); err != nil {
		return nil, err
	}
	if rate.IsMinus() {
		return nil, errors.Wrapf(accrual.ErrInvalidAmount, "share per second %v", rate.String())
	}
	if err := eng.MassUpdatePools(cc); err != nil {
		return nil, err
	}
	result := &RateResult{
		Previous:       cont.SharePerSecond(cc),
		SharePerSecond: rate.Clone(),
	}
	cont.setSharePerSecond(cc, rate)
	cc.EmitEvent(EventSharePerSecond, result)
	return result, nil
}

// SetGauge records the gauge of pid, the gauge is never called
func (cont *GHogContract) SetGauge(cc *types.ContractContext, pid uint64, gauge common.Address) (*GaugeResult, error) {
	eng := cont.engine()
	if err := eng.CheckOperator(cc); err != nil {
		return nil, err
	}
	if err := eng.MassUpdatePools(cc); err != nil {
		return nil, err
	}
	prev, err := stakepool.SetGauge(cc, pid, gauge)
	if err != nil {
		return nil, err
	}

	result := &GaugeResult{
		Pid:      pid,
		Previous: prev,
		Gauge:    gauge,
	}
	cc.EmitEvent(EventGauge, result)
	return result, nil
}

func (cont *GHogContract) SetOperator(cc *types.ContractContext, operator common.Address) (*stakepool.OperatorResult, error) {
	return cont.engine().SetOperator(cc, operator)
}

func (cont *GHogContract) Pause(cc *types.ContractContext) error {
	return cont.engine().SetPaused(cc, true)
}

func (cont *GHogContract) Unpause(cc *types.ContractContext) error {
	return cont.engine().SetPaused(cc, false)
}

func (cont *GHogContract) RecoverUnsupportedToken(cc *types.ContractContext, token common.Address, amt *amount.Amount, to common.Address) (*stakepool.RecoverResult, error) {
	return cont.engine().RecoverUnsupportedToken(cc, token, amt, to)
}
