package ghog

import (
	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/core/types"
)

func (cont *GHogContract) Front() interface{} {
	return &front{
		cont: cont,
	}
}

type front struct {
	cont *GHogContract
}

func (f *front) MassUpdatePools(cc *types.ContractContext) error {
	return f.cont.MassUpdatePools(cc)
}

func (f *front) UpdatePool(cc *types.ContractContext, pid uint64) error {
	return f.cont.UpdatePool(cc, pid)
}

func (f *front) Deposit(cc *types.ContractContext, pid uint64, amt *amount.Amount) (*stakepool.DepositResult, error) {
	return f.cont.Deposit(cc, pid, amt)
}

func (f *front) Withdraw(cc *types.ContractContext, pid uint64, amt *amount.Amount) (*stakepool.WithdrawResult, error) {
	return f.cont.Withdraw(cc, pid, amt)
}

func (f *front) EmergencyWithdraw(cc *types.ContractContext, pid uint64) (*stakepool.EmergencyWithdrawResult, error) {
	return f.cont.EmergencyWithdraw(cc, pid)
}

func (f *front) PendingReward(cc types.ContractLoader, pid uint64, user common.Address) (*amount.Amount, error) {
	return f.cont.PendingReward(cc, pid, user)
}

func (f *front) PendingShare(cc types.ContractLoader, pid uint64, user common.Address) (*amount.Amount, error) {
	return f.cont.PendingReward(cc, pid, user)
}

func (f *front) PoolInfo(cc types.ContractLoader, pid uint64) (*accrual.PoolInfo, error) {
	return f.cont.PoolInfo(cc, pid)
}

func (f *front) UserInfo(cc types.ContractLoader, pid uint64, user common.Address) (*accrual.UserInfo, error) {
	return f.cont.UserInfo(cc, pid, user)
}

func (f *front) PoolLength(cc types.ContractLoader) uint64 {
	return f.cont.PoolLength(cc)
}

func (f *front) TotalAllocPoint(cc types.ContractLoader) uint64 {
	return f.cont.TotalAllocPoint(cc)
}

func (f *front) SharePerSecond(cc types.ContractLoader) *amount.Amount {
	return f.cont.SharePerSecond(cc)
}

func (f *front) PoolStartTime(cc types.ContractLoader) uint64 {
	return f.cont.PoolStartTime(cc)
}

func (f *front) RewardToken(cc types.ContractLoader) common.Address {
	return f.cont.RewardToken(cc)
}

func (f *front) Ghog(cc types.ContractLoader) common.Address {
	return f.cont.RewardToken(cc)
}

func (f *front) DevFund(cc types.ContractLoader) common.Address {
	return f.cont.DevFund(cc)
}

func (f *front) Operator(cc types.ContractLoader) common.Address {
	return f.cont.Operator(cc)
}

func (f *front) IsPaused(cc types.ContractLoader) bool {
	return f.cont.IsPaused(cc)
}

func (f *front) Add(cc *types.ContractContext, token common.Address, allocPoint uint64, depositFeeBP uint16, withdrawFeeBP uint16, gauge common.Address) (*PoolAddedResult, error) {
	return f.cont.Add(cc, token, allocPoint, depositFeeBP, withdrawFeeBP, gauge)
}

func (f *front) Set(cc *types.ContractContext, pid uint64, allocPoint uint64, depositFeeBP uint16, withdrawFeeBP uint16, gauge common.Address) (*PoolSetResult, error) {
	return f.cont.Set(cc, pid, allocPoint, depositFeeBP, withdrawFeeBP, gauge)
}

func (f *front) SetSharePerSecond(cc *types.ContractContext, rate *amount.Amount) (*RateResult, error) {
	return f.cont.SetSharePerSecond(cc, rate)
}

func (f *front) SetGauge(cc *types.ContractContext, pid uint64, gauge common.Address) (*GaugeResult, error) {
	return f.cont.SetGauge(cc, pid, gauge)
}

func (f *front) SetOperator(cc *types.ContractContext, operator common.Address) (*stakepool.OperatorResult, error) {
	return f.cont.SetOperator(cc, operator)
}

func (f *front) Pause(cc *types.ContractContext) error {
	return f.cont.Pause(cc)
}

func (f *front) Unpause(cc *types.ContractContext) error {
	return f.cont.Unpause(cc)
}

func (f *front) RecoverUnsupportedToken(cc *types.ContractContext, token common.Address, amt *amount.Amount, to common.Address) (*stakepool.RecoverResult, error) {
	return f.cont.RecoverUnsupportedToken(cc, token, amt, to)
}
