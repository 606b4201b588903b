package ghog

import (
	"bytes"

	gmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/bin"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/core/types"
)

// GHogContract shares SharePerSecond of its reward token between its pools by weight, with no end
type GHogContract struct {
	addr   common.Address
	master common.Address
}

func (cont *GHogContract) Address() common.Address {
	return cont.addr
}

func (cont *GHogContract) Master() common.Address {
	return cont.master
}

func (cont *GHogContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *GHogContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &GHogContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	if data.HogSAllocPoint == 0 {
		data.HogSAllocPoint = DefaultHogSAllocPoint
	}
	if data.GhogSAllocPoint == 0 {
		data.GhogSAllocPoint = DefaultGhogSAllocPoint
	}
	if data.SharePerSecond == nil || data.SharePerSecond.IsMinus() {
		return errors.Wrap(accrual.ErrInvalidAmount, "share per second")
	}
	if err := stakepool.Init(cc, cont.master, data.RewardToken, data.DevFund); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagPoolStartTime}, bin.Uint64Bytes(data.StartTime))
	cont.setSharePerSecond(cc, data.SharePerSecond)

	lastRewardTime := cont.lastRewardTime(cc)
	for _, p := range []*accrual.PoolInfo{
		accrual.NewPoolInfo(data.HogS, data.HogSAllocPoint, data.DepositFeeBP, data.WithdrawFeeBP, lastRewardTime),
		accrual.NewPoolInfo(data.GhogS, data.GhogSAllocPoint, data.DepositFeeBP, data.WithdrawFeeBP, lastRewardTime),
	} {
		if _, err := stakepool.AddPool(cc, p); err != nil {
			return err
		}
	}
	return nil
}

func (cont *GHogContract) engine() *stakepool.Engine {
	return stakepool.NewEngine(cont)
}

func (cont *GHogContract) setSharePerSecond(cc *types.ContractContext, rate *amount.Amount) {
	cc.SetContractData([]byte{tagSharePerSecond}, rate.Bytes())
}

// lastRewardTime is where a new pool starts accruing
func (cont *GHogContract) lastRewardTime(cc types.ContractLoader) uint64 {
	start := cont.PoolStartTime(cc)
	if cc.LastTimestamp() > start {
		return cc.LastTimestamp()
	}
	return start
}

//////////////////////////////////////////////////
// Schedule
//////////////////////////////////////////////////

func (cont *GHogContract) Window(cc types.ContractLoader) accrual.Window {
	return accrual.Window{Start: cont.PoolStartTime(cc), End: gmath.MaxUint64}
}

func (cont *GHogContract) Emission(cc types.ContractLoader) accrual.Emission {
	return accrual.SharedRate{
		SharePerSecond:  cont.SharePerSecond(cc),
		TotalAllocPoint: stakepool.TotalAllocPoint(cc),
	}
}

func (cont *GHogContract) CheckDeposit(cc types.ContractLoader) error {
	return nil
}

// RewardRecoverable is always false, the reward token backs an open ended emission
func (cont *GHogContract) RewardRecoverable(cc types.ContractLoader) bool {
	return false
}
