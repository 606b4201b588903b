package genesis

import (
	"bytes"
	"math/big"

	gmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/bin"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/core/types"
)

// GenesisContract pays a fixed HOG budget to its pools over one schedule window
type GenesisContract struct {
	addr   common.Address
	master common.Address
}

func (cont *GenesisContract) Address() common.Address {
	return cont.addr
}

func (cont *GenesisContract) Master() common.Address {
	return cont.master
}

func (cont *GenesisContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *GenesisContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &GenesisContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	if data.Duration == 0 {
		data.Duration = DefaultDuration
	}
	if data.RecoverGracePeriod == 0 {
		data.RecoverGracePeriod = DefaultRecoverGracePeriod
	}
	if _, err := accrual.NewWindow(data.StartTime, data.Duration); err != nil {
		return err
	}
	if _, overflow := gmath.SafeAdd(data.StartTime+data.Duration, data.RecoverGracePeriod); overflow {
		return errors.Wrapf(accrual.ErrInvalidSchedule, "grace period %v", data.RecoverGracePeriod)
	}
	if data.TotalRewards == nil || !data.TotalRewards.IsPlus() {
		return errors.Wrap(accrual.ErrInvalidAmount, "total rewards")
	}
	if len(data.Pools) == 0 {
		return errors.Wrap(accrual.ErrInvalidSchedule, "no pools")
	}
	var totalAllocPoint uint64
	for _, p := range data.Pools {
		var overflow bool
		if totalAllocPoint, overflow = gmath.SafeAdd(totalAllocPoint, p.AllocPoint); overflow {
			return accrual.ErrArithmeticOverflow
		}
	}
	if totalAllocPoint == 0 {
		return errors.Wrap(accrual.ErrInvalidSchedule, "zero total alloc point")
	}

	if err := stakepool.Init(cc, cont.master, data.RewardToken, data.FeeRecipient); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagStartTime}, bin.Uint64Bytes(data.StartTime))
	cc.SetContractData([]byte{tagDuration}, bin.Uint64Bytes(data.Duration))
	cc.SetContractData([]byte{tagTotalRewards}, data.TotalRewards.Bytes())
	cc.SetContractData([]byte{tagRecoverGracePeriod}, bin.Uint64Bytes(data.RecoverGracePeriod))
	if data.RejectBeforeStart {
		cc.SetContractData([]byte{tagRejectBeforeStart}, []byte{1})
	}

	lastRewardTime := data.StartTime
	if cc.LastTimestamp() > lastRewardTime {
		lastRewardTime = cc.LastTimestamp()
	}
	duration := amount.NewAmountFromBig(new(big.Int).SetUint64(data.Duration))
	total := amount.NewAmountFromBig(new(big.Int).SetUint64(totalAllocPoint))
	for _, p := range data.Pools {
		rps, err := amount.CheckedMulDiv(data.TotalRewards, amount.NewAmountFromBig(new(big.Int).SetUint64(p.AllocPoint)), total)
		if err != nil {
			return accrual.ErrArithmeticOverflow
		}
		pool := accrual.NewPoolInfo(p.Token, p.AllocPoint, p.DepositFeeBP, p.WithdrawFeeBP, lastRewardTime)
		pool.RewardPerSecond = rps.Div(duration)
		if _, err := stakepool.AddPool(cc, pool); err != nil {
			return err
		}
	}
	return nil
}

func (cont *GenesisContract) engine() *stakepool.Engine {
	return stakepool.NewEngine(cont)
}

//////////////////////////////////////////////////
// Schedule
//////////////////////////////////////////////////

func (cont *GenesisContract) Window(cc types.ContractLoader) accrual.Window {
	start := cont.StartTime(cc)
	return accrual.Window{Start: start, End: start + cont.Duration(cc)}
}

func (cont *GenesisContract) Emission(cc types.ContractLoader) accrual.Emission {
	return accrual.FixedRate{}
}

func (cont *GenesisContract) CheckDeposit(cc types.ContractLoader) error {
	if cont.RejectBeforeStart(cc) && cc.LastTimestamp() < cont.StartTime(cc) {
		return errors.Wrapf(accrual.ErrPoolNotStarted, "starts at %v", cont.StartTime(cc))
	}
	return nil
}

// RewardRecoverable reports whether the grace period after the schedule end has passed
func (cont *GenesisContract) RewardRecoverable(cc types.ContractLoader) bool {
	return cc.LastTimestamp() >= cont.EndTime(cc)+cont.RecoverGracePeriod(cc)
}
