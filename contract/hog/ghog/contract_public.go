package ghog

import (
	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/bin"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/core/types"
)

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *GHogContract) MassUpdatePools(cc *types.ContractContext) error {
	return cont.engine().MassUpdatePools(cc)
}

func (cont *GHogContract) UpdatePool(cc *types.ContractContext, pid uint64) error {
	_, err := cont.engine().UpdatePool(cc, pid)
	return err
}

func (cont *GHogContract) Deposit(cc *types.ContractContext, pid uint64, amt *amount.Amount) (*stakepool.DepositResult, error) {
	return cont.engine().Deposit(cc, pid, amt)
}

func (cont *GHogContract) Withdraw(cc *types.ContractContext, pid uint64, amt *amount.Amount) (*stakepool.WithdrawResult, error) {
	return cont.engine().Withdraw(cc, pid, amt)
}

func (cont *GHogContract) EmergencyWithdraw(cc *types.ContractContext, pid uint64) (*stakepool.EmergencyWithdrawResult, error) {
	return cont.engine().EmergencyWithdraw(cc, pid)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *GHogContract) PendingReward(cc types.ContractLoader, pid uint64, user common.Address) (*amount.Amount, error) {
	return cont.engine().PendingReward(cc, pid, user)
}

func (cont *GHogContract) PoolInfo(cc types.ContractLoader, pid uint64) (*accrual.PoolInfo, error) {
	return stakepool.Pool(cc, pid)
}

func (cont *GHogContract) UserInfo(cc types.ContractLoader, pid uint64, user common.Address) (*accrual.UserInfo, error) {
	return stakepool.User(cc, pid, user)
}

func (cont *GHogContract) PoolLength(cc types.ContractLoader) uint64 {
	return stakepool.PoolLength(cc)
}

func (cont *GHogContract) TotalAllocPoint(cc types.ContractLoader) uint64 {
	return stakepool.TotalAllocPoint(cc)
}

func (cont *GHogContract) SharePerSecond(cc types.ContractLoader) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tagSharePerSecond}))
}

func (cont *GHogContract) PoolStartTime(cc types.ContractLoader) uint64 {
	bs := cc.ContractData([]byte{tagPoolStartTime})
	if len(bs) != 8 {
		return 0
	}
	return bin.Uint64(bs)
}

func (cont *GHogContract) RewardToken(cc types.ContractLoader) common.Address {
	return stakepool.RewardToken(cc)
}

func (cont *GHogContract) DevFund(cc types.ContractLoader) common.Address {
	return stakepool.FeeRecipient(cc)
}

func (cont *GHogContract) Operator(cc types.ContractLoader) common.Address {
	return stakepool.Operator(cc)
}

func (cont *GHogContract) IsPaused(cc types.ContractLoader) bool {
	return stakepool.IsPaused(cc)
}
