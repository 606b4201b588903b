package genesis

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

// MassUpdatePools settles every pool up to now
func (cont *GenesisContract) MassUpdatePools(cc *types.ContractContext) error {
	return cont.engine().MassUpdatePools(cc)
}

func (cont *GenesisContract) UpdatePool(cc *types.ContractContext, pid uint64) error {
	_, err := cont.engine().UpdatePool(cc, pid)
	return err
}

// Deposit stakes amt in pid and harvests, a zero amt only harvests
func (cont *GenesisContract) Deposit(cc *types.ContractContext, pid uint64, amt *amount.Amount) (*stakepool.DepositResult, error) {
	return cont.engine().Deposit(cc, pid, amt)
}

func (cont *GenesisContract) Withdraw(cc *types.ContractContext, pid uint64, amt *amount.Amount) (*stakepool.WithdrawResult, error) {
	return cont.engine().Withdraw(cc, pid, amt)
}

func (cont *GenesisContract) EmergencyWithdraw(cc *types.ContractContext, pid uint64) (*stakepool.EmergencyWithdrawResult, error) {
	return cont.engine().EmergencyWithdraw(cc, pid)
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *GenesisContract) PendingReward(cc types.ContractLoader, pid uint64, user common.Address) (*amount.Amount, error) {
	return cont.engine().PendingReward(cc, pid, user)
}

func (cont *GenesisContract) PoolInfo(cc types.ContractLoader, pid uint64) (*accrual.PoolInfo, error) {
	return stakepool.Pool(cc, pid)
}

func (cont *GenesisContract) UserInfo(cc types.ContractLoader, pid uint64, user common.Address) (*accrual.UserInfo, error) {
	return stakepool.User(cc, pid, user)
}

func (cont *GenesisContract) PoolLength(cc types.ContractLoader) uint64 {
	return stakepool.PoolLength(cc)
}

func (cont *GenesisContract) TotalAllocPoint(cc types.ContractLoader) uint64 {
	return stakepool.TotalAllocPoint(cc)
}

func (cont *GenesisContract) RewardToken(cc types.ContractLoader) common.Address {
	return stakepool.RewardToken(cc)
}

func (cont *GenesisContract) DevFund(cc types.ContractLoader) common.Address {
	return stakepool.FeeRecipient(cc)
}

func (cont *GenesisContract) Operator(cc types.ContractLoader) common.Address {
	return stakepool.Operator(cc)
}

func (cont *GenesisContract) IsPaused(cc types.ContractLoader) bool {
	return stakepool.IsPaused(cc)
}

func (cont *GenesisContract) StartTime(cc types.ContractLoader) uint64 {
	return loadUint64(cc, tagStartTime)
}

func (cont *GenesisContract) Duration(cc types.ContractLoader) uint64 {
	return loadUint64(cc, tagDuration)
}

func (cont *GenesisContract) EndTime(cc types.ContractLoader) uint64 {
	return cont.StartTime(cc) + cont.Duration(cc)
}

func (cont *GenesisContract) RecoverGracePeriod(cc types.ContractLoader) uint64 {
	return loadUint64(cc, tagRecoverGracePeriod)
}

func (cont *GenesisContract) TotalRewards(cc types.ContractLoader) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tagTotalRewards}))
}

func (cont *GenesisContract) RejectBeforeStart(cc types.ContractLoader) bool {
	bs := cc.ContractData([]byte{tagRejectBeforeStart})
	return len(bs) == 1 && bs[0] == 1
}

func loadUint64(cc types.ContractLoader, tag byte) uint64 {
	bs := cc.ContractData([]byte{tag})
	if len(bs) != 8 {
		return 0
	}
	return bin.Uint64(bs)
}
