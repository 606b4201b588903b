package stakepool

import (
	"bytes"

	gmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/bin"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/core/types"
)

// Init stores the settings every stake pool shares
func Init(cc *types.ContractContext, operator common.Address, rewardToken common.Address, feeRecipient common.Address) error {
	if operator == common.ZeroAddr {
		return errors.Wrap(accrual.ErrZeroAddress, "operator")
	}
	if rewardToken == common.ZeroAddr {
		return errors.Wrap(accrual.ErrZeroAddress, "reward token")
	}
	if feeRecipient == common.ZeroAddr {
		return errors.Wrap(accrual.ErrZeroAddress, "fee recipient")
	}
	cc.SetContractData([]byte{tagOperator}, operator[:])
	cc.SetContractData([]byte{tagRewardToken}, rewardToken[:])
	cc.SetContractData([]byte{tagFeeRecipient}, feeRecipient[:])
	return nil
}

func loadAddress(cc types.ContractLoader, tag byte) common.Address {
	bs := cc.ContractData([]byte{tag})
	if len(bs) != common.AddressLength {
		return common.ZeroAddr
	}
	return common.BytesToAddress(bs)
}

func Operator(cc types.ContractLoader) common.Address {
	return loadAddress(cc, tagOperator)
}

func RewardToken(cc types.ContractLoader) common.Address {
	return loadAddress(cc, tagRewardToken)
}

func FeeRecipient(cc types.ContractLoader) common.Address {
	return loadAddress(cc, tagFeeRecipient)
}

func TotalAllocPoint(cc types.ContractLoader) uint64 {
	bs := cc.ContractData([]byte{tagTotalAllocPoint})
	if len(bs) != 8 {
		return 0
	}
	return bin.Uint64(bs)
}

func setTotalAllocPoint(cc *types.ContractContext, total uint64) {
	cc.SetContractData([]byte{tagTotalAllocPoint}, bin.Uint64Bytes(total))
}

func PoolLength(cc types.ContractLoader) uint64 {
	bs := cc.ContractData([]byte{tagPoolLength})
	if len(bs) != 8 {
		return 0
	}
	return bin.Uint64(bs)
}

func IsPaused(cc types.ContractLoader) bool {
	bs := cc.ContractData([]byte{tagPause})
	return len(bs) == 1 && bs[0] == 1
}

// Pool returns the stored pool of pid
func Pool(cc types.ContractLoader, pid uint64) (*accrual.PoolInfo, error) {
	if pid >= PoolLength(cc) {
		return nil, errors.Wrapf(accrual.ErrInvalidPoolID, "%v", pid)
	}
	pool := &accrual.PoolInfo{}
	if _, err := pool.ReadFrom(bytes.NewReader(cc.ContractData(makePoolInfoKey(pid)))); err != nil {
		return nil, err
	}
	return pool, nil
}

func setPool(cc *types.ContractContext, pid uint64, pool *accrual.PoolInfo) error {
	bf := new(bytes.Buffer)
	if _, err := pool.WriteTo(bf); err != nil {
		return err
	}
	cc.SetContractData(makePoolInfoKey(pid), bf.Bytes())
	return nil
}

// User returns the position of user in pid, an unknown user has an empty position
func User(cc types.ContractLoader, pid uint64, user common.Address) (*accrual.UserInfo, error) {
	if pid >= PoolLength(cc) {
		return nil, errors.Wrapf(accrual.ErrInvalidPoolID, "%v", pid)
	}
	bs := cc.ContractData(makeUserInfoKey(pid, user))
	if len(bs) == 0 {
		return accrual.NewUserInfo(), nil
	}
	info := &accrual.UserInfo{}
	if _, err := info.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	return info, nil
}

func setUser(cc *types.ContractContext, pid uint64, user common.Address, info *accrual.UserInfo) error {
	bf := new(bytes.Buffer)
	if _, err := info.WriteTo(bf); err != nil {
		return err
	}
	cc.SetContractData(makeUserInfoKey(pid, user), bf.Bytes())
	return nil
}

// AddPool appends a pool after checking its fees and that its token has no pool yet
func AddPool(cc *types.ContractContext, pool *accrual.PoolInfo) (uint64, error) {
	if pool.Token == common.ZeroAddr {
		return 0, errors.Wrap(accrual.ErrZeroAddress, "pool token")
	}
	if err := accrual.ValidateFee(pool.DepositFeeBP); err != nil {
		return 0, err
	}
	if err := accrual.ValidateFee(pool.WithdrawFeeBP); err != nil {
		return 0, err
	}
	if HasPool(cc, pool.Token) {
		return 0, errors.Wrapf(accrual.ErrPoolExists, "%v", pool.Token.String())
	}
	total, overflow := gmath.SafeAdd(TotalAllocPoint(cc), pool.AllocPoint)
	if overflow {
		return 0, accrual.ErrArithmeticOverflow
	}
	pid := PoolLength(cc)
	if err := setPool(cc, pid, pool); err != nil {
		return 0, err
	}
	cc.SetContractData([]byte{tagPoolLength}, bin.Uint64Bytes(pid+1))
	setTotalAllocPoint(cc, total)
	return pid, nil
}

// SetAllocPoint changes the weight of pid and keeps TotalAllocPoint the sum of all weights
func SetAllocPoint(cc *types.ContractContext, pid uint64, allocPoint uint64) (*accrual.PoolInfo, error) {
	pool, err := Pool(cc, pid)
	if err != nil {
		return nil, err
	}
	total, overflow := gmath.SafeAdd(TotalAllocPoint(cc)-pool.AllocPoint, allocPoint)
	if overflow {
		return nil, accrual.ErrArithmeticOverflow
	}
	pool.AllocPoint = allocPoint
	if err := setPool(cc, pid, pool); err != nil {
		return nil, err
	}
	setTotalAllocPoint(cc, total)
	return pool, nil
}

// SetFees changes the deposit and withdraw fees of pid
func SetFees(cc *types.ContractContext, pid uint64, depositFeeBP uint16, withdrawFeeBP uint16) (*accrual.PoolInfo, error) {
	if err := accrual.ValidateFee(depositFeeBP); err != nil {
		return nil, err
	}
	if err := accrual.ValidateFee(withdrawFeeBP); err != nil {
		return nil, err
	}
	pool, err := Pool(cc, pid)
	if err != nil {
		return nil, err
	}
	pool.DepositFeeBP = depositFeeBP
	pool.WithdrawFeeBP = withdrawFeeBP
	if err := setPool(cc, pid, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// SetGauge records the gauge of pid and returns the previous one
func SetGauge(cc *types.ContractContext, pid uint64, gauge common.Address) (common.Address, error) {
	pool, err := Pool(cc, pid)
	if err != nil {
		return common.ZeroAddr, err
	}
	prev := pool.Gauge
	pool.Gauge = gauge
	if err := setPool(cc, pid, pool); err != nil {
		return common.ZeroAddr, err
	}
	return prev, nil
}

// HasPool reports whether a pool stakes token
func HasPool(cc types.ContractLoader, token common.Address) bool {
	length := PoolLength(cc)
	for pid := uint64(0); pid < length; pid++ {
		pool, err := Pool(cc, pid)
		if err == nil && pool.Token == token {
			return true
		}
	}
	return false
}

// stakedOf returns the total stake of every pool holding token
func stakedOf(cc types.ContractLoader, token common.Address) (*amount.Amount, error) {
	sum := amount.ZeroCoin()
	length := PoolLength(cc)
	for pid := uint64(0); pid < length; pid++ {
		pool, err := Pool(cc, pid)
		if err != nil {
			return nil, err
		}
		if pool.Token == token {
			sum = sum.Add(pool.TotalStaked)
		}
	}
	return sum, nil
}
