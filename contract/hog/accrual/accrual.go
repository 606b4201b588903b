package accrual

import (
	"math/big"

	"github.com/hogfinance/hogpool/common/amount"
)

// PRECISION scales AccRewardPerShare
const PRECISION = amount.FractionalMax

var precision = amount.NewAmountFromBig(bigUint(PRECISION))

func bigUint(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// Settle brings the pool accumulator up to now.
// It does nothing when now is not after LastRewardTime, and an empty pool only moves its clock.
func Settle(pool *PoolInfo, now uint64, w Window, e Emission) error {
	last := w.Cap(now)
	if now <= pool.LastRewardTime || last <= pool.LastRewardTime {
		return nil
	}
	if pool.TotalStaked.IsZero() {
		pool.LastRewardTime = last
		return nil
	}
	from := w.Clamp(pool.LastRewardTime)
	to := w.Clamp(last)
	if to > from {
		reward, err := e.Reward(pool, from, to)
		if err != nil {
			return err
		}
		if reward.IsPlus() {
			inc, err := amount.CheckedMulDiv(reward, precision, pool.TotalStaked)
			if err != nil {
				return ErrArithmeticOverflow
			}
			acc, err := amount.CheckedAdd(pool.AccRewardPerShare, inc)
			if err != nil {
				return ErrArithmeticOverflow
			}
			pool.AccRewardPerShare = acc
		}
	}
	pool.LastRewardTime = last
	return nil
}

// Accumulated returns user.Amount*acc/PRECISION
func Accumulated(user *UserInfo, acc *amount.Amount) (*amount.Amount, error) {
	if user.Amount.IsZero() {
		return amount.ZeroCoin(), nil
	}
	v, err := amount.CheckedMulDiv(user.Amount, acc, precision)
	if err != nil {
		return nil, ErrArithmeticOverflow
	}
	return v, nil
}

// Harvestable returns the reward a settled pool owes the user
func Harvestable(pool *PoolInfo, user *UserInfo) (*amount.Amount, error) {
	acc, err := Accumulated(user, pool.AccRewardPerShare)
	if err != nil {
		return nil, err
	}
	pending, err := amount.CheckedSub(acc, user.RewardDebt)
	if err != nil {
		return nil, ErrArithmeticOverflow
	}
	return pending, nil
}

// Pending returns what the user could harvest at now without changing the pool
func Pending(pool *PoolInfo, user *UserInfo, now uint64, w Window, e Emission) (*amount.Amount, error) {
	p := pool.Clone()
	if err := Settle(p, now, w, e); err != nil {
		return nil, err
	}
	return Harvestable(p, user)
}

// ResetDebt checkpoints the user at the pool accumulator
func ResetDebt(pool *PoolInfo, user *UserInfo) error {
	debt, err := Accumulated(user, pool.AccRewardPerShare)
	if err != nil {
		return err
	}
	user.RewardDebt = debt
	return nil
}

// Payout caps the owed reward at the reserve and returns the unpaid rest
func Payout(owed *amount.Amount, reserve *amount.Amount) (paid *amount.Amount, shortfall *amount.Amount) {
	if !owed.IsPlus() {
		return amount.ZeroCoin(), amount.ZeroCoin()
	}
	if reserve.Less(owed) {
		if reserve.IsPlus() {
			return reserve.Clone(), owed.Sub(reserve)
		}
		return amount.ZeroCoin(), owed.Clone()
	}
	return owed.Clone(), amount.ZeroCoin()
}
