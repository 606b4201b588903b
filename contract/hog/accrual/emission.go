package accrual

import (
	"github.com/hogfinance/hogpool/common/amount"
)

// Emission returns the reward a pool earns over [from, to]
type Emission interface {
	Reward(pool *PoolInfo, from uint64, to uint64) (*amount.Amount, error)
}

// FixedRate pays the pool's own RewardPerSecond
type FixedRate struct{}

func (FixedRate) Reward(pool *PoolInfo, from uint64, to uint64) (*amount.Amount, error) {
	if to <= from {
		return amount.ZeroCoin(), nil
	}
	r, err := amount.CheckedMul(amount.NewAmountFromBig(bigUint(to-from)), pool.RewardPerSecond)
	if err != nil {
		return nil, ErrArithmeticOverflow
	}
	return r, nil
}

// SharedRate splits SharePerSecond between pools by allocation weight
type SharedRate struct {
	SharePerSecond  *amount.Amount
	TotalAllocPoint uint64
}

func (e SharedRate) Reward(pool *PoolInfo, from uint64, to uint64) (*amount.Amount, error) {
	if to <= from || e.TotalAllocPoint == 0 || pool.AllocPoint == 0 {
		return amount.ZeroCoin(), nil
	}
	r, err := amount.CheckedMul(amount.NewAmountFromBig(bigUint(to-from)), e.SharePerSecond)
	if err != nil {
		return nil, ErrArithmeticOverflow
	}
	r, err = amount.CheckedMulDiv(r, amount.NewAmountFromBig(bigUint(pool.AllocPoint)), amount.NewAmountFromBig(bigUint(e.TotalAllocPoint)))
	if err != nil {
		return nil, ErrArithmeticOverflow
	}
	return r, nil
}
