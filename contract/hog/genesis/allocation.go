package genesis

import (
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
)

const (
	Day                       = uint64(86400)
	DefaultDuration           = 7 * Day
	DefaultRecoverGracePeriod = 7 * Day
	DefaultDepositFeeBP       = uint16(100)
)

// DefaultTotalRewards is the HOG budget of the genesis week
var DefaultTotalRewards = amount.NewAmount(560000, 0)

type Allocation struct {
	Name       string
	AllocPoint uint64
}

// DefaultAllocation is the launch table, in pool id order
var DefaultAllocation = []Allocation{
	{Name: "HOG-S LP", AllocPoint: 27},
	{Name: "OS LP", AllocPoint: 21},
	{Name: "ANON", AllocPoint: 10},
	{Name: "MCLB", AllocPoint: 10},
	{Name: "SWPX", AllocPoint: 13},
	{Name: "stS", AllocPoint: 7},
	{Name: "scUSD LP", AllocPoint: 7},
	{Name: "INDI", AllocPoint: 5},
}

// DefaultPools binds the staked tokens to DefaultAllocation in order
func DefaultPools(tokens []common.Address) ([]GenesisPoolConfig, error) {
	if len(tokens) != len(DefaultAllocation) {
		return nil, errors.Errorf("default allocation needs %v tokens, got %v", len(DefaultAllocation), len(tokens))
	}
	pools := make([]GenesisPoolConfig, 0, len(tokens))
	for i, a := range DefaultAllocation {
		pools = append(pools, GenesisPoolConfig{
			Token:        tokens[i],
			AllocPoint:   a.AllocPoint,
			DepositFeeBP: DefaultDepositFeeBP,
		})
	}
	return pools, nil
}

// DailyReward returns the reward a pool with allocPoint earns per day of the schedule
func DailyReward(totalRewards *amount.Amount, duration uint64, allocPoint uint64, totalAllocPoint uint64) *amount.Amount {
	if totalAllocPoint == 0 || duration == 0 {
		return amount.ZeroCoin()
	}
	return totalRewards.MulC(int64(allocPoint)).DivC(int64(totalAllocPoint)).MulC(int64(Day)).DivC(int64(duration))
}
