package simulator

import (
	"github.com/shopspring/decimal"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/contract/hog/genesis"
)

var (
	daysPerYear = decimal.NewFromInt(365)
	hundred     = decimal.NewFromInt(100)
)

// Report is the state of every pool and user at the end of a run
type Report struct {
	RunID     string            `json:"runId"`
	Scenario  string            `json:"scenario"`
	Start     uint64            `json:"start"`
	End       uint64            `json:"end"`
	Contracts []*ContractReport `json:"contracts"`
	Users     []*UserReport     `json:"users"`
	Steps     []*StepResult     `json:"steps"`
}

// ContractReport sums the reward flows of one pool contract.
// Paid, Fees and Shortfall are totals over the run's step results.
type ContractReport struct {
	Name          string          `json:"name"`
	Address       common.Address  `json:"address"`
	RewardToken   common.Address  `json:"rewardToken"`
	RewardBalance *amount.Amount  `json:"rewardBalance"`
	Paid          *amount.Amount  `json:"paid"`
	Pending       *amount.Amount  `json:"pending"`
	Fees          *amount.Amount  `json:"fees"`
	Shortfall     *amount.Amount  `json:"shortfall"`
	DailyEmission decimal.Decimal `json:"dailyEmission"`
	Pools         []*PoolReport   `json:"pools"`
}

// PoolReport holds one pool. APR is in reward tokens per staked token, in percent,
// and is left out while nothing is staked.
type PoolReport struct {
	Pid               uint64           `json:"pid"`
	Token             string           `json:"token"`
	TokenAddress      common.Address   `json:"tokenAddress"`
	AllocPoint        uint64           `json:"allocPoint"`
	DepositFeeBP      uint16           `json:"depositFeeBP"`
	WithdrawFeeBP     uint16           `json:"withdrawFeeBP"`
	TotalStaked       *amount.Amount   `json:"totalStaked"`
	AccRewardPerShare *amount.Amount   `json:"accRewardPerShare"`
	DailyEmission     decimal.Decimal  `json:"dailyEmission"`
	APR               *decimal.Decimal `json:"apr,omitempty"`
}

type UserReport struct {
	Name      string         `json:"name"`
	Address   common.Address `json:"address"`
	Pool      string         `json:"pool"`
	Pid       uint64         `json:"pid"`
	Staked    *amount.Amount `json:"staked"`
	Pending   *amount.Amount `json:"pending"`
	Harvested *amount.Amount `json:"harvested"`
}

// StepResult is the outcome of one step, Error is set only for an expected failure
type StepResult struct {
	Index     int         `json:"index"`
	Timestamp uint64      `json:"timestamp"`
	Pool      string      `json:"pool"`
	Action    string      `json:"action"`
	User      string      `json:"user,omitempty"`
	Pid       uint64      `json:"pid"`
	Error     string      `json:"error,omitempty"`
	Result    interface{} `json:"result,omitempty"`
}

// ToDecimal returns the amount in whole tokens
func ToDecimal(am *amount.Amount) decimal.Decimal {
	if am == nil || am.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(am.Int, -amount.FractionalCount)
}

// APR annualizes a daily reward over the staked amount, nil when nothing is staked
func APR(daily *amount.Amount, staked *amount.Amount) *decimal.Decimal {
	if staked == nil || !staked.IsPlus() {
		return nil
	}
	apr := ToDecimal(daily).Mul(daysPerYear).Mul(hundred).Div(ToDecimal(staked)).Round(4)
	return &apr
}

func (s *Simulator) report() (*Report, error) {
	rp := &Report{
		RunID:     s.runID.String(),
		Scenario:  s.sc.Name,
		Start:     s.sc.Start,
		End:       s.ctx.LastTimestamp(),
		Contracts: []*ContractReport{},
		Users:     []*UserReport{},
		Steps:     s.steps,
	}
	if rp.Steps == nil {
		rp.Steps = []*StepResult{}
	}
	tokenNames := map[common.Address]string{}
	for name, addr := range s.tokens {
		tokenNames[addr] = name
	}
	for _, name := range []string{GenesisPool, GHogPool} {
		if _, has := s.pools[name]; !has {
			continue
		}
		cr, err := s.contractReport(name, tokenNames, rp)
		if err != nil {
			return nil, err
		}
		rp.Contracts = append(rp.Contracts, cr)
	}
	return rp, nil
}

func (s *Simulator) contractReport(name string, tokenNames map[common.Address]string, rp *Report) (*ContractReport, error) {
	addr := s.pools[name]
	t := s.tallies[name]
	cr := &ContractReport{
		Name:          name,
		Address:       addr,
		Paid:          t.paid.Clone(),
		Pending:       amount.ZeroCoin(),
		Fees:          t.fees.Clone(),
		Shortfall:     t.shortfall.Clone(),
		DailyEmission: decimal.Zero,
		Pools:         []*PoolReport{},
	}
	res, err := s.view(name, "RewardToken")
	if err != nil {
		return nil, err
	}
	cr.RewardToken = res[0].(common.Address)
	if cr.RewardBalance, err = s.balanceOf(cr.RewardToken, addr); err != nil {
		return nil, err
	}

	emission, err := s.emission(name)
	if err != nil {
		return nil, err
	}
	res, err = s.view(name, "PoolLength")
	if err != nil {
		return nil, err
	}
	length := res[0].(uint64)
	for pid := uint64(0); pid < length; pid++ {
		pi, err := s.poolInfo(name, pid)
		if err != nil {
			return nil, err
		}
		daily := amount.ZeroCoin()
		if emission != nil {
			if daily, err = emission.Reward(pi, 0, genesis.Day); err != nil {
				return nil, err
			}
		}
		cr.DailyEmission = cr.DailyEmission.Add(ToDecimal(daily))
		cr.Pools = append(cr.Pools, &PoolReport{
			Pid:               pid,
			Token:             tokenNames[pi.Token],
			TokenAddress:      pi.Token,
			AllocPoint:        pi.AllocPoint,
			DepositFeeBP:      pi.DepositFeeBP,
			WithdrawFeeBP:     pi.WithdrawFeeBP,
			TotalStaked:       pi.TotalStaked.Clone(),
			AccRewardPerShare: pi.AccRewardPerShare.Clone(),
			DailyEmission:     ToDecimal(daily),
			APR:               APR(daily, pi.TotalStaked),
		})

		for _, u := range s.sc.Users {
			ur, err := s.userReport(name, pid, u.Name)
			if err != nil {
				return nil, err
			}
			if ur == nil {
				continue
			}
			cr.Pending = cr.Pending.Add(ur.Pending)
			rp.Users = append(rp.Users, ur)
		}
	}
	return cr, nil
}

// emission returns the rate the contract pays now, nil once a fixed schedule has ended
func (s *Simulator) emission(name string) (accrual.Emission, error) {
	switch name {
	case GenesisPool:
		res, err := s.view(name, "PoolEndTime")
		if err != nil {
			return nil, err
		}
		if s.ctx.LastTimestamp() >= res[0].(uint64) {
			return nil, nil
		}
		return accrual.FixedRate{}, nil
	default:
		res, err := s.view(name, "SharePerSecond")
		if err != nil {
			return nil, err
		}
		rate := res[0].(*amount.Amount)
		res, err = s.view(name, "TotalAllocPoint")
		if err != nil {
			return nil, err
		}
		return accrual.SharedRate{SharePerSecond: rate, TotalAllocPoint: res[0].(uint64)}, nil
	}
}

// userReport returns nil for a user that never touched the pool
func (s *Simulator) userReport(name string, pid uint64, user string) (*UserReport, error) {
	addr := UserAddress(user)
	res, err := s.view(name, "UserInfo", pid, addr)
	if err != nil {
		return nil, err
	}
	ui := res[0].(*accrual.UserInfo)
	res, err = s.view(name, "PendingReward", pid, addr)
	if err != nil {
		return nil, err
	}
	pending := res[0].(*amount.Amount)
	harvested, has := s.harvested[userKey{pool: name, pid: pid, user: user}]
	if !has {
		if ui.Amount.IsZero() && pending.IsZero() {
			return nil, nil
		}
		harvested = amount.ZeroCoin()
	}
	return &UserReport{
		Name:      user,
		Address:   addr,
		Pool:      name,
		Pid:       pid,
		Staked:    ui.Amount.Clone(),
		Pending:   pending.Clone(),
		Harvested: harvested.Clone(),
	}, nil
}
