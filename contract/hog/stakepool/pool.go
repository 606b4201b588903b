package stakepool

import (
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/rlog"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/core/types"
)

var log = rlog.New("stakepool")

// Schedule is what a pool variant decides on its own
type Schedule interface {
	Window(cc types.ContractLoader) accrual.Window
	Emission(cc types.ContractLoader) accrual.Emission
	CheckDeposit(cc types.ContractLoader) error
	RewardRecoverable(cc types.ContractLoader) bool
}

// Engine runs deposits, withdrawals and settlement of the pools stored in a contract
type Engine struct {
	sched Schedule
}

func NewEngine(sched Schedule) *Engine {
	return &Engine{sched: sched}
}

//////////////////////////////////////////////////
// Settlement
//////////////////////////////////////////////////

// UpdatePool settles pid up to the current time and stores it
func (e *Engine) UpdatePool(cc *types.ContractContext, pid uint64) (*accrual.PoolInfo, error) {
	pool, err := Pool(cc, pid)
	if err != nil {
		return nil, err
	}
	last := pool.LastRewardTime
	if err := accrual.Settle(pool, cc.LastTimestamp(), e.sched.Window(cc), e.sched.Emission(cc)); err != nil {
		return nil, err
	}
	if pool.LastRewardTime != last {
		if err := setPool(cc, pid, pool); err != nil {
			return nil, err
		}
	}
	return pool, nil
}

// MassUpdatePools settles every pool
func (e *Engine) MassUpdatePools(cc *types.ContractContext) error {
	length := PoolLength(cc)
	for pid := uint64(0); pid < length; pid++ {
		if _, err := e.UpdatePool(cc, pid); err != nil {
			return err
		}
	}
	return nil
}

// PendingReward returns what user could harvest from pid now
func (e *Engine) PendingReward(cc types.ContractLoader, pid uint64, user common.Address) (*amount.Amount, error) {
	pool, err := Pool(cc, pid)
	if err != nil {
		return nil, err
	}
	info, err := User(cc, pid, user)
	if err != nil {
		return nil, err
	}
	return accrual.Pending(pool, info, cc.LastTimestamp(), e.sched.Window(cc), e.sched.Emission(cc))
}

//////////////////////////////////////////////////
// Staking
//////////////////////////////////////////////////

// Deposit harvests the pending reward of the caller and stakes amt less the deposit fee.
// A zero amt only harvests.
func (e *Engine) Deposit(cc *types.ContractContext, pid uint64, amt *amount.Amount) (*DepositResult, error) {
	if IsPaused(cc) {
		return nil, errors.WithStack(accrual.ErrPaused)
	}
	if amt.IsMinus() {
		return nil, errors.Wrapf(accrual.ErrInvalidAmount, "deposit %v", amt.String())
	}
	if err := e.sched.CheckDeposit(cc); err != nil {
		return nil, err
	}
	pool, err := e.UpdatePool(cc, pid)
	if err != nil {
		return nil, err
	}
	user := cc.From()
	info, err := User(cc, pid, user)
	if err != nil {
		return nil, err
	}
	pending, err := accrual.Harvestable(pool, info)
	if err != nil {
		return nil, err
	}
	fee, net, err := accrual.Split(amt, pool.DepositFeeBP)
	if err != nil {
		return nil, err
	}
	if info.Amount, err = amount.CheckedAdd(info.Amount, net); err != nil {
		return nil, accrual.ErrArithmeticOverflow
	}
	if pool.TotalStaked, err = amount.CheckedAdd(pool.TotalStaked, net); err != nil {
		return nil, accrual.ErrArithmeticOverflow
	}
	if err := accrual.ResetDebt(pool, info); err != nil {
		return nil, err
	}
	if err := setPool(cc, pid, pool); err != nil {
		return nil, err
	}
	if err := setUser(cc, pid, user, info); err != nil {
		return nil, err
	}

	if amt.IsPlus() {
		if _, err := cc.Exec(cc, pool.Token, "TransferFrom", []interface{}{user, cc.Self(), amt}); err != nil {
			return nil, err
		}
		if fee.IsPlus() {
			if _, err := cc.Exec(cc, pool.Token, "Transfer", []interface{}{FeeRecipient(cc), fee}); err != nil {
				return nil, err
			}
		}
	}
	paid, shortfall, err := e.payReward(cc, pid, user, pending)
	if err != nil {
		return nil, err
	}

	result := &DepositResult{
		Pid:       pid,
		User:      user,
		Amount:    amt.Clone(),
		Harvested: paid,
		Principal: net,
		Fee:       fee,
		Shortfall: shortfall,
	}
	cc.EmitEvent(EventDeposit, result)
	return result, nil
}

// Withdraw harvests the pending reward of the caller and unstakes amt.
// The withdraw fee is taken from amt, the stake always drops by the full amt.
func (e *Engine) Withdraw(cc *types.ContractContext, pid uint64, amt *amount.Amount) (*WithdrawResult, error) {
	if IsPaused(cc) {
		return nil, errors.WithStack(accrual.ErrPaused)
	}
	if amt.IsMinus() {
		return nil, errors.Wrapf(accrual.ErrInvalidAmount, "withdraw %v", amt.String())
	}
	user := cc.From()
	info, err := User(cc, pid, user)
	if err != nil {
		return nil, err
	}
	if info.Amount.Less(amt) {
		return nil, errors.Wrapf(accrual.ErrInsufficientStake, "%v less than %v", info.Amount.String(), amt.String())
	}
	pool, err := e.UpdatePool(cc, pid)
	if err != nil {
		return nil, err
	}
	pending, err := accrual.Harvestable(pool, info)
	if err != nil {
		return nil, err
	}
	fee, net, err := accrual.Split(amt, pool.WithdrawFeeBP)
	if err != nil {
		return nil, err
	}
	info.Amount = info.Amount.Sub(amt)
	if pool.TotalStaked, err = amount.CheckedSub(pool.TotalStaked, amt); err != nil {
		return nil, accrual.ErrArithmeticOverflow
	}
	if err := accrual.ResetDebt(pool, info); err != nil {
		return nil, err
	}
	if err := setPool(cc, pid, pool); err != nil {
		return nil, err
	}
	if err := setUser(cc, pid, user, info); err != nil {
		return nil, err
	}

	if net.IsPlus() {
		if _, err := cc.Exec(cc, pool.Token, "Transfer", []interface{}{user, net}); err != nil {
			return nil, err
		}
	}
	if fee.IsPlus() {
		if _, err := cc.Exec(cc, pool.Token, "Transfer", []interface{}{FeeRecipient(cc), fee}); err != nil {
			return nil, err
		}
	}
	paid, shortfall, err := e.payReward(cc, pid, user, pending)
	if err != nil {
		return nil, err
	}

	result := &WithdrawResult{
		Pid:       pid,
		User:      user,
		Amount:    amt.Clone(),
		Harvested: paid,
		Principal: net,
		Fee:       fee,
		Shortfall: shortfall,
	}
	cc.EmitEvent(EventWithdraw, result)
	return result, nil
}

// EmergencyWithdraw returns the whole stake of the caller without fee and forfeits the pending reward.
// It works while paused.
func (e *Engine) EmergencyWithdraw(cc *types.ContractContext, pid uint64) (*EmergencyWithdrawResult, error) {
	pool, err := Pool(cc, pid)
	if err != nil {
		return nil, err
	}
	user := cc.From()
	info, err := User(cc, pid, user)
	if err != nil {
		return nil, err
	}
	amt := info.Amount
	if pool.TotalStaked.Less(amt) {
		pool.TotalStaked = amount.ZeroCoin()
	} else {
		pool.TotalStaked = pool.TotalStaked.Sub(amt)
	}
	if err := setPool(cc, pid, pool); err != nil {
		return nil, err
	}
	if err := setUser(cc, pid, user, accrual.NewUserInfo()); err != nil {
		return nil, err
	}
	if amt.IsPlus() {
		if _, err := cc.Exec(cc, pool.Token, "Transfer", []interface{}{user, amt}); err != nil {
			return nil, err
		}
	}

	result := &EmergencyWithdrawResult{
		Pid:    pid,
		User:   user,
		Amount: amt.Clone(),
	}
	cc.EmitEvent(EventEmergencyWithdraw, result)
	return result, nil
}

// payReward sends what the reserve covers of owed and journals the rest as a shortfall
func (e *Engine) payReward(cc *types.ContractContext, pid uint64, user common.Address, owed *amount.Amount) (*amount.Amount, *amount.Amount, error) {
	if !owed.IsPlus() {
		return amount.ZeroCoin(), amount.ZeroCoin(), nil
	}
	reserve, err := e.RewardReserve(cc)
	if err != nil {
		return nil, nil, err
	}
	paid, shortfall := accrual.Payout(owed, reserve)
	if paid.IsPlus() {
		if _, err := cc.Exec(cc, RewardToken(cc), "Transfer", []interface{}{user, paid}); err != nil {
			return nil, nil, err
		}
	}
	if shortfall.IsPlus() {
		log.Warn("RewardShortfall", "pool", cc.Self().String(), "pid", pid, "user", user.String(), "owed", owed.String(), "paid", paid.String())
		cc.EmitEvent(EventRewardShortfall, map[string]interface{}{
			"pid":       pid,
			"user":      user,
			"shortfall": shortfall,
		})
	}
	return paid, shortfall, nil
}

// RewardReserve returns the reward token balance of the contract that is not someone's stake
func (e *Engine) RewardReserve(cc *types.ContractContext) (*amount.Amount, error) {
	token := RewardToken(cc)
	bal, err := callAmount(cc, token, "BalanceOf", cc.Self())
	if err != nil {
		return nil, err
	}
	staked, err := stakedOf(cc, token)
	if err != nil {
		return nil, err
	}
	if bal.Less(staked) {
		return amount.ZeroCoin(), nil
	}
	return bal.Sub(staked), nil
}

//////////////////////////////////////////////////
// Operator
//////////////////////////////////////////////////

func (e *Engine) checkOperator(cc *types.ContractContext) error {
	if cc.From() != Operator(cc) {
		return errors.Wrap(accrual.ErrNotOperator, cc.From().String())
	}
	return nil
}

// CheckOperator fails unless the caller is the operator
func (e *Engine) CheckOperator(cc *types.ContractContext) error {
	return e.checkOperator(cc)
}

func (e *Engine) SetOperator(cc *types.ContractContext, operator common.Address) (*OperatorResult, error) {
	if err := e.checkOperator(cc); err != nil {
		return nil, err
	}
	if operator == common.ZeroAddr {
		return nil, errors.Wrap(accrual.ErrZeroAddress, "operator")
	}
	result := &OperatorResult{
		Previous: Operator(cc),
		Operator: operator,
	}
	cc.SetContractData([]byte{tagOperator}, operator[:])
	cc.EmitEvent(EventOperator, result)
	return result, nil
}

func (e *Engine) SetPaused(cc *types.ContractContext, paused bool) error {
	if err := e.checkOperator(cc); err != nil {
		return err
	}
	if paused {
		cc.SetContractData([]byte{tagPause}, []byte{1})
	} else {
		cc.SetContractData([]byte{tagPause}, nil)
	}
	cc.EmitEvent(EventPause, map[string]bool{"paused": paused})
	return nil
}

// RecoverUnsupportedToken sends amt of token held by the contract to to.
// Staked tokens never leave this way, the reward token only when the schedule allows it.
func (e *Engine) RecoverUnsupportedToken(cc *types.ContractContext, token common.Address, amt *amount.Amount, to common.Address) (*RecoverResult, error) {
	if err := e.checkOperator(cc); err != nil {
		return nil, err
	}
	if to == common.ZeroAddr {
		return nil, errors.Wrap(accrual.ErrZeroAddress, "recover to")
	}
	if !amt.IsPlus() {
		return nil, errors.Wrapf(accrual.ErrInvalidAmount, "recover %v", amt.String())
	}
	if HasPool(cc, token) {
		return nil, errors.Wrapf(accrual.ErrProtectedToken, "staked token %v", token.String())
	}
	if token == RewardToken(cc) && !e.sched.RewardRecoverable(cc) {
		return nil, errors.Wrapf(accrual.ErrProtectedToken, "reward token %v", token.String())
	}
	if _, err := cc.Exec(cc, token, "Transfer", []interface{}{to, amt}); err != nil {
		return nil, err
	}

	result := &RecoverResult{
		Token:  token,
		To:     to,
		Amount: amt.Clone(),
	}
	cc.EmitEvent(EventRecover, result)
	return result, nil
}

func callAmount(cc *types.ContractContext, cont common.Address, method string, params ...interface{}) (*amount.Amount, error) {
	ins, err := cc.Exec(cc, cont, method, params)
	if err != nil {
		return nil, err
	}
	if len(ins) == 0 {
		return nil, errors.Errorf("invalid %v %v", cont.String(), method)
	}
	am, ok := ins[0].(*amount.Amount)
	if !ok {
		return nil, errors.Errorf("invalid %v %v amount", cont.String(), method)
	}
	return am, nil
}
