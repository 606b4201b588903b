package stakepool

import (
	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
)

// event types journaled by the stake pool
const (
	EventDeposit           = "Deposit"
	EventWithdraw          = "Withdraw"
	EventEmergencyWithdraw = "EmergencyWithdraw"
	EventRewardShortfall   = "RewardShortfall"
	EventRecover           = "RecoverUnsupportedToken"
	EventOperator          = "OperatorTransferred"
	EventPause             = "Pause"
)

// DepositResult is returned by Deposit. Principal is the stake credited after the fee.
type DepositResult struct {
	Pid       uint64         `json:"pid"`
	User      common.Address `json:"user"`
	Amount    *amount.Amount `json:"amount"`
	Harvested *amount.Amount `json:"harvested"`
	Principal *amount.Amount `json:"principal"`
	Fee       *amount.Amount `json:"fee"`
	Shortfall *amount.Amount `json:"shortfall"`
}

// WithdrawResult is returned by Withdraw. Principal is what the user received after the fee.
type WithdrawResult struct {
	Pid       uint64         `json:"pid"`
	User      common.Address `json:"user"`
	Amount    *amount.Amount `json:"amount"`
	Harvested *amount.Amount `json:"harvested"`
	Principal *amount.Amount `json:"principal"`
	Fee       *amount.Amount `json:"fee"`
	Shortfall *amount.Amount `json:"shortfall"`
}

type EmergencyWithdrawResult struct {
	Pid    uint64         `json:"pid"`
	User   common.Address `json:"user"`
	Amount *amount.Amount `json:"amount"`
}

type RecoverResult struct {
	Token  common.Address `json:"token"`
	To     common.Address `json:"to"`
	Amount *amount.Amount `json:"amount"`
}

type OperatorResult struct {
	Previous common.Address `json:"previous"`
	Operator common.Address `json:"operator"`
}
