package genesis

import (
	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/core/types"
)

//////////////////////////////////////////////////
// Public Writer only Operator Functions
//////////////////////////////////////////////////

func (cont *GenesisContract) SetOperator(cc *types.ContractContext, operator common.Address) (*stakepool.OperatorResult, error) {
	return cont.engine().SetOperator(cc, operator)
}

func (cont *GenesisContract) Pause(cc *types.ContractContext) error {
	return cont.engine().SetPaused(cc, true)
}

func (cont *GenesisContract) Unpause(cc *types.ContractContext) error {
	return cont.engine().SetPaused(cc, false)
}

// RecoverUnsupportedToken sends out tokens sent here by mistake.
// The reward token is released once RecoverGracePeriod has passed after the schedule end.
func (cont *GenesisContract) RecoverUnsupportedToken(cc *types.ContractContext, token common.Address, amt *amount.Amount, to common.Address) (*stakepool.RecoverResult, error) {
	return cont.engine().RecoverUnsupportedToken(cc, token, amt, to)
}
