package util

import (
	"io"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/bin"
	"github.com/hogfinance/hogpool/contract/token"
	"github.com/hogfinance/hogpool/core/types"
)

func (tc *TestContext) DeployContract(contType types.Contract, contArgs io.WriterTo) common.Address {
	return tc.DeployContractFrom(Admin, contType, contArgs)
}

func (tc *TestContext) DeployContractFrom(deployer common.Address, contType types.Contract, contArgs io.WriterTo) common.Address {
	addr, err := tc.TryDeployContract(deployer, contType, contArgs)
	if err != nil {
		panic(err)
	}
	return addr
}

func (tc *TestContext) TryDeployContract(deployer common.Address, contType types.Contract, contArgs io.WriterTo) (common.Address, error) {
	classID, err := types.RegisterContractType(contType)
	if err != nil {
		return common.ZeroAddr, err
	}
	args, _, err := bin.WriterToBytes(contArgs)
	if err != nil {
		return common.ZeroAddr, err
	}
	types.ExecLock.Lock()
	defer types.ExecLock.Unlock()
	cont, err := tc.Ctx.DeployContract(deployer, classID, args)
	if err != nil {
		return common.ZeroAddr, err
	}
	return cont.Address(), nil
}

func (tc *TestContext) MakeToken(name string, symbol string, amt string) common.Address {
	tokenContArgs := &token.TokenContractConstruction{
		Name:   name,
		Symbol: symbol,
		InitialSupplyMap: map[common.Address]*amount.Amount{
			Admin: amount.MustParseAmount(amt),
		},
	}
	return tc.DeployContract(&token.TokenContract{}, tokenContArgs)
}

func (tc *TestContext) BalanceOf(tokenAddr common.Address, holder common.Address) *amount.Amount {
	return tc.MustReadTx(tokenAddr, "BalanceOf", holder)[0].(*amount.Amount)
}

// Fund sends amt of the token from Admin to the user and approves spender for all of it
func (tc *TestContext) Fund(tokenAddr common.Address, user common.Address, spender common.Address, amt *amount.Amount) {
	tc.MustSendTx(Admin, tokenAddr, "Transfer", user, amt)
	allowed := tc.MustReadTx(tokenAddr, "Allowance", user, spender)[0].(*amount.Amount)
	tc.MustSendTx(user, tokenAddr, "Approve", spender, allowed.Add(amt))
}
