package token

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/core/types"
)

// Decimals of every token deployed by this contract
const Decimals = amount.FractionalCount

type TokenContract struct {
	addr   common.Address
	master common.Address
}

func (cont *TokenContract) Address() common.Address {
	return cont.addr
}

func (cont *TokenContract) Master() common.Address {
	return cont.master
}

func (cont *TokenContract) Init(addr common.Address, master common.Address) {
	cont.addr = addr
	cont.master = master
}

func (cont *TokenContract) OnCreate(cc *types.ContractContext, Args []byte) error {
	data := &TokenContractConstruction{}
	if _, err := data.ReadFrom(bytes.NewReader(Args)); err != nil {
		return err
	}
	cc.SetContractData([]byte{tagTokenName}, []byte(data.Name))
	cc.SetContractData([]byte{tagTokenSymbol}, []byte(data.Symbol))
	cc.SetContractData([]byte{tagTokenOperator}, cont.master[:])
	for _, k := range sortedHolders(data.InitialSupplyMap) {
		if err := cont.addBalance(cc, k, data.InitialSupplyMap[k]); err != nil {
			return err
		}
	}
	if data.GenesisAllocation.IsPlus() {
		cc.SetContractData([]byte{tagGenesisAllocation}, data.GenesisAllocation.Bytes())
	}
	if data.DaoAllocation.IsPlus() {
		cc.SetContractData([]byte{tagDaoAllocation}, data.DaoAllocation.Bytes())
	}
	return nil
}

//////////////////////////////////////////////////
// Private Functions
//////////////////////////////////////////////////

func (cont *TokenContract) addBalance(cc *types.ContractContext, addr common.Address, am *amount.Amount) error {
	if !am.IsPlus() {
		return errors.Wrapf(ErrInvalidAmount, "add %v", am.String())
	}
	if cont.isPause(cc) {
		return errors.WithStack(ErrTokenPaused)
	}
	bal := cont.BalanceOf(cc, addr)
	cc.SetAccountData(addr, []byte{tagTokenAmount}, bal.Add(am).Bytes())

	total := cont.TotalSupply(cc).Add(am)
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Bytes())
	return nil
}

func (cont *TokenContract) subBalance(cc *types.ContractContext, addr common.Address, am *amount.Amount) error {
	if !am.IsPlus() {
		return errors.Wrapf(ErrInvalidAmount, "sub %v", am.String())
	}
	if cont.isPause(cc) {
		return errors.WithStack(ErrTokenPaused)
	}
	bal := cont.BalanceOf(cc, addr)
	if bal.Less(am) {
		return errors.Wrapf(ErrInsufficientBalance, "%v less than %v of %v", bal.String(), am.String(), addr.String())
	}
	bal = bal.Sub(am)
	if bal.IsZero() {
		cc.SetAccountData(addr, []byte{tagTokenAmount}, nil)
	} else {
		cc.SetAccountData(addr, []byte{tagTokenAmount}, bal.Bytes())
	}

	total := cont.TotalSupply(cc).Sub(am)
	cc.SetContractData([]byte{tagTokenTotalSupply}, total.Bytes())
	return nil
}

func (cont *TokenContract) move(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) error {
	if To == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "transfer to")
	}
	if Amount.IsMinus() {
		return errors.Wrapf(ErrInvalidAmount, "transfer %v", Amount.String())
	}
	if Amount.IsZero() {
		return nil
	}
	if err := cont.subBalance(cc, From, Amount); err != nil {
		return err
	}
	return cont.addBalance(cc, To, Amount)
}

func (cont *TokenContract) isPause(cc *types.ContractContext) bool {
	bs := cc.ContractData([]byte{tagPause})
	return len(bs) == 1 && bs[0] == 1
}

func (cont *TokenContract) isOperator(cc *types.ContractContext) bool {
	return cc.From() == cont.Operator(cc)
}

func sortedHolders(m map[common.Address]*amount.Amount) []common.Address {
	addrs := make([]common.Address, 0, len(m))
	for k := range m {
		addrs = append(addrs, k)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	return addrs
}

func orZero(am *amount.Amount) *amount.Amount {
	if am == nil {
		return amount.ZeroCoin()
	}
	return am
}

//////////////////////////////////////////////////
// Public Writer Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Transfer(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	if cc.From() == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "transfer from")
	}
	return cont.move(cc, cc.From(), To, Amount)
}

// TransferFrom moves Amount of From to To using the allowance From gave to the caller
func (cont *TokenContract) TransferFrom(cc *types.ContractContext, From common.Address, To common.Address, Amount *amount.Amount) error {
	if Amount.IsZero() {
		return nil
	}
	if From == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "transfer from")
	}
	allowed := cont.Allowance(cc, From, cc.From())
	if allowed.Less(Amount) {
		return errors.Wrapf(ErrInsufficientAllowance, "%v less than %v of %v for %v", allowed.String(), Amount.String(), From.String(), cc.From().String())
	}
	cont._approve(cc, From, cc.From(), allowed.Sub(Amount))
	return cont.move(cc, From, To, Amount)
}

func (cont *TokenContract) Approve(cc *types.ContractContext, spender common.Address, Amount *amount.Amount) error {
	if cc.From() == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "approve from")
	}
	if spender == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "approve to")
	}
	if Amount.IsMinus() {
		return errors.Wrapf(ErrInvalidAmount, "approve %v", Amount.String())
	}
	cont._approve(cc, cc.From(), spender, Amount)
	return nil
}

func (cont *TokenContract) _approve(cc *types.ContractContext, owner common.Address, spender common.Address, Amount *amount.Amount) {
	if Amount.IsZero() {
		cc.SetAccountData(owner, MakeAllowanceTokenKey(spender), nil)
		return
	}
	cc.SetAccountData(owner, MakeAllowanceTokenKey(spender), Amount.Bytes())
}

func (cont *TokenContract) Burn(cc *types.ContractContext, am *amount.Amount) error {
	if am.IsMinus() {
		return errors.Wrapf(ErrInvalidAmount, "burn %v", am.String())
	}
	return cont.subBalance(cc, cc.From(), am)
}

func (cont *TokenContract) Mint(cc *types.ContractContext, To common.Address, Amount *amount.Amount) error {
	if !cont.isOperator(cc) && !cont.IsMinter(cc, cc.From()) {
		return errors.Wrap(ErrNotTokenMinter, cc.From().String())
	}
	if To == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "mint to")
	}
	if Amount.IsPlus() {
		return cont.addBalance(cc, To, Amount)
	}
	return nil
}

// DistributeReward mints the genesis pool budget and the dao fund share.
// It can run only once.
func (cont *TokenContract) DistributeReward(cc *types.ContractContext, DaoFund common.Address, GenesisPool common.Address) error {
	if !cont.isOperator(cc) {
		return errors.WithStack(ErrNotTokenOperator)
	}
	if DaoFund == common.ZeroAddr || GenesisPool == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "distribute reward")
	}
	if len(cc.ContractData([]byte{tagRewardDistributed})) > 0 {
		return errors.WithStack(ErrAlreadyDistributed)
	}
	cc.SetContractData([]byte{tagRewardDistributed}, []byte{1})

	if am := cont.GenesisAllocation(cc); am.IsPlus() {
		if err := cont.addBalance(cc, GenesisPool, am); err != nil {
			return err
		}
	}
	if am := cont.DaoAllocation(cc); am.IsPlus() {
		if err := cont.addBalance(cc, DaoFund, am); err != nil {
			return err
		}
	}
	return nil
}

//////////////////////////////////////////////////
// Public Writer only Operator Functions
//////////////////////////////////////////////////

func (cont *TokenContract) SetMinter(cc *types.ContractContext, To common.Address, Is bool) error {
	if !cont.isOperator(cc) {
		return errors.WithStack(ErrNotTokenOperator)
	}
	isMinter := cont.IsMinter(cc, To)
	if Is {
		if isMinter {
			return errors.WithStack(ErrAlreadyMinter)
		}
		cc.SetAccountData(To, []byte{tagTokenMinter}, []byte{1})
	} else {
		if !isMinter {
			return errors.WithStack(ErrNotTokenMinter)
		}
		cc.SetAccountData(To, []byte{tagTokenMinter}, nil)
	}
	return nil
}

func (cont *TokenContract) TransferOperator(cc *types.ContractContext, To common.Address) error {
	if !cont.isOperator(cc) {
		return errors.WithStack(ErrNotTokenOperator)
	}
	if To == common.ZeroAddr {
		return errors.Wrap(ErrZeroAddress, "operator")
	}
	cc.SetContractData([]byte{tagTokenOperator}, To[:])
	return nil
}

func (cont *TokenContract) Pause(cc *types.ContractContext) error {
	if !cont.isOperator(cc) {
		return errors.WithStack(ErrNotTokenOperator)
	}
	cc.SetContractData([]byte{tagPause}, []byte{1})
	return nil
}

func (cont *TokenContract) Unpause(cc *types.ContractContext) error {
	if !cont.isOperator(cc) {
		return errors.WithStack(ErrNotTokenOperator)
	}
	cc.SetContractData([]byte{tagPause}, nil)
	return nil
}

//////////////////////////////////////////////////
// Public Reader Functions
//////////////////////////////////////////////////

func (cont *TokenContract) Name(cc types.ContractLoader) string {
	return string(cc.ContractData([]byte{tagTokenName}))
}

func (cont *TokenContract) Symbol(cc types.ContractLoader) string {
	return string(cc.ContractData([]byte{tagTokenSymbol}))
}

func (cont *TokenContract) TotalSupply(cc types.ContractLoader) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tagTokenTotalSupply}))
}

func (cont *TokenContract) BalanceOf(cc types.ContractLoader, from common.Address) *amount.Amount {
	return amount.NewAmountFromBytes(cc.AccountData(from, []byte{tagTokenAmount}))
}

func (cont *TokenContract) Allowance(cc types.ContractLoader, owner common.Address, spender common.Address) *amount.Amount {
	return amount.NewAmountFromBytes(cc.AccountData(owner, MakeAllowanceTokenKey(spender)))
}

func (cont *TokenContract) IsMinter(cc types.ContractLoader, addr common.Address) bool {
	bs := cc.AccountData(addr, []byte{tagTokenMinter})
	return len(bs) == 1 && bs[0] == 1
}

func (cont *TokenContract) Operator(cc types.ContractLoader) common.Address {
	bs := cc.ContractData([]byte{tagTokenOperator})
	if len(bs) != common.AddressLength {
		return cont.master
	}
	return common.BytesToAddress(bs)
}

func (cont *TokenContract) GenesisAllocation(cc types.ContractLoader) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tagGenesisAllocation}))
}

func (cont *TokenContract) DaoAllocation(cc types.ContractLoader) *amount.Amount {
	return amount.NewAmountFromBytes(cc.ContractData([]byte{tagDaoAllocation}))
}

func (cont *TokenContract) IsRewardDistributed(cc types.ContractLoader) bool {
	return len(cc.ContractData([]byte{tagRewardDistributed})) > 0
}
