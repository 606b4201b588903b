package types

import (
	"github.com/hogfinance/hogpool/common"
)

// ContractContext is an context for the contract
type ContractContext struct {
	cont common.Address
	from common.Address
	ctx  *Context
	Exec ExecFunc
}

// TargetHeight returns the recorded target height when ContractContext generation
func (cc *ContractContext) TargetHeight() uint32 {
	return cc.ctx.TargetHeight()
}

// LastTimestamp returns the current unix time in seconds
func (cc *ContractContext) LastTimestamp() uint64 {
	return cc.ctx.LastTimestamp()
}

// From returns the caller address
func (cc *ContractContext) From() common.Address {
	return cc.from
}

// Self returns the address of the running contract
func (cc *ContractContext) Self() common.Address {
	return cc.cont
}

// ContractData returns the contract data from the top snapshot
func (cc *ContractContext) ContractData(name []byte) []byte {
	return cc.ctx.Top().Data(cc.cont, common.Address{}, name)
}

// SetContractData inserts the contract data to the top snapshot
func (cc *ContractContext) SetContractData(name []byte, value []byte) {
	cc.ctx.Top().SetData(cc.cont, common.Address{}, name, value)
}

// AccountData returns the account data from the top snapshot
func (cc *ContractContext) AccountData(addr common.Address, name []byte) []byte {
	return cc.ctx.Top().Data(cc.cont, addr, name)
}

// SetAccountData inserts the account data to the top snapshot
func (cc *ContractContext) SetAccountData(addr common.Address, name []byte, value []byte) {
	cc.ctx.Top().SetData(cc.cont, addr, name, value)
}

// IsContract returns is the contract
func (cc *ContractContext) IsContract(addr common.Address) bool {
	return cc.ctx.IsContract(addr)
}

// EmitEvent journals the result record of the running call.
// The event is dropped if the call reverts.
func (cc *ContractContext) EmitEvent(Type string, Result interface{}) {
	cc.ctx.emitEvent(cc.cont, cc.from, Type, Result)
}
