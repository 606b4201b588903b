package types

import (
	"github.com/hogfinance/hogpool/common"
)

// Contract defines ledger contract functions
type Contract interface {
	Address() common.Address
	Master() common.Address
	Init(addr common.Address, master common.Address)
	OnCreate(cc *ContractContext, Args []byte) error
	Front() interface{}
}

// ContractLoader is the read only view of a contract's state
type ContractLoader interface {
	TargetHeight() uint32
	LastTimestamp() uint64
	ContractData(name []byte) []byte
	AccountData(addr common.Address, name []byte) []byte
}
