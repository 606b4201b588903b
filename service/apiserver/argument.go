package apiserver

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
)

// Argument parses rpc arguments
type Argument struct {
	args []interface{}
}

// NewArgument returns a Argument
func NewArgument(args []interface{}) *Argument {
	arg := &Argument{
		args: args,
	}
	return arg
}

// Len returns length of arguments
func (arg *Argument) Len() int {
	return len(arg.args)
}

func (arg *Argument) get(index int) (interface{}, error) {
	if index < 0 || index >= len(arg.args) {
		return nil, errors.Wrapf(ErrInvalidArgumentIndex, "%v", index)
	}
	a := arg.args[index]
	if a == nil {
		return nil, errors.Wrapf(ErrInvalidArgumentType, "%v is null", index)
	}
	return a, nil
}

// Uint64 returns a uint64 value of the index
func (arg *Argument) Uint64(index int) (uint64, error) {
	a, err := arg.get(index)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(fmt.Sprintf("%v", a), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArgumentType, "%v: %v", index, err)
	}
	return n, nil
}

// String returns a string value of the index
func (arg *Argument) String(index int) (string, error) {
	a, err := arg.get(index)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", a), nil
}

// Address returns a hex address of the index
func (arg *Argument) Address(index int) (common.Address, error) {
	str, err := arg.String(index)
	if err != nil {
		return common.ZeroAddr, err
	}
	addr, err := common.ParseAddress(str)
	if err != nil {
		return common.ZeroAddr, errors.Wrapf(ErrInvalidArgumentType, "%v: %v", index, err)
	}
	return addr, nil
}

// Amount returns a decimal token amount of the index
func (arg *Argument) Amount(index int) (*amount.Amount, error) {
	str, err := arg.String(index)
	if err != nil {
		return nil, err
	}
	am, err := amount.ParseAmount(str)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgumentType, "%v: %v", index, err)
	}
	return am, nil
}
