package types

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
)

// ExecLock serializes top level calls so that only one writer touches the context at a time
var ExecLock sync.Mutex

var errType = reflect.TypeOf((*error)(nil)).Elem()

type IInteractor interface {
	Exec(Cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error)
}

type ExecFunc = func(Cc *ContractContext, Addr common.Address, MethodName string, Args []interface{}) ([]interface{}, error)

type interactor struct {
	ctx    *Context
	conMap map[common.Address]Contract
}

func NewInteractor(ctx *Context) IInteractor {
	return &interactor{
		ctx:    ctx,
		conMap: map[common.Address]Contract{},
	}
}

// Exec calls the method of the contract at Addr. Calls nested through cc.Exec run with the
// calling contract as From and share the caller's atomicity.
func (i *interactor) Exec(Cc *ContractContext, ContAddr common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
	if MethodName == "" {
		return nil, errors.New("method not given")
	}
	cont, err := i.getContract(ContAddr)
	if err != nil {
		return nil, err
	}
	MethodName = strings.ToUpper(MethodName[:1]) + MethodName[1:]
	return _exec(i.currentContractContext(Cc, ContAddr), cont, MethodName, Args)
}

func (i *interactor) getContract(Addr common.Address) (Contract, error) {
	if cont, has := i.conMap[Addr]; has {
		return cont, nil
	}
	cont, err := i.ctx.Contract(Addr)
	if err != nil {
		return nil, err
	}
	i.conMap[Addr] = cont
	return cont, nil
}

func (i *interactor) currentContractContext(Cc *ContractContext, Addr common.Address) *ContractContext {
	if Cc.cont == Addr {
		return Cc
	}
	return &ContractContext{
		cont: Addr,
		from: Cc.cont,
		ctx:  Cc.ctx,
		Exec: i.Exec,
	}
}

func _exec(ecc *ContractContext, cont Contract, MethodName string, Args []interface{}) (result []interface{}, err error) {
	ContAddr := cont.Address()
	rMethod, err := methodByName(cont, ContAddr, MethodName)
	if err != nil {
		return nil, err
	}
	in, err := ContractInputsConv(Args, rMethod)
	if err != nil {
		return nil, errors.Wrapf(err, "%v", MethodName)
	}
	in = append([]reflect.Value{reflect.ValueOf(ecc)}, in...)

	sn := ecc.ctx.Snapshot()
	vs, err := func() (vs []reflect.Value, err error) {
		defer func() {
			if v := recover(); v != nil {
				err = errors.Wrapf(ErrContractPanic, "method(%v) of contract(%v): %v", MethodName, ContAddr.String(), v)
			}
		}()
		return rMethod.Call(in), nil
	}()
	if err == nil {
		result, err = getResults(rMethod.Type(), vs)
	}
	if err != nil {
		ecc.ctx.Revert(sn)
		return nil, err
	}
	ecc.ctx.Commit(sn)
	return result, nil
}

func methodByName(cont Contract, Addr common.Address, MethodName string) (reflect.Value, error) {
	vo := reflect.ValueOf(cont.Front())
	if !vo.IsValid() || (vo.Kind() == reflect.Ptr && vo.IsNil()) {
		return reflect.Value{}, errors.Errorf("nil contract front %v", Addr.String())
	}
	method := vo.MethodByName(MethodName)
	if !method.IsValid() {
		return reflect.Value{}, errors.Wrapf(ErrMethodNotExist, "%v of %v", MethodName, Addr.String())
	}
	return method, nil
}

func getResults(mType reflect.Type, vs []reflect.Value) (result []interface{}, err error) {
	result = []interface{}{}
	for i, v := range vs {
		if mType.Out(i).Kind() == reflect.Interface && mType.Out(i).Implements(errType) {
			if !v.IsNil() {
				err = v.Interface().(error)
			}
			continue
		}
		result = append(result, v.Interface())
	}
	return
}

var (
	addressType = reflect.TypeOf(common.Address{})
	amountType  = reflect.TypeOf(&amount.Amount{})
	bigIntType  = reflect.TypeOf(&big.Int{})
)

// ContractInputsConv converts loosely typed arguments (from JSON, YAML or Go callers)
// to the parameter types of the method, skipping the leading ContractContext
func ContractInputsConv(Args []interface{}, rMethod reflect.Value) ([]reflect.Value, error) {
	mt := rMethod.Type()
	if mt.NumIn() < 1 {
		return nil, errors.WithStack(ErrMethodNotExist)
	}
	if mt.NumIn() != len(Args)+1 {
		return nil, errors.Wrapf(ErrInvalidInputCount, "got %v want %v", len(Args), mt.NumIn()-1)
	}
	in := make([]reflect.Value, len(Args))
	for i, v := range Args {
		param, err := convertInput(v, mt.In(i+1))
		if err != nil {
			return nil, errors.Wrapf(err, "input %v", i)
		}
		in[i] = param
	}
	return in, nil
}

func convertInput(v interface{}, mType reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(mType), nil
	}
	param := reflect.ValueOf(v)
	if param.Type() == mType {
		return param, nil
	}
	switch mType {
	case addressType:
		switch pv := v.(type) {
		case string:
			addr, err := common.ParseAddress(pv)
			if err != nil {
				return param, err
			}
			return reflect.ValueOf(addr), nil
		case []byte:
			return reflect.ValueOf(common.BytesToAddress(pv)), nil
		}
	case amountType:
		switch pv := v.(type) {
		case string:
			am, err := amount.ParseAmount(pv)
			if err != nil {
				return param, err
			}
			return reflect.ValueOf(am), nil
		case *big.Int:
			return reflect.ValueOf(amount.NewAmountFromBig(pv)), nil
		case amount.Amount:
			return reflect.ValueOf(pv.Clone()), nil
		}
	case bigIntType:
		if pv, ok := v.(*amount.Amount); ok {
			return reflect.ValueOf(new(big.Int).Set(pv.Int)), nil
		}
	}
	switch mType.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint:
		n, err := toUint64(v)
		if err != nil {
			return param, err
		}
		out := reflect.New(mType).Elem()
		if out.OverflowUint(n) {
			return param, errors.Wrapf(ErrInvalidInputType, "%v overflows %v", n, mType)
		}
		out.SetUint(n)
		return out, nil
	case reflect.Bool:
		if pv, ok := v.(string); ok {
			b, err := strconv.ParseBool(pv)
			if err != nil {
				return param, errors.WithStack(err)
			}
			return reflect.ValueOf(b), nil
		}
	case reflect.String:
		if pv, ok := v.(fmt.Stringer); ok {
			return reflect.ValueOf(pv.String()), nil
		}
	}
	return param, errors.Wrapf(ErrInvalidInputType, "get %v want %v", param.Type(), mType)
}

func toUint64(v interface{}) (uint64, error) {
	switch pv := v.(type) {
	case int:
		if pv >= 0 {
			return uint64(pv), nil
		}
	case int64:
		if pv >= 0 {
			return uint64(pv), nil
		}
	case uint:
		return uint64(pv), nil
	case uint8:
		return uint64(pv), nil
	case uint16:
		return uint64(pv), nil
	case uint32:
		return uint64(pv), nil
	case uint64:
		return pv, nil
	case float64:
		if pv >= 0 && pv == float64(uint64(pv)) {
			return uint64(pv), nil
		}
	case string:
		n, err := strconv.ParseUint(pv, 10, 64)
		if err != nil {
			return 0, errors.WithStack(err)
		}
		return n, nil
	case *big.Int:
		if pv.IsUint64() {
			return pv.Uint64(), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidInputType, "%v(%T) is not an unsigned integer", v, v)
}

// ExecContract runs a mutating call as From against the contract and keeps its effects
// only when it succeeds
func ExecContract(ctx *Context, From common.Address, ContAddr common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
	ExecLock.Lock()
	defer ExecLock.Unlock()

	cont, err := ctx.Contract(ContAddr)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, From)
	cc.Exec = NewInteractor(ctx).Exec
	return cc.Exec(cc, ContAddr, MethodName, Args)
}

// ViewContract runs the call and discards every state change it made
func ViewContract(ctx *Context, ContAddr common.Address, MethodName string, Args []interface{}) ([]interface{}, error) {
	ExecLock.Lock()
	defer ExecLock.Unlock()

	sn := ctx.Snapshot()
	defer ctx.Revert(sn)

	cont, err := ctx.Contract(ContAddr)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, common.ZeroAddr)
	cc.Exec = NewInteractor(ctx).Exec
	return cc.Exec(cc, ContAddr, MethodName, Args)
}
