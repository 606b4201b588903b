package util

import (
	"sync"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/core/types"
)

type TestContext struct {
	Ctx *types.Context
	Idx int
}

var idx int
var idxLock sync.Mutex

func NewTestContext() *TestContext {
	idxLock.Lock()
	tc := &TestContext{
		Idx: idx,
		Ctx: types.NewEmptyContext(),
	}
	idx++
	idxLock.Unlock()

	if err := tc.SetTime(StartTimestamp); err != nil {
		panic(err)
	}
	return tc
}

// Sleep moves the clock forward
func (tc *TestContext) Sleep(seconds uint64) error {
	return tc.SetTime(tc.Ctx.LastTimestamp() + seconds)
}

func (tc *TestContext) MustSleep(seconds uint64) {
	if err := tc.Sleep(seconds); err != nil {
		panic(err)
	}
}

// SetTime moves the clock to the timestamp
func (tc *TestContext) SetTime(timestamp uint64) error {
	ctx, err := tc.Ctx.NextContext(timestamp)
	if err != nil {
		return err
	}
	tc.Ctx = ctx
	return nil
}

func (tc *TestContext) Now() uint64 {
	return tc.Ctx.LastTimestamp()
}

/////////// context ///////////
func GetCC(ctx *types.Context, contAddr common.Address, user common.Address) (*types.ContractContext, error) {
	cont, err := ctx.Contract(contAddr)
	if err != nil {
		return nil, err
	}
	cc := ctx.ContractContext(cont, user)
	cc.Exec = types.NewInteractor(ctx).Exec
	return cc, nil
}

func Exec(ctx *types.Context, user common.Address, contAddr common.Address, methodName string, args []interface{}) ([]interface{}, error) {
	return types.ExecContract(ctx, user, contAddr, methodName, args)
}

func (tc *TestContext) SendTx(from common.Address, to common.Address, method string, params ...interface{}) ([]interface{}, error) {
	return types.ExecContract(tc.Ctx, from, to, method, params)
}

func (tc *TestContext) MustSendTx(from common.Address, to common.Address, method string, params ...interface{}) []interface{} {
	is, err := tc.SendTx(from, to, method, params...)
	if err != nil {
		panic(err)
	}
	return is
}

// ReadTx runs the call and drops every change it made
func (tc *TestContext) ReadTx(to common.Address, method string, params ...interface{}) ([]interface{}, error) {
	return types.ViewContract(tc.Ctx, to, method, params)
}

func (tc *TestContext) MustReadTx(to common.Address, method string, params ...interface{}) []interface{} {
	is, err := tc.ReadTx(to, method, params...)
	if err != nil {
		panic(err)
	}
	return is
}
