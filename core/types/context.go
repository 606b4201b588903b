package types

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/bin"
)

var (
	tagContractDefine = byte(0x01)
	tagDeploySeq      = byte(0x02)
)

// Context is an in-memory ledger state at one instant, using the context data stack
// to make every call atomic
type Context struct {
	genTargetHeight uint32
	genTimestamp    uint64
	cache           *contextCache
	stack           []*ContextData
}

// NewContext returns a Context on top of the loader
func NewContext(loader Loader) *Context {
	ctx := &Context{
		genTargetHeight: loader.TargetHeight(),
		genTimestamp:    loader.LastTimestamp(),
		cache:           newContextCache(loader),
	}
	ctx.stack = []*ContextData{NewContextData(ctx.cache, nil)}
	return ctx
}

// NewEmptyContext returns a EmptyContext
func NewEmptyContext() *Context {
	return NewContext(newEmptyLoader())
}

// NextContext closes the context and returns the next one at the given time.
// Time never moves backwards.
func (ctx *Context) NextContext(Timestamp uint64) (*Context, error) {
	if Timestamp < ctx.genTimestamp {
		return nil, errors.Wrapf(ErrTimeReversed, "%v < %v", Timestamp, ctx.genTimestamp)
	}
	if len(ctx.stack) != 1 {
		return nil, errors.WithStack(ErrDirtySnapshot)
	}
	ctx.cache.apply(ctx.Top())
	nctx := &Context{
		genTargetHeight: ctx.genTargetHeight + 1,
		genTimestamp:    Timestamp,
		cache:           ctx.cache,
	}
	nctx.stack = []*ContextData{NewContextData(nctx.cache, nil)}
	ctx.stack = []*ContextData{NewContextData(ctx.cache, nil)}
	return nctx, nil
}

// TargetHeight returns the sequence number of the context
func (ctx *Context) TargetHeight() uint32 {
	return ctx.genTargetHeight
}

// LastTimestamp returns the unix time of the context in seconds
func (ctx *Context) LastTimestamp() uint64 {
	return ctx.genTimestamp
}

// Top returns the top snapshot
func (ctx *Context) Top() *ContextData {
	return ctx.stack[len(ctx.stack)-1]
}

// Data returns the data from the top snapshot
func (ctx *Context) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return ctx.Top().Data(cont, addr, name)
}

// SetData inserts the data to the top snapshot
func (ctx *Context) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	ctx.Top().SetData(cont, addr, name, value)
}

// IsContract returns is the contract
func (ctx *Context) IsContract(addr common.Address) bool {
	return len(ctx.Data(common.ZeroAddr, addr, []byte{tagContractDefine})) > 0
}

// Contract returns the contract of the address
func (ctx *Context) Contract(addr common.Address) (Contract, error) {
	bs := ctx.Data(common.ZeroAddr, addr, []byte{tagContractDefine})
	if len(bs) == 0 {
		return nil, errors.Wrapf(ErrNotExistContract, "%v", addr.String())
	}
	if cont, has := ctx.cache.contracts[addr]; has {
		return cont, nil
	}
	cd := &ContractDefine{}
	if _, err := cd.ReadFrom(bytes.NewReader(bs)); err != nil {
		return nil, err
	}
	cont, err := CreateContract(cd)
	if err != nil {
		return nil, err
	}
	ctx.cache.contracts[addr] = cont
	return cont, nil
}

// DeployContract creates the contract at the next address of the sender and runs OnCreate atomically
func (ctx *Context) DeployContract(sender common.Address, ClassID uint64, Args []byte) (Contract, error) {
	if !IsValidClassID(ClassID) {
		return nil, errors.WithStack(ErrInvalidClassID)
	}

	sn := ctx.Snapshot()
	var nonce uint64
	if bs := ctx.Data(common.ZeroAddr, sender, []byte{tagDeploySeq}); len(bs) == 8 {
		nonce = bin.Uint64(bs)
	}
	ctx.SetData(common.ZeroAddr, sender, []byte{tagDeploySeq}, bin.Uint64Bytes(nonce+1))

	cd := &ContractDefine{
		Address: common.ContractAddress(sender, nonce),
		Owner:   sender,
		ClassID: ClassID,
	}
	bs, _, err := bin.WriterToBytes(cd)
	if err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	ctx.SetData(common.ZeroAddr, cd.Address, []byte{tagContractDefine}, bs)

	cont, err := CreateContract(cd)
	if err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	cc := ctx.ContractContext(cont, sender)
	cc.Exec = NewInteractor(ctx).Exec
	if err := cont.OnCreate(cc, Args); err != nil {
		ctx.Revert(sn)
		return nil, err
	}
	ctx.Commit(sn)
	return cont, nil
}

// ContractContext returns a ContractContext
func (ctx *Context) ContractContext(cont Contract, from common.Address) *ContractContext {
	return &ContractContext{
		cont: cont.Address(),
		from: from,
		ctx:  ctx,
	}
}

// Events returns the events emitted in this context so far
func (ctx *Context) Events() []*Event {
	return ctx.stack[0].Events
}

// Journal returns the events of all finished contexts that are not stored yet followed by the events of this one
func (ctx *Context) Journal() []*Event {
	evs := make([]*Event, 0, len(ctx.cache.journal)+len(ctx.stack[0].Events))
	evs = append(evs, ctx.cache.journal...)
	return append(evs, ctx.stack[0].Events...)
}

func (ctx *Context) emitEvent(cont common.Address, from common.Address, Type string, Result interface{}) {
	top := ctx.Top()
	top.EmitEvent(&Event{
		Height:    ctx.genTargetHeight,
		Timestamp: ctx.genTimestamp,
		Index:     uint32(len(ctx.cache.journal) + top.eventCount()),
		Contract:  cont,
		Caller:    from,
		Type:      Type,
		Result:    Result,
	})
}

// Snapshot push a snapshot and returns the snapshot number of it
func (ctx *Context) Snapshot() int {
	ctd := NewContextData(ctx.cache, ctx.Top())
	ctx.stack[len(ctx.stack)-1].isTop = false
	ctx.stack = append(ctx.stack, ctd)
	return len(ctx.stack)
}

// Revert removes snapshots after the snapshot number
func (ctx *Context) Revert(sn int) {
	if len(ctx.stack) >= sn {
		ctx.stack = ctx.stack[:sn-1]
	}
	ctx.stack[len(ctx.stack)-1].isTop = true
}

// Commit apply snapshots to the top after the snapshot number
func (ctx *Context) Commit(sn int) {
	for len(ctx.stack) >= sn {
		ctd := ctx.Top()
		ctx.stack = ctx.stack[:len(ctx.stack)-1]
		top := ctx.Top()
		ctd.DataMap.EachAll(func(key string, value []byte) bool {
			top.DeletedDataMap.Delete(key)
			top.DataMap.Put(key, value)
			return true
		})
		ctd.DeletedDataMap.EachAll(func(key string, _ []byte) bool {
			top.DataMap.Delete(key)
			top.DeletedDataMap.Put(key, nil)
			return true
		})
		top.Events = append(top.Events, ctd.Events...)
	}
	ctx.Top().isTop = true
}

// StackSize returns the size of the context data stack
func (ctx *Context) StackSize() int {
	return len(ctx.stack)
}
