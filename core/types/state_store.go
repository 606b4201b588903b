package types

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common/bin"
	"github.com/hogfinance/hogpool/common/rlog"
	"github.com/hogfinance/hogpool/core/backend"
)

var storeLog = rlog.New("store")

// store key tags
var (
	tagHeight     = byte(0x01)
	tagTimestamp  = byte(0x02)
	tagJournalSeq = byte(0x03)
	tagData       = byte(0x10)
	tagJournal    = byte(0x20)
)

// StateStore saves the ledger state of applied contexts to a backend
// All updates of one Apply are executed in one transaction
type StateStore struct {
	sync.Mutex
	db        backend.StoreBackend
	height    uint32
	timestamp uint64
	seq       uint64
	isClose   bool
}

// NewStateStore returns a StateStore and restores the last applied height and time
func NewStateStore(db backend.StoreBackend) (*StateStore, error) {
	st := &StateStore{
		db: db,
	}
	if err := db.View(func(txn backend.StoreReader) error {
		if bs, err := txn.Get([]byte{tagHeight}); err == nil {
			st.height = uint32(bin.Uint64(bs))
		} else if errors.Cause(err) != backend.ErrNotExistKey {
			return errors.WithStack(err)
		}
		if bs, err := txn.Get([]byte{tagTimestamp}); err == nil {
			st.timestamp = bin.Uint64(bs)
		} else if errors.Cause(err) != backend.ErrNotExistKey {
			return errors.WithStack(err)
		}
		if bs, err := txn.Get([]byte{tagJournalSeq}); err == nil {
			st.seq = bin.Uint64(bs)
		} else if errors.Cause(err) != backend.ErrNotExistKey {
			return errors.WithStack(err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return st, nil
}

// Close terminate and clean store
func (st *StateStore) Close() {
	st.Lock()
	defer st.Unlock()

	if st.isClose {
		return
	}
	st.isClose = true
	st.db.Shrink()
	st.db.Close()
}

// TargetHeight returns the height of the last applied context
func (st *StateStore) TargetHeight() uint32 {
	st.Lock()
	defer st.Unlock()
	return st.height
}

// LastTimestamp returns the time of the last applied context
func (st *StateStore) LastTimestamp() uint64 {
	st.Lock()
	defer st.Unlock()
	return st.timestamp
}

// Data returns the stored value of the context data key
func (st *StateStore) Data(key string) []byte {
	var value []byte
	if err := st.db.View(func(txn backend.StoreReader) error {
		bs, err := txn.Get(toStoreKey(key))
		if err != nil {
			return err
		}
		value = make([]byte, len(bs))
		copy(value, bs)
		return nil
	}); err != nil {
		if errors.Cause(err) != backend.ErrNotExistKey {
			storeLog.Error("Data", "err", err)
		}
		return nil
	}
	return value
}

// Apply stores every pending write of the context with its journal.
// The context must not hold an open snapshot.
func (st *StateStore) Apply(ctx *Context) error {
	st.Lock()
	defer st.Unlock()

	if st.isClose {
		return errors.New("store closed")
	}
	if ctx.StackSize() != 1 {
		return errors.WithStack(ErrDirtySnapshot)
	}
	cache := ctx.cache
	cache.apply(ctx.Top())
	ctx.stack = []*ContextData{NewContextData(cache, nil)}

	if err := st.db.Update(func(txn backend.StoreWriter) error {
		var err error
		cache.committed.EachAll(func(key string, value []byte) bool {
			err = txn.Set(toStoreKey(key), value)
			return err == nil
		})
		if err != nil {
			return errors.WithStack(err)
		}
		cache.deleted.EachAll(func(key string, _ []byte) bool {
			err = txn.Delete(toStoreKey(key))
			return err == nil
		})
		if err != nil {
			return errors.WithStack(err)
		}
		for i, e := range cache.journal {
			bs, err := e.MarshalBinary()
			if err != nil {
				return err
			}
			if err := txn.Set(toJournalKey(st.seq+uint64(i)), bs); err != nil {
				return errors.WithStack(err)
			}
		}
		if err := txn.Set([]byte{tagJournalSeq}, bin.Uint64Bytes(st.seq+uint64(len(cache.journal)))); err != nil {
			return errors.WithStack(err)
		}
		if err := txn.Set([]byte{tagHeight}, bin.Uint64Bytes(uint64(ctx.TargetHeight()))); err != nil {
			return errors.WithStack(err)
		}
		if err := txn.Set([]byte{tagTimestamp}, bin.Uint64Bytes(ctx.LastTimestamp())); err != nil {
			return errors.WithStack(err)
		}
		return nil
	}); err != nil {
		return err
	}
	storeLog.Debug("Apply", "height", ctx.TargetHeight(), "timestamp", ctx.LastTimestamp(), "writes", cache.committed.Len(), "deletes", cache.deleted.Len(), "events", len(cache.journal))

	st.seq += uint64(len(cache.journal))
	st.height = ctx.TargetHeight()
	st.timestamp = ctx.LastTimestamp()
	cache.reset()
	return nil
}

// LoadJournal returns the stored events in emission order
func (st *StateStore) LoadJournal() ([]*Event, error) {
	evs := []*Event{}
	if err := st.db.View(func(txn backend.StoreReader) error {
		return txn.Iterate([]byte{tagJournal}, func(key []byte, value []byte) error {
			e := &Event{}
			if err := e.UnmarshalBinary(value); err != nil {
				return err
			}
			evs = append(evs, e)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return evs, nil
}

func toStoreKey(key string) []byte {
	bs := make([]byte, 1+len(key))
	bs[0] = tagData
	copy(bs[1:], key)
	return bs
}

func toJournalKey(seq uint64) []byte {
	bs := make([]byte, 1+8)
	bs[0] = tagJournal
	copy(bs[1:], bin.Uint64Bytes(seq))
	return bs
}
