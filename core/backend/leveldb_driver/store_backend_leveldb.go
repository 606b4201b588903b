package leveldb_driver

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/hogfinance/hogpool/core/backend"
)

func init() {
	backend.RegisterDriver("leveldb", NewStoreBackendLevelDB)
}

type StoreBackendLevelDB struct {
	db *leveldb.DB
}

func NewStoreBackendLevelDB(path string) (backend.StoreBackend, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &StoreBackendLevelDB{db: db}, nil
}

func (st *StoreBackendLevelDB) Shrink() {
	st.db.CompactRange(util.Range{})
}

func (st *StoreBackendLevelDB) Close() {
	st.db.Close()
}

func (st *StoreBackendLevelDB) View(fn func(txn backend.StoreReader) error) error {
	snap, err := st.db.GetSnapshot()
	if err != nil {
		return errors.WithStack(err)
	}
	defer snap.Release()
	return fn(&storeBackendLevelDBSnapshot{snap: snap})
}

func (st *StoreBackendLevelDB) Update(fn func(txn backend.StoreWriter) error) error {
	txn, err := st.db.OpenTransaction()
	if err != nil {
		return errors.WithStack(err)
	}
	if err := fn(&storeBackendLevelDBTx{txn: txn}); err != nil {
		txn.Discard()
		return err
	}
	if err := txn.Commit(); err != nil {
		txn.Discard()
		return errors.WithStack(err)
	}
	return nil
}

func prefixRange(prefix []byte) *util.Range {
	if len(prefix) == 0 {
		return nil
	}
	return &util.Range{Start: prefix, Limit: backend.PrefixEnd(prefix)}
}

type storeBackendLevelDBSnapshot struct {
	snap *leveldb.Snapshot
}

func (r *storeBackendLevelDBSnapshot) Get(key []byte) ([]byte, error) {
	value, err := r.snap.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, backend.ErrNotExistKey
	}
	return value, err
}

func (r *storeBackendLevelDBSnapshot) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	it := r.snap.NewIterator(prefixRange(prefix), nil)
	defer it.Release()
	for it.Next() {
		if err := fn(it.Key(), it.Value()); err != nil {
			return err
		}
	}
	return it.Error()
}

type storeBackendLevelDBTx struct {
	txn *leveldb.Transaction
}

func (r *storeBackendLevelDBTx) Get(key []byte) ([]byte, error) {
	value, err := r.txn.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, backend.ErrNotExistKey
	}
	return value, err
}

func (r *storeBackendLevelDBTx) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	it := r.txn.NewIterator(prefixRange(prefix), nil)
	defer it.Release()
	for it.Next() {
		if err := fn(it.Key(), it.Value()); err != nil {
			return err
		}
	}
	return it.Error()
}

func (r *storeBackendLevelDBTx) Set(key []byte, value []byte) error {
	return r.txn.Put(key, value, nil)
}

func (r *storeBackendLevelDBTx) Delete(key []byte) error {
	return r.txn.Delete(key, nil)
}
