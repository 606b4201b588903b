package buntdb_driver

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/tidwall/buntdb"

	"github.com/hogfinance/hogpool/common/rlog"
	"github.com/hogfinance/hogpool/core/backend"
)

var log = rlog.New("buntdb")

// MemoryPath opens a buntdb instance that lives only in memory
const MemoryPath = ":memory:"

func init() {
	backend.RegisterDriver("buntdb", NewStoreBackendBuntDB)
}

type StoreBackendBuntDB struct {
	sync.Mutex
	db *buntdb.DB
}

func NewStoreBackendBuntDB(path string) (backend.StoreBackend, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &StoreBackendBuntDB{db: db}, nil
}

func (st *StoreBackendBuntDB) Shrink() {
	st.Lock()
	defer st.Unlock()

	if err := st.db.Shrink(); err != nil && err != buntdb.ErrPersistenceActive {
		log.Warn("Shrink failed", "err", err)
	}
}

func (st *StoreBackendBuntDB) Close() {
	st.Lock()
	defer st.Unlock()

	st.db.Close()
}

func (st *StoreBackendBuntDB) View(fn func(txn backend.StoreReader) error) error {
	return st.db.View(func(txn *buntdb.Tx) error {
		return fn(&storeBackendBuntDBTx{txn: txn})
	})
}

func (st *StoreBackendBuntDB) Update(fn func(txn backend.StoreWriter) error) error {
	return st.db.Update(func(txn *buntdb.Tx) error {
		return fn(&storeBackendBuntDBTx{txn: txn})
	})
}

type storeBackendBuntDBTx struct {
	txn *buntdb.Tx
}

func (r *storeBackendBuntDBTx) Get(key []byte) ([]byte, error) {
	value, err := r.txn.Get(string(key))
	if err == buntdb.ErrNotFound {
		return nil, backend.ErrNotExistKey
	} else if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (r *storeBackendBuntDBTx) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	var inErr error
	iter := func(key string, value string) bool {
		if err := fn([]byte(key), []byte(value)); err != nil {
			inErr = err
			return false
		}
		return true
	}
	var err error
	if len(prefix) == 0 {
		err = r.txn.Ascend("", iter)
	} else if end := backend.PrefixEnd(prefix); end == nil {
		err = r.txn.AscendGreaterOrEqual("", string(prefix), iter)
	} else {
		err = r.txn.AscendRange("", string(prefix), string(end), iter)
	}
	if inErr != nil {
		return inErr
	}
	return err
}

func (r *storeBackendBuntDBTx) Set(key []byte, value []byte) error {
	_, _, err := r.txn.Set(string(key), string(value), nil)
	return err
}

func (r *storeBackendBuntDBTx) Delete(key []byte) error {
	if _, err := r.txn.Delete(string(key)); err != nil && err != buntdb.ErrNotFound {
		return err
	}
	return nil
}
