package bolt_driver

import (
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/core/backend"
)

func init() {
	backend.RegisterDriver("bolt", NewStoreBackendBolt)
}

var ledgerBucket = []byte("ledger")

type StoreBackendBolt struct {
	db *bolt.DB
}

func NewStoreBackendBolt(path string) (backend.StoreBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, errors.WithStack(err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := db.Update(func(txn *bolt.Tx) error {
		_, err := txn.CreateBucketIfNotExists(ledgerBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.WithStack(err)
	}
	return &StoreBackendBolt{db: db}, nil
}

func (st *StoreBackendBolt) Shrink() {
}

func (st *StoreBackendBolt) Close() {
	st.db.Close()
}

func (st *StoreBackendBolt) View(fn func(txn backend.StoreReader) error) error {
	return st.db.View(func(txn *bolt.Tx) error {
		return fn(&storeBackendBoltTx{bucket: txn.Bucket(ledgerBucket)})
	})
}

func (st *StoreBackendBolt) Update(fn func(txn backend.StoreWriter) error) error {
	return st.db.Update(func(txn *bolt.Tx) error {
		return fn(&storeBackendBoltTx{bucket: txn.Bucket(ledgerBucket)})
	})
}

type storeBackendBoltTx struct {
	bucket *bolt.Bucket
}

func (r *storeBackendBoltTx) Get(key []byte) ([]byte, error) {
	value := r.bucket.Get(key)
	if value == nil {
		return nil, backend.ErrNotExistKey
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

func (r *storeBackendBoltTx) Iterate(prefix []byte, fn func(key []byte, value []byte) error) error {
	c := r.bucket.Cursor()
	var key, value []byte
	if len(prefix) > 0 {
		key, value = c.Seek(prefix)
	} else {
		key, value = c.First()
	}
	for ; key != nil && backend.HasPrefix(key, prefix); key, value = c.Next() {
		if err := fn(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (r *storeBackendBoltTx) Set(key []byte, value []byte) error {
	return r.bucket.Put(key, value)
}

func (r *storeBackendBoltTx) Delete(key []byte) error {
	return r.bucket.Delete(key)
}
