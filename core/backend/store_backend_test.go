package backend_test

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hogfinance/hogpool/core/backend"
	_ "github.com/hogfinance/hogpool/core/backend/badger_driver"
	_ "github.com/hogfinance/hogpool/core/backend/bolt_driver"
	_ "github.com/hogfinance/hogpool/core/backend/buntdb_driver"
	_ "github.com/hogfinance/hogpool/core/backend/leveldb_driver"
)

func TestPrefixEnd(t *testing.T) {
	assert.Equal(t, []byte{0x01, 0x03}, backend.PrefixEnd([]byte{0x01, 0x02}))
	assert.Equal(t, []byte{0x02}, backend.PrefixEnd([]byte{0x01, 0xFF}))
	assert.Nil(t, backend.PrefixEnd([]byte{0xFF, 0xFF}))
}

func TestDrivers(t *testing.T) {
	assert.Equal(t, []string{"badger", "bolt", "buntdb", "leveldb"}, backend.Drivers())

	_, err := backend.Create("nope", t.TempDir())
	assert.Equal(t, backend.ErrNotExistDriver, errors.Cause(err))
}

func TestStoreRoundTrip(t *testing.T) {
	for _, name := range backend.Drivers() {
		name := name
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state")
			st, err := backend.Create(name, path)
			require.NoError(t, err)
			defer st.Close()

			require.NoError(t, st.Update(func(txn backend.StoreWriter) error {
				for _, k := range []string{"p/1", "p/2", "q/1"} {
					if err := txn.Set([]byte(k), []byte("v"+k)); err != nil {
						return err
					}
				}
				return txn.Delete([]byte("p/2"))
			}))

			require.NoError(t, st.View(func(txn backend.StoreReader) error {
				v, err := txn.Get([]byte("p/1"))
				require.NoError(t, err)
				assert.Equal(t, "vp/1", string(v))

				_, err = txn.Get([]byte("p/2"))
				assert.Equal(t, backend.ErrNotExistKey, err)

				var keys []string
				require.NoError(t, txn.Iterate([]byte("p/"), func(key []byte, value []byte) error {
					keys = append(keys, string(key))
					return nil
				}))
				assert.Equal(t, []string{"p/1"}, keys)
				return nil
			}))
		})
	}
}
