package backend

import (
	"bytes"
	"sort"
	"sync"
	"time"

	"github.com/hogfinance/hogpool/common/rlog"
	"github.com/pkg/errors"
)

var log = rlog.New("backend")

// StoreBackend is a transactional key/value store that keeps committed ledger state
type StoreBackend interface {
	Shrink()
	Close()
	View(fn func(txn StoreReader) error) error
	Update(fn func(txn StoreWriter) error) error
}

type StoreReader interface {
	Get(key []byte) ([]byte, error)
	Iterate(prefix []byte, fn func(key []byte, value []byte) error) error
}

type StoreWriter interface {
	StoreReader
	Set(key []byte, value []byte) error
	Delete(key []byte) error
}

type CreateBackend func(Path string) (StoreBackend, error)

var (
	driverLock sync.RWMutex
	gDriverMap = map[string]CreateBackend{}
)

func RegisterDriver(Name string, fn CreateBackend) {
	driverLock.Lock()
	defer driverLock.Unlock()
	gDriverMap[Name] = fn
}

// Drivers returns the names of the registered drivers in sorted order
func Drivers() []string {
	driverLock.RLock()
	defer driverLock.RUnlock()
	names := make([]string, 0, len(gDriverMap))
	for k := range gDriverMap {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func Create(Name string, Path string) (StoreBackend, error) {
	driverLock.RLock()
	fn, has := gDriverMap[Name]
	driverLock.RUnlock()
	if !has {
		return nil, errors.Wrapf(ErrNotExistDriver, "driver %q", Name)
	}
	start := time.Now()
	st, err := fn(Path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s at %s", Name, Path)
	}
	log.Debug("Store opened", "driver", Name, "path", Path, "elapsed", time.Since(start))
	return st, nil
}

// PrefixEnd returns the smallest key greater than every key that starts with prefix.
// It returns nil when no such key exists.
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

// HasPrefix reports whether key is inside the prefix range
func HasPrefix(key []byte, prefix []byte) bool {
	return bytes.HasPrefix(key, prefix)
}
