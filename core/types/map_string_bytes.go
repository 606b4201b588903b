package types

import (
	"strings"

	"github.com/petar/GoLLRB/llrb"
)

type pairStringBytesMap struct {
	key   string
	value []byte
}

func (a *pairStringBytesMap) Less(b llrb.Item) bool {
	return strings.Compare(a.key, b.(*pairStringBytesMap).key) < 0
}

// StringBytesMap is an ordered string to []byte map.
// Iteration follows key order so flushes to the store are deterministic.
type StringBytesMap struct {
	m *llrb.LLRB
}

// NewStringBytesMap returns a StringBytesMap
func NewStringBytesMap() *StringBytesMap {
	return &StringBytesMap{
		m: llrb.New(),
	}
}

// Len returns the length of the map
func (sm *StringBytesMap) Len() int {
	return sm.m.Len()
}

// Has returns data of the key is exist or not
func (sm *StringBytesMap) Has(key string) bool {
	return sm.m.Has(&pairStringBytesMap{key: key})
}

// Get returns data of the key
func (sm *StringBytesMap) Get(key string) ([]byte, bool) {
	item := sm.m.Get(&pairStringBytesMap{key: key})
	if item == nil {
		return nil, false
	}
	return item.(*pairStringBytesMap).value, true
}

// Put adds a copy of the value with the key
func (sm *StringBytesMap) Put(key string, value []byte) {
	nvalue := make([]byte, len(value))
	copy(nvalue, value)
	sm.m.ReplaceOrInsert(&pairStringBytesMap{key: key, value: nvalue})
}

// Delete removes data of the key
func (sm *StringBytesMap) Delete(key string) {
	sm.m.Delete(&pairStringBytesMap{key: key})
}

// EachAll iterates all elements in key order
func (sm *StringBytesMap) EachAll(fn func(string, []byte) bool) {
	sm.m.AscendGreaterOrEqual(&pairStringBytesMap{key: ""}, func(item llrb.Item) bool {
		p := item.(*pairStringBytesMap)
		return fn(p.key, p.value)
	})
}

// EachPrefix iterates elements that has the given prefix
func (sm *StringBytesMap) EachPrefix(prefix string, fn func(string, []byte) bool) {
	sm.m.AscendGreaterOrEqual(&pairStringBytesMap{key: prefix}, func(item llrb.Item) bool {
		p := item.(*pairStringBytesMap)
		if !strings.HasPrefix(p.key, prefix) {
			return false
		}
		return fn(p.key, p.value)
	})
}
