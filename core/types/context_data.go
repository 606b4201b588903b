package types

import (
	"github.com/hogfinance/hogpool/common"
)

// ContextData is a state data layer of the context
type ContextData struct {
	cache          *contextCache
	Parent         *ContextData
	DataMap        *StringBytesMap
	DeletedDataMap *StringBytesMap
	Events         []*Event
	isTop          bool
}

// NewContextData returns a ContextData
func NewContextData(cache *contextCache, Parent *ContextData) *ContextData {
	return &ContextData{
		cache:          cache,
		Parent:         Parent,
		DataMap:        NewStringBytesMap(),
		DeletedDataMap: NewStringBytesMap(),
		isTop:          true,
	}
}

func dataKey(cont common.Address, addr common.Address, name []byte) string {
	return string(cont[:]) + string(addr[:]) + string(name)
}

// Data returns the data
func (ctd *ContextData) Data(cont common.Address, addr common.Address, name []byte) []byte {
	return ctd.data(dataKey(cont, addr, name))
}

func (ctd *ContextData) data(key string) []byte {
	if ctd.DeletedDataMap.Has(key) {
		return nil
	}
	if value, has := ctd.DataMap.Get(key); has {
		return value
	}
	var value []byte
	if ctd.Parent != nil {
		value = ctd.Parent.data(key)
	} else {
		value = ctd.cache.Data(key)
	}
	if len(value) == 0 {
		return nil
	}
	if ctd.isTop {
		nvalue := make([]byte, len(value))
		copy(nvalue, value)
		return nvalue
	}
	return value
}

// SetData inserts the data. An empty value deletes the key.
func (ctd *ContextData) SetData(cont common.Address, addr common.Address, name []byte, value []byte) {
	key := dataKey(cont, addr, name)
	if len(value) == 0 {
		ctd.DataMap.Delete(key)
		ctd.DeletedDataMap.Put(key, nil)
	} else {
		ctd.DeletedDataMap.Delete(key)
		ctd.DataMap.Put(key, value)
	}
}

// EmitEvent appends the event to this layer
func (ctd *ContextData) EmitEvent(e *Event) {
	ctd.Events = append(ctd.Events, e)
}

// eventCount returns the number of events visible from this layer
func (ctd *ContextData) eventCount() int {
	n := len(ctd.Events)
	if ctd.Parent != nil {
		n += ctd.Parent.eventCount()
	}
	return n
}
