package types

import (
	"reflect"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common/bin"
)

var (
	contractTypeLock sync.RWMutex
	gContractTypeMap = map[uint64]reflect.Type{}
	gContractNameMap = map[uint64]string{}
)

// RegisterContractType assigns a stable class id to the contract type.
// Registering the same type twice returns the same id.
func RegisterContractType(cont Contract) (uint64, error) {
	rt := reflect.TypeOf(cont)
	for rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	name := rt.Name()
	if pkgPath := rt.PkgPath(); len(pkgPath) > 0 {
		name = pkgPath + "." + name
	}
	h := crypto.Keccak256([]byte(name))
	ClassID := bin.Uint64(h[len(h)-8:])

	contractTypeLock.Lock()
	defer contractTypeLock.Unlock()

	if v, has := gContractNameMap[ClassID]; has {
		if name != v {
			return 0, errors.WithStack(ErrExistContractType)
		}
		return ClassID, nil
	}
	gContractNameMap[ClassID] = name
	gContractTypeMap[ClassID] = rt
	return ClassID, nil
}

// MustRegisterContractType panics when the class id collides
func MustRegisterContractType(cont Contract) uint64 {
	ClassID, err := RegisterContractType(cont)
	if err != nil {
		panic(err)
	}
	return ClassID
}

func CreateContract(cd *ContractDefine) (Contract, error) {
	contractTypeLock.RLock()
	rt, has := gContractTypeMap[cd.ClassID]
	contractTypeLock.RUnlock()
	if !has {
		return nil, errors.WithStack(ErrInvalidClassID)
	}
	cont := reflect.New(rt).Interface().(Contract)
	cont.Init(cd.Address, cd.Owner)
	return cont, nil
}

func IsValidClassID(ClassID uint64) bool {
	contractTypeLock.RLock()
	defer contractTypeLock.RUnlock()
	_, has := gContractTypeMap[ClassID]
	return has
}

func ContractName(ClassID uint64) string {
	contractTypeLock.RLock()
	defer contractTypeLock.RUnlock()
	return gContractNameMap[ClassID]
}
