package util

import (
	"fmt"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/contract/hog/genesis"
	"github.com/hogfinance/hogpool/contract/hog/ghog"
	"github.com/hogfinance/hogpool/contract/token"
	"github.com/hogfinance/hogpool/core/types"
)

// StartTimestamp is the clock of a fresh TestContext
const StartTimestamp = uint64(1735689600)

var (
	Admin   = common.SeedAddress("admin")
	DevFund = common.SeedAddress("devfund")
	DaoFund = common.SeedAddress("daofund")
	Users   []common.Address
)

var ClassMap map[string]uint64

func init() {
	ClassMap = map[string]uint64{}
	RegisterContractClass(&token.TokenContract{}, "Token")
	RegisterContractClass(&genesis.GenesisContract{}, "Genesis")
	RegisterContractClass(&ghog.GHogContract{}, "GHog")

	Users = []common.Address{}
	for i := 0; i < 10; i++ {
		Users = append(Users, common.SeedAddress(fmt.Sprintf("user%v", i)))
	}
}

func RegisterContractClass(cont types.Contract, className string) uint64 {
	ClassID, err := types.RegisterContractType(cont)
	if err != nil {
		panic(err)
	}
	ClassMap[className] = ClassID
	return ClassID
}
