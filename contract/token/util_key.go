package token

import (
	"github.com/hogfinance/hogpool/common"
)

var (
	tagTokenName         = byte(0x01)
	tagTokenSymbol       = byte(0x02)
	tagTokenMinter       = byte(0x03)
	tagTokenTotalSupply  = byte(0x04)
	tagTokenOperator     = byte(0x05)
	tagTokenAmount       = byte(0x10)
	tagTokenApprove      = byte(0x12)
	tagPause             = byte(0x15)
	tagRewardDistributed = byte(0x20)
	tagGenesisAllocation = byte(0x21)
	tagDaoAllocation     = byte(0x22)
)

func MakeAllowanceTokenKey(spender common.Address) []byte {
	return makeTokenKey(spender, tagTokenApprove)
}

func makeTokenKey(sender common.Address, key byte) []byte {
	bs := make([]byte, 1+common.AddressLength)
	bs[0] = key
	copy(bs[1:], sender[:])
	return bs
}
