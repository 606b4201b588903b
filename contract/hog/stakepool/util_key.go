package stakepool

import (
	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/bin"
)

// tags below 0x40 belong to the stake pool, variants keep their own data at 0x40 and up
var (
	tagOperator        = byte(0x01)
	tagRewardToken     = byte(0x02)
	tagFeeRecipient    = byte(0x03)
	tagTotalAllocPoint = byte(0x04)
	tagPoolLength      = byte(0x05)
	tagPause           = byte(0x06)
	tagPoolInfo        = byte(0x10)
	tagUserInfo        = byte(0x11)
)

func makePoolKey(key byte, body []byte) []byte {
	bs := make([]byte, 1+len(body))
	bs[0] = key
	copy(bs[1:], body)
	return bs
}

func makePoolInfoKey(pid uint64) []byte {
	return makePoolKey(tagPoolInfo, bin.Uint64Bytes(pid))
}

func makeUserInfoKey(pid uint64, user common.Address) []byte {
	bs := append(bin.Uint64Bytes(pid), user[:]...)
	return makePoolKey(tagUserInfo, bs)
}
