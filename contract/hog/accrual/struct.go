package accrual

import (
	"io"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/bin"
)

// PoolInfo is the accrual state of one staking pool
type PoolInfo struct {
	Token             common.Address `json:"token"`
	AllocPoint        uint64         `json:"allocPoint"`
	DepositFeeBP      uint16         `json:"depositFeeBP"`
	WithdrawFeeBP     uint16         `json:"withdrawFeeBP"`
	LastRewardTime    uint64         `json:"lastRewardTime"`
	AccRewardPerShare *amount.Amount `json:"accRewardPerShare"`
	TotalStaked       *amount.Amount `json:"totalStaked"`
	RewardPerSecond   *amount.Amount `json:"rewardPerSecond"`
	Gauge             common.Address `json:"gauge"`
}

// NewPoolInfo returns a pool with an empty accumulator
func NewPoolInfo(token common.Address, allocPoint uint64, depositFeeBP uint16, withdrawFeeBP uint16, lastRewardTime uint64) *PoolInfo {
	return &PoolInfo{
		Token:             token,
		AllocPoint:        allocPoint,
		DepositFeeBP:      depositFeeBP,
		WithdrawFeeBP:     withdrawFeeBP,
		LastRewardTime:    lastRewardTime,
		AccRewardPerShare: amount.ZeroCoin(),
		TotalStaked:       amount.ZeroCoin(),
		RewardPerSecond:   amount.ZeroCoin(),
	}
}

// Clone returns a deep copy that can be settled without touching the stored pool
func (s *PoolInfo) Clone() *PoolInfo {
	c := *s
	c.AccRewardPerShare = s.AccRewardPerShare.Clone()
	c.TotalStaked = s.TotalStaked.Clone()
	c.RewardPerSecond = s.RewardPerSecond.Clone()
	return &c
}

func (s *PoolInfo) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.Token); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.AllocPoint); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint16(w, s.DepositFeeBP); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint16(w, s.WithdrawFeeBP); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.LastRewardTime); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.AccRewardPerShare); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.TotalStaked); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.RewardPerSecond); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.Gauge); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *PoolInfo) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.Token); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.AllocPoint); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint16(r, &s.DepositFeeBP); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint16(r, &s.WithdrawFeeBP); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.LastRewardTime); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.AccRewardPerShare); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.TotalStaked); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.RewardPerSecond); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.Gauge); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}

// UserInfo is the stake of one user in one pool.
// RewardDebt is Amount*AccRewardPerShare/PRECISION at the last settlement.
type UserInfo struct {
	Amount     *amount.Amount `json:"amount"`
	RewardDebt *amount.Amount `json:"rewardDebt"`
}

// NewUserInfo returns the zero record every user starts from
func NewUserInfo() *UserInfo {
	return &UserInfo{
		Amount:     amount.ZeroCoin(),
		RewardDebt: amount.ZeroCoin(),
	}
}

func (s *UserInfo) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Amount(w, s.Amount); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.RewardDebt); err != nil {
		return sum, err
	}
	return sw.Sum(), nil
}

func (s *UserInfo) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Amount(r, &s.Amount); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.RewardDebt); err != nil {
		return sum, err
	}
	return sr.Sum(), nil
}
