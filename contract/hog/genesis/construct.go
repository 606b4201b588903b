package genesis

import (
	"io"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/bin"
)

type GenesisPoolConfig struct {
	Token         common.Address
	AllocPoint    uint64
	DepositFeeBP  uint16
	WithdrawFeeBP uint16
}

// GenesisContractConstruction is the deploy argument of a GenesisContract.
// A zero Duration means DefaultDuration and a zero RecoverGracePeriod means DefaultRecoverGracePeriod.
type GenesisContractConstruction struct {
	RewardToken        common.Address
	FeeRecipient       common.Address
	StartTime          uint64
	Duration           uint64
	TotalRewards       *amount.Amount
	RejectBeforeStart  bool
	RecoverGracePeriod uint64
	Pools              []GenesisPoolConfig
}

func (s *GenesisContractConstruction) WriteTo(w io.Writer) (int64, error) {
	sw := bin.NewSumWriter()
	if sum, err := sw.Address(w, s.RewardToken); err != nil {
		return sum, err
	}
	if sum, err := sw.Address(w, s.FeeRecipient); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.StartTime); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.Duration); err != nil {
		return sum, err
	}
	if sum, err := sw.Amount(w, s.TotalRewards); err != nil {
		return sum, err
	}
	if sum, err := sw.Bool(w, s.RejectBeforeStart); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, s.RecoverGracePeriod); err != nil {
		return sum, err
	}
	if sum, err := sw.Uint64(w, uint64(len(s.Pools))); err != nil {
		return sum, err
	}
	for _, p := range s.Pools {
		if sum, err := sw.Address(w, p.Token); err != nil {
			return sum, err
		}
		if sum, err := sw.Uint64(w, p.AllocPoint); err != nil {
			return sum, err
		}
		if sum, err := sw.Uint16(w, p.DepositFeeBP); err != nil {
			return sum, err
		}
		if sum, err := sw.Uint16(w, p.WithdrawFeeBP); err != nil {
			return sum, err
		}
	}
	return sw.Sum(), nil
}

func (s *GenesisContractConstruction) ReadFrom(r io.Reader) (int64, error) {
	sr := bin.NewSumReader()
	if sum, err := sr.Address(r, &s.RewardToken); err != nil {
		return sum, err
	}
	if sum, err := sr.Address(r, &s.FeeRecipient); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.StartTime); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.Duration); err != nil {
		return sum, err
	}
	if sum, err := sr.Amount(r, &s.TotalRewards); err != nil {
		return sum, err
	}
	if sum, err := sr.Bool(r, &s.RejectBeforeStart); err != nil {
		return sum, err
	}
	if sum, err := sr.Uint64(r, &s.RecoverGracePeriod); err != nil {
		return sum, err
	}
	var Len uint64
	if sum, err := sr.Uint64(r, &Len); err != nil {
		return sum, err
	}
	s.Pools = make([]GenesisPoolConfig, Len)
	for i := range s.Pools {
		p := &s.Pools[i]
		if sum, err := sr.Address(r, &p.Token); err != nil {
			return sum, err
		}
		if sum, err := sr.Uint64(r, &p.AllocPoint); err != nil {
			return sum, err
		}
		if sum, err := sr.Uint16(r, &p.DepositFeeBP); err != nil {
			return sum, err
		}
		if sum, err := sr.Uint16(r, &p.WithdrawFeeBP); err != nil {
			return sum, err
		}
	}
	return sr.Sum(), nil
}
