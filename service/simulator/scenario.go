package simulator

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/contract/hog/genesis"
	"github.com/hogfinance/hogpool/contract/hog/ghog"
)

// pool contract names used by steps
const (
	GenesisPool = "genesis"
	GHogPool    = "ghog"
)

// step actions
const (
	ActionDeposit           = "deposit"
	ActionWithdraw          = "withdraw"
	ActionHarvest           = "harvest"
	ActionEmergencyWithdraw = "emergencyWithdraw"
	ActionMassUpdate        = "massUpdate"
	ActionUpdatePool        = "updatePool"
	ActionSetSharePerSecond = "setSharePerSecond"
	ActionSet               = "set"
	ActionSetGauge          = "setGauge"
	ActionPause             = "pause"
	ActionUnpause           = "unpause"
)

var ghogOnlyActions = map[string]bool{
	ActionSetSharePerSecond: true,
	ActionSet:               true,
	ActionSetGauge:          true,
}

// Scenario describes a run: the pools to deploy, the users and their balances,
// and the calls to make. Offsets are seconds after Start.
type Scenario struct {
	Name    string       `yaml:"name"`
	Start   uint64       `yaml:"start"`
	End     uint64       `yaml:"end"`
	Genesis *GenesisSpec `yaml:"genesis"`
	GHog    *GHogSpec    `yaml:"ghog"`
	Users   []UserSpec   `yaml:"users"`
	Steps   []Step       `yaml:"steps"`
}

type PoolSpec struct {
	Token         string `yaml:"token"`
	AllocPoint    uint64 `yaml:"allocPoint"`
	DepositFeeBP  uint16 `yaml:"depositFeeBP"`
	WithdrawFeeBP uint16 `yaml:"withdrawFeeBP"`
}

// GenesisSpec configures the genesis pool. Without Pools the launch allocation is used
// with one token per allocation name.
type GenesisSpec struct {
	StartOffset       uint64         `yaml:"startOffset"`
	Duration          uint64         `yaml:"duration"`
	TotalRewards      *amount.Amount `yaml:"totalRewards"`
	Funding           *amount.Amount `yaml:"funding"`
	RejectBeforeStart bool           `yaml:"rejectBeforeStart"`
	Pools             []PoolSpec     `yaml:"pools"`
}

// GHogSpec configures the perpetual pool. SharePerDay is an alternative to SharePerSecond.
type GHogSpec struct {
	StartOffset     uint64         `yaml:"startOffset"`
	SharePerSecond  *amount.Amount `yaml:"sharePerSecond"`
	SharePerDay     *amount.Amount `yaml:"sharePerDay"`
	Funding         *amount.Amount `yaml:"funding"`
	HogSAllocPoint  uint64         `yaml:"hogSAllocPoint"`
	GhogSAllocPoint uint64         `yaml:"ghogSAllocPoint"`
	DepositFeeBP    uint16         `yaml:"depositFeeBP"`
	WithdrawFeeBP   uint16         `yaml:"withdrawFeeBP"`
}

type UserSpec struct {
	Name     string                    `yaml:"name"`
	Balances map[string]*amount.Amount `yaml:"balances"`
}

// Step is one call. User is the caller, governance steps default to the operator.
// A step with ExpectError must fail with an error containing that text.
type Step struct {
	At          uint64         `yaml:"at"`
	Pool        string         `yaml:"pool"`
	Action      string         `yaml:"action"`
	User        string         `yaml:"user"`
	Pid         uint64         `yaml:"pid"`
	Amount      *amount.Amount `yaml:"amount"`
	AllocPoint  uint64         `yaml:"allocPoint"`
	Rate        *amount.Amount `yaml:"rate"`
	Gauge       string         `yaml:"gauge"`
	ExpectError string         `yaml:"expectError"`
}

// LoadScenarioFile reads a yaml scenario
func LoadScenarioFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return LoadScenario(f)
}

func LoadScenario(r io.Reader) (*Scenario, error) {
	bs, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	sc := &Scenario{}
	if err := yaml.UnmarshalStrict(bs, sc); err != nil {
		return nil, errors.Wrap(err, "scenario")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks the scenario before anything is deployed
func (sc *Scenario) Validate() error {
	if len(sc.Name) == 0 {
		return errors.Wrap(ErrInvalidScenario, "name is empty")
	}
	if sc.Start == 0 {
		return errors.Wrap(ErrInvalidScenario, "start is zero")
	}
	if sc.Genesis == nil && sc.GHog == nil {
		return errors.Wrap(ErrInvalidScenario, "no pool configured")
	}
	if sc.Genesis != nil {
		for i, p := range sc.Genesis.Pools {
			if len(p.Token) == 0 {
				return errors.Wrapf(ErrInvalidScenario, "genesis pool %v has no token", i)
			}
		}
	}
	if sc.GHog != nil && sc.GHog.SharePerSecond == nil && sc.GHog.SharePerDay == nil {
		return errors.Wrap(ErrInvalidScenario, "ghog has no emission rate")
	}
	users := map[string]bool{}
	for _, u := range sc.Users {
		if len(u.Name) == 0 || users[u.Name] {
			return errors.Wrapf(ErrInvalidScenario, "user name %q", u.Name)
		}
		users[u.Name] = true
	}
	var last uint64
	for i, st := range sc.Steps {
		if st.At < last {
			return errors.Wrapf(ErrStepOrder, "step %v at %v", i, st.At)
		}
		last = st.At
		switch st.Pool {
		case GenesisPool:
			if sc.Genesis == nil {
				return errors.Wrapf(ErrUnknownPool, "step %v: %v", i, st.Pool)
			}
			if ghogOnlyActions[st.Action] {
				return errors.Wrapf(ErrUnknownAction, "step %v: %v on %v", i, st.Action, st.Pool)
			}
		case GHogPool:
			if sc.GHog == nil {
				return errors.Wrapf(ErrUnknownPool, "step %v: %v", i, st.Pool)
			}
		default:
			return errors.Wrapf(ErrUnknownPool, "step %v: %q", i, st.Pool)
		}
		switch st.Action {
		case ActionDeposit, ActionWithdraw:
			if st.Amount == nil {
				return errors.Wrapf(ErrInvalidScenario, "step %v: %v needs an amount", i, st.Action)
			}
		case ActionSetSharePerSecond:
			if st.Rate == nil {
				return errors.Wrapf(ErrInvalidScenario, "step %v: %v needs a rate", i, st.Action)
			}
		case ActionHarvest, ActionEmergencyWithdraw, ActionMassUpdate, ActionUpdatePool, ActionSet, ActionSetGauge, ActionPause, ActionUnpause:
		default:
			return errors.Wrapf(ErrUnknownAction, "step %v: %q", i, st.Action)
		}
		if len(st.User) > 0 && !users[st.User] {
			return errors.Wrapf(ErrUnknownUser, "step %v: %q", i, st.User)
		}
		if len(st.User) == 0 && isUserAction(st.Action) {
			return errors.Wrapf(ErrUnknownUser, "step %v: %v needs a user", i, st.Action)
		}
	}
	return nil
}

func isUserAction(action string) bool {
	switch action {
	case ActionDeposit, ActionWithdraw, ActionHarvest, ActionEmergencyWithdraw:
		return true
	}
	return false
}

// genesisPools returns the configured pools or the launch allocation
func (g *GenesisSpec) genesisPools() []PoolSpec {
	if len(g.Pools) > 0 {
		return g.Pools
	}
	pools := make([]PoolSpec, 0, len(genesis.DefaultAllocation))
	for _, a := range genesis.DefaultAllocation {
		pools = append(pools, PoolSpec{
			Token:        a.Name,
			AllocPoint:   a.AllocPoint,
			DepositFeeBP: genesis.DefaultDepositFeeBP,
		})
	}
	return pools
}

func (g *GenesisSpec) totalRewards() *amount.Amount {
	if g.TotalRewards == nil {
		return genesis.DefaultTotalRewards.Clone()
	}
	return g.TotalRewards.Clone()
}

func (g *GenesisSpec) funding() *amount.Amount {
	if g.Funding == nil {
		return g.totalRewards()
	}
	return g.Funding.Clone()
}

func (g *GHogSpec) sharePerSecond() *amount.Amount {
	if g.SharePerSecond != nil {
		return g.SharePerSecond.Clone()
	}
	return g.SharePerDay.DivC(int64(genesis.Day))
}

func (g *GHogSpec) funding() *amount.Amount {
	if g.Funding == nil {
		return amount.ZeroCoin()
	}
	return g.Funding.Clone()
}

func (g *GHogSpec) allocPoints() (uint64, uint64) {
	hogS, ghogS := g.HogSAllocPoint, g.GhogSAllocPoint
	if hogS == 0 {
		hogS = ghog.DefaultHogSAllocPoint
	}
	if ghogS == 0 {
		ghogS = ghog.DefaultGhogSAllocPoint
	}
	return hogS, ghogS
}
