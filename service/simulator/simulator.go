package simulator

import (
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/common/bin"
	"github.com/hogfinance/hogpool/common/rlog"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/contract/hog/genesis"
	"github.com/hogfinance/hogpool/contract/hog/ghog"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/contract/token"
	"github.com/hogfinance/hogpool/core/types"
	"github.com/hogfinance/hogpool/service/metrics"
)

var log = rlog.New("simulator")

// token names the simulator deploys on its own
const (
	HogToken   = "HOG"
	GHogToken  = "GHOG"
	HogSToken  = "HOG-S"
	GhogSToken = "GHOG-S"
)

var (
	Operator = common.SeedAddress("sim.operator")
	DevFund  = common.SeedAddress("sim.devfund")
)

// UserAddress returns the address a scenario user acts from
func UserAddress(name string) common.Address {
	return common.SeedAddress("sim.user." + name)
}

// Options are optional sinks of a run.
// With a Store every step is applied to it and the run can be served afterwards.
type Options struct {
	Store    *types.StateStore
	Metrics  *metrics.Metrics
	OnEvents func(evs []*types.Event)
}

type userKey struct {
	pool string
	pid  uint64
	user string
}

type tally struct {
	paid      *amount.Amount
	fees      *amount.Amount
	shortfall *amount.Amount
}

func newTally() *tally {
	return &tally{
		paid:      amount.ZeroCoin(),
		fees:      amount.ZeroCoin(),
		shortfall: amount.ZeroCoin(),
	}
}

// Simulator drives the pool contracts through a scenario on a single context
type Simulator struct {
	sc        *Scenario
	opts      Options
	runID     uuid.UUID
	ctx       *types.Context
	tokens    map[string]common.Address
	pools     map[string]common.Address
	tallies   map[string]*tally
	harvested map[userKey]*amount.Amount
	steps     []*StepResult
	hasRun    bool
}

// New returns a Simulator of the validated scenario
func New(sc *Scenario, opts Options) (*Simulator, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		sc:        sc,
		opts:      opts,
		runID:     uuid.New(),
		tokens:    map[string]common.Address{},
		pools:     map[string]common.Address{},
		tallies:   map[string]*tally{},
		harvested: map[userKey]*amount.Amount{},
	}
	return s, nil
}

func (s *Simulator) RunID() string {
	return s.runID.String()
}

// Context returns the context of the last step, nil before Run
func (s *Simulator) Context() *types.Context {
	return s.ctx
}

// Pool returns the address of the deployed pool contract
func (s *Simulator) Pool(name string) (common.Address, bool) {
	addr, has := s.pools[name]
	return addr, has
}

// Token returns the address of the deployed token
func (s *Simulator) Token(name string) (common.Address, bool) {
	addr, has := s.tokens[name]
	return addr, has
}

// Run deploys the scenario, plays every step and returns the report at the end time
func (s *Simulator) Run() (*Report, error) {
	if s.hasRun {
		return nil, errors.WithStack(ErrAlreadyRun)
	}
	s.hasRun = true

	if st := s.opts.Store; st != nil {
		if st.TargetHeight() != 0 {
			return nil, errors.Wrapf(ErrStoreInUse, "height %v", st.TargetHeight())
		}
		s.ctx = types.NewContext(st)
	} else {
		s.ctx = types.NewEmptyContext()
	}
	log.Info("Run", "scenario", s.sc.Name, "run", s.runID, "steps", len(s.sc.Steps))

	if err := s.advance(s.sc.Start); err != nil {
		return nil, err
	}
	if err := s.setup(); err != nil {
		return nil, err
	}
	for i, st := range s.sc.Steps {
		if err := s.runStep(i, st); err != nil {
			return nil, err
		}
	}
	end := s.sc.Start + s.sc.End
	if end > s.ctx.LastTimestamp() {
		if err := s.advance(end); err != nil {
			return nil, err
		}
		if err := s.commit(); err != nil {
			return nil, err
		}
	}
	rp, err := s.report()
	if err != nil {
		return nil, err
	}
	log.Info("Run done", "scenario", s.sc.Name, "run", s.runID, "end", rp.End)
	return rp, nil
}

func (s *Simulator) advance(ts uint64) error {
	if ts < s.sc.Start {
		return errors.Wrapf(ErrInvalidScenario, "timestamp %v overflows", ts)
	}
	ctx, err := s.ctx.NextContext(ts)
	if err != nil {
		return err
	}
	s.ctx = ctx
	return nil
}

func (s *Simulator) commit() error {
	if s.opts.Store == nil {
		return nil
	}
	return s.opts.Store.Apply(s.ctx)
}

func (s *Simulator) deploy(cont types.Contract, args io.WriterTo) (common.Address, error) {
	classID, err := types.RegisterContractType(cont)
	if err != nil {
		return common.ZeroAddr, err
	}
	bs, _, err := bin.WriterToBytes(args)
	if err != nil {
		return common.ZeroAddr, err
	}
	types.ExecLock.Lock()
	defer types.ExecLock.Unlock()

	c, err := s.ctx.DeployContract(Operator, classID, bs)
	if err != nil {
		return common.ZeroAddr, err
	}
	return c.Address(), nil
}

// setup deploys the tokens and pools, funds the reward reserves and the users,
// and approves every pool for the whole user balance
func (s *Simulator) setup() error {
	supply := map[string]*amount.Amount{}
	need := func(name string, amt *amount.Amount) {
		if _, has := supply[name]; !has {
			supply[name] = amount.ZeroCoin()
		}
		if amt != nil {
			supply[name] = supply[name].Add(amt)
		}
	}
	if g := s.sc.Genesis; g != nil {
		need(HogToken, g.funding())
		for _, p := range g.genesisPools() {
			need(p.Token, nil)
		}
	}
	if g := s.sc.GHog; g != nil {
		need(GHogToken, g.funding())
		need(HogSToken, nil)
		need(GhogSToken, nil)
	}
	for _, u := range s.sc.Users {
		for name, amt := range u.Balances {
			if _, has := supply[name]; !has {
				return errors.Wrapf(ErrInvalidScenario, "user %v holds unknown token %v", u.Name, name)
			}
			need(name, amt)
		}
	}

	for _, name := range sortedKeys(supply) {
		initial := map[common.Address]*amount.Amount{}
		if supply[name].IsPlus() {
			initial[Operator] = supply[name]
		}
		addr, err := s.deploy(&token.TokenContract{}, &token.TokenContractConstruction{
			Name:             name,
			Symbol:           name,
			InitialSupplyMap: initial,
		})
		if err != nil {
			return errors.Wrapf(err, "token %v", name)
		}
		s.tokens[name] = addr
	}

	if g := s.sc.Genesis; g != nil {
		specs := g.genesisPools()
		pools := make([]genesis.GenesisPoolConfig, 0, len(specs))
		for _, p := range specs {
			pools = append(pools, genesis.GenesisPoolConfig{
				Token:         s.tokens[p.Token],
				AllocPoint:    p.AllocPoint,
				DepositFeeBP:  p.DepositFeeBP,
				WithdrawFeeBP: p.WithdrawFeeBP,
			})
		}
		addr, err := s.deploy(&genesis.GenesisContract{}, &genesis.GenesisContractConstruction{
			RewardToken:       s.tokens[HogToken],
			FeeRecipient:      DevFund,
			StartTime:         s.sc.Start + g.StartOffset,
			Duration:          g.Duration,
			TotalRewards:      g.totalRewards(),
			RejectBeforeStart: g.RejectBeforeStart,
			Pools:             pools,
		})
		if err != nil {
			return errors.Wrap(err, GenesisPool)
		}
		s.pools[GenesisPool] = addr
		s.tallies[GenesisPool] = newTally()
		if err := s.transfer(HogToken, Operator, addr, g.funding()); err != nil {
			return err
		}
	}
	if g := s.sc.GHog; g != nil {
		hogS, ghogS := g.allocPoints()
		addr, err := s.deploy(&ghog.GHogContract{}, &ghog.GHogContractConstruction{
			RewardToken:     s.tokens[GHogToken],
			HogS:            s.tokens[HogSToken],
			GhogS:           s.tokens[GhogSToken],
			DevFund:         DevFund,
			StartTime:       s.sc.Start + g.StartOffset,
			SharePerSecond:  g.sharePerSecond(),
			HogSAllocPoint:  hogS,
			GhogSAllocPoint: ghogS,
			DepositFeeBP:    g.DepositFeeBP,
			WithdrawFeeBP:   g.WithdrawFeeBP,
		})
		if err != nil {
			return errors.Wrap(err, GHogPool)
		}
		s.pools[GHogPool] = addr
		s.tallies[GHogPool] = newTally()
		if err := s.transfer(GHogToken, Operator, addr, g.funding()); err != nil {
			return err
		}
	}

	for _, u := range s.sc.Users {
		user := UserAddress(u.Name)
		for _, name := range sortedKeys(u.Balances) {
			amt := u.Balances[name]
			if amt == nil || !amt.IsPlus() {
				continue
			}
			if err := s.transfer(name, Operator, user, amt); err != nil {
				return err
			}
			for _, pool := range sortedKeys(s.pools) {
				if _, err := types.ExecContract(s.ctx, user, s.tokens[name], "Approve", []interface{}{s.pools[pool], amt}); err != nil {
					return errors.Wrapf(err, "approve %v for %v", name, u.Name)
				}
			}
		}
	}
	return s.commit()
}

func (s *Simulator) transfer(name string, from common.Address, to common.Address, amt *amount.Amount) error {
	if amt == nil || !amt.IsPlus() {
		return nil
	}
	if _, err := types.ExecContract(s.ctx, from, s.tokens[name], "Transfer", []interface{}{to, amt}); err != nil {
		return errors.Wrapf(err, "transfer %v %v", amt.String(), name)
	}
	return nil
}

func (s *Simulator) runStep(i int, st Step) error {
	if err := s.advance(s.sc.Start + st.At); err != nil {
		return err
	}
	caller := Operator
	if len(st.User) > 0 {
		caller = UserAddress(st.User)
	}
	sr := &StepResult{
		Index:     i,
		Timestamp: s.ctx.LastTimestamp(),
		Pool:      st.Pool,
		Action:    st.Action,
		User:      st.User,
		Pid:       st.Pid,
	}

	before := len(s.ctx.Events())
	res, err := s.call(caller, st)
	if err != nil {
		if len(st.ExpectError) == 0 || !strings.Contains(err.Error(), st.ExpectError) {
			return errors.Wrapf(err, "step %v %v", i, st.Action)
		}
		sr.Error = err.Error()
	} else {
		if len(st.ExpectError) > 0 {
			return errors.Wrapf(ErrExpectedError, "step %v %v: %v", i, st.Action, st.ExpectError)
		}
		if len(res) > 0 {
			sr.Result = res[0]
			s.record(st, res[0])
		}
	}
	log.Debug("Step", "index", i, "action", st.Action, "pool", st.Pool, "user", st.User, "err", sr.Error)
	s.steps = append(s.steps, sr)

	evs := s.ctx.Events()
	if len(evs) > before {
		s.publish(evs[before:])
	}
	return s.commit()
}

func (s *Simulator) call(caller common.Address, st Step) ([]interface{}, error) {
	pool := s.pools[st.Pool]
	switch st.Action {
	case ActionDeposit:
		return types.ExecContract(s.ctx, caller, pool, "Deposit", []interface{}{st.Pid, st.Amount})
	case ActionHarvest:
		return types.ExecContract(s.ctx, caller, pool, "Deposit", []interface{}{st.Pid, amount.ZeroCoin()})
	case ActionWithdraw:
		return types.ExecContract(s.ctx, caller, pool, "Withdraw", []interface{}{st.Pid, st.Amount})
	case ActionEmergencyWithdraw:
		return types.ExecContract(s.ctx, caller, pool, "EmergencyWithdraw", []interface{}{st.Pid})
	case ActionMassUpdate:
		return types.ExecContract(s.ctx, caller, pool, "MassUpdatePools", nil)
	case ActionUpdatePool:
		return types.ExecContract(s.ctx, caller, pool, "UpdatePool", []interface{}{st.Pid})
	case ActionSetSharePerSecond:
		return types.ExecContract(s.ctx, caller, pool, "SetSharePerSecond", []interface{}{st.Rate})
	case ActionSet:
		pi, err := s.poolInfo(st.Pool, st.Pid)
		if err != nil {
			return nil, err
		}
		return types.ExecContract(s.ctx, caller, pool, "Set", []interface{}{st.Pid, st.AllocPoint, pi.DepositFeeBP, pi.WithdrawFeeBP, pi.Gauge})
	case ActionSetGauge:
		return types.ExecContract(s.ctx, caller, pool, "SetGauge", []interface{}{st.Pid, gaugeAddress(st.Gauge)})
	case ActionPause:
		return types.ExecContract(s.ctx, caller, pool, "Pause", nil)
	case ActionUnpause:
		return types.ExecContract(s.ctx, caller, pool, "Unpause", nil)
	}
	return nil, errors.Wrapf(ErrUnknownAction, "%v", st.Action)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func gaugeAddress(v string) common.Address {
	if len(v) == 0 {
		return common.ZeroAddr
	}
	if addr, err := common.ParseAddress(v); err == nil {
		return addr
	}
	return common.SeedAddress(v)
}

// record adds the reward and fee flows of a result to the run totals
func (s *Simulator) record(st Step, res interface{}) {
	t := s.tallies[st.Pool]
	var harvested, fee, shortfall *amount.Amount
	switch r := res.(type) {
	case *stakepool.DepositResult:
		harvested, fee, shortfall = r.Harvested, r.Fee, r.Shortfall
	case *stakepool.WithdrawResult:
		harvested, fee, shortfall = r.Harvested, r.Fee, r.Shortfall
	default:
		return
	}
	t.paid = t.paid.Add(harvested)
	t.fees = t.fees.Add(fee)
	t.shortfall = t.shortfall.Add(shortfall)

	key := userKey{pool: st.Pool, pid: st.Pid, user: st.User}
	if v, has := s.harvested[key]; has {
		s.harvested[key] = v.Add(harvested)
	} else {
		s.harvested[key] = harvested.Clone()
	}
}

func (s *Simulator) publish(evs []*types.Event) {
	if s.opts.Metrics != nil {
		for _, ev := range evs {
			s.opts.Metrics.Observe(ev)
		}
	}
	if s.opts.OnEvents != nil {
		s.opts.OnEvents(evs)
	}
}

func (s *Simulator) view(name string, method string, args ...interface{}) ([]interface{}, error) {
	addr, has := s.pools[name]
	if !has {
		return nil, errors.Wrapf(ErrUnknownPool, "%v", name)
	}
	return types.ViewContract(s.ctx, addr, method, args)
}

func (s *Simulator) poolInfo(name string, pid uint64) (*accrual.PoolInfo, error) {
	res, err := s.view(name, "PoolInfo", pid)
	if err != nil {
		return nil, err
	}
	return res[0].(*accrual.PoolInfo), nil
}

func (s *Simulator) balanceOf(tokenAddr common.Address, holder common.Address) (*amount.Amount, error) {
	res, err := types.ViewContract(s.ctx, tokenAddr, "BalanceOf", []interface{}{holder})
	if err != nil {
		return nil, err
	}
	return res[0].(*amount.Amount), nil
}
