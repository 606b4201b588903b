package test

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/contract/hog/genesis"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func hog(v uint64) *amount.Amount {
	return amount.NewAmount(v, 0)
}

// absDiff returns |a-b| in base units
func absDiff(a, b *amount.Amount) *big.Int {
	return new(big.Int).Abs(new(big.Int).Sub(a.Int, b.Int))
}

var _ = Describe("Genesis pool", func() {
	var (
		tc    *util.TestContext
		hogT  common.Address
		lps   []common.Address
		start uint64
		alice common.Address
		bob   common.Address
	)

	deploy := func(reject bool, pools []genesis.GenesisPoolConfig) common.Address {
		addr := tc.DeployContract(&genesis.GenesisContract{}, &genesis.GenesisContractConstruction{
			RewardToken:       hogT,
			FeeRecipient:      util.DevFund,
			StartTime:         start,
			TotalRewards:      genesis.DefaultTotalRewards,
			RejectBeforeStart: reject,
			Pools:             pools,
		})
		return addr
	}

	defaultPool := func() common.Address {
		pools, err := genesis.DefaultPools(lps)
		Expect(err).NotTo(HaveOccurred())
		gp := deploy(false, pools)
		tc.MustSendTx(util.Admin, hogT, "Transfer", gp, genesis.DefaultTotalRewards)
		return gp
	}

	pending := func(gp common.Address, pid uint64, user common.Address) *amount.Amount {
		return tc.MustReadTx(gp, "PendingReward", pid, user)[0].(*amount.Amount)
	}

	userInfo := func(gp common.Address, pid uint64, user common.Address) *accrual.UserInfo {
		return tc.MustReadTx(gp, "UserInfo", pid, user)[0].(*accrual.UserInfo)
	}

	BeforeEach(func() {
		tc = util.NewTestContext()
		alice = util.Users[0]
		bob = util.Users[1]
		hogT = tc.MakeToken("HOG", "HOG", "10000000")
		lps = []common.Address{}
		for _, a := range genesis.DefaultAllocation {
			lps = append(lps, tc.MakeToken(a.Name, a.Name, "1000000"))
		}
		start = tc.Now() + 3600
	})

	Describe("construction", func() {
		It("stores the default table", func() {
			gp := defaultPool()
			Expect(tc.MustReadTx(gp, "PoolLength")[0]).To(Equal(uint64(8)))
			Expect(tc.MustReadTx(gp, "TotalAllocPoint")[0]).To(Equal(uint64(100)))
			Expect(tc.MustReadTx(gp, "Operator")[0]).To(Equal(util.Admin))
			Expect(tc.MustReadTx(gp, "DevFund")[0]).To(Equal(util.DevFund))
			Expect(tc.MustReadTx(gp, "RewardToken")[0]).To(Equal(hogT))
			Expect(tc.MustReadTx(gp, "PoolStartTime")[0]).To(Equal(start))
			Expect(tc.MustReadTx(gp, "PoolEndTime")[0]).To(Equal(start + genesis.DefaultDuration))

			pool := tc.MustReadTx(gp, "PoolInfo", 0)[0].(*accrual.PoolInfo)
			Expect(pool.Token).To(Equal(lps[0]))
			Expect(pool.LastRewardTime).To(Equal(start))
			Expect(pool.DepositFeeBP).To(Equal(genesis.DefaultDepositFeeBP))
			Expect(pool.RewardPerSecond.String()).To(Equal("0.25"))

			_, err := tc.ReadTx(gp, "PoolInfo", 8)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrInvalidPoolID))
		})

		It("rejects a bad table", func() {
			_, err := tc.TryDeployContract(util.Admin, &genesis.GenesisContract{}, &genesis.GenesisContractConstruction{
				RewardToken:  hogT,
				FeeRecipient: util.DevFund,
				StartTime:    start,
				TotalRewards: genesis.DefaultTotalRewards,
				Pools: []genesis.GenesisPoolConfig{
					{Token: lps[0], AllocPoint: 1},
					{Token: lps[0], AllocPoint: 1},
				},
			})
			Expect(errors.Cause(err)).To(Equal(accrual.ErrPoolExists))

			_, err = tc.TryDeployContract(util.Admin, &genesis.GenesisContract{}, &genesis.GenesisContractConstruction{
				RewardToken:  hogT,
				FeeRecipient: util.DevFund,
				StartTime:    start,
				TotalRewards: genesis.DefaultTotalRewards,
				Pools:        []genesis.GenesisPoolConfig{{Token: lps[0], AllocPoint: 1, DepositFeeBP: 10001}},
			})
			Expect(errors.Cause(err)).To(Equal(accrual.ErrInvalidFee))

			_, err = tc.TryDeployContract(util.Admin, &genesis.GenesisContract{}, &genesis.GenesisContractConstruction{
				RewardToken:  hogT,
				StartTime:    start,
				TotalRewards: genesis.DefaultTotalRewards,
				Pools:        []genesis.GenesisPoolConfig{{Token: lps[0], AllocPoint: 1}},
			})
			Expect(errors.Cause(err)).To(Equal(accrual.ErrZeroAddress))
		})
	})

	Describe("schedule", func() {
		It("pays the daily table to a single staker per pool", func() {
			gp := defaultPool()
			for pid, lp := range lps {
				tc.Fund(lp, alice, gp, hog(100))
				tc.MustSendTx(alice, gp, "Deposit", pid, hog(100))
			}
			Expect(tc.SetTime(start + genesis.Day)).To(Succeed())

			total := amount.ZeroCoin()
			for pid, a := range genesis.DefaultAllocation {
				expected := genesis.DailyReward(genesis.DefaultTotalRewards, genesis.DefaultDuration, a.AllocPoint, 100)
				got := pending(gp, uint64(pid), alice)
				Expect(absDiff(got, expected).Cmp(big.NewInt(1000000))).To(BeNumerically("<=", 0), a.Name)
				total = total.Add(got)
			}
			Expect(absDiff(total, hog(80000)).Cmp(big.NewInt(10000000))).To(BeNumerically("<=", 0))
			Expect(genesis.DailyReward(genesis.DefaultTotalRewards, genesis.DefaultDuration, 27, 100).String()).To(Equal("21600"))
			Expect(genesis.DailyReward(genesis.DefaultTotalRewards, genesis.DefaultDuration, 5, 100).String()).To(Equal("4000"))
		})

		It("accrues nothing before start or after end", func() {
			gp := defaultPool()
			tc.Fund(lps[0], alice, gp, hog(100))
			tc.MustSendTx(alice, gp, "Deposit", 0, hog(100))

			Expect(tc.SetTime(start - 1)).To(Succeed())
			Expect(pending(gp, 0, alice).IsZero()).To(BeTrue())
			tc.MustSendTx(alice, gp, "MassUpdatePools")
			Expect(pending(gp, 0, alice).IsZero()).To(BeTrue())

			Expect(tc.SetTime(start)).To(Succeed())
			Expect(pending(gp, 0, alice).IsZero()).To(BeTrue())

			Expect(tc.SetTime(start + genesis.DefaultDuration)).To(Succeed())
			atEnd := pending(gp, 0, alice)
			Expect(absDiff(atEnd, hog(151200)).Cmp(big.NewInt(1000))).To(BeNumerically("<=", 0))

			Expect(tc.SetTime(start + genesis.DefaultDuration + genesis.Day)).To(Succeed())
			Expect(pending(gp, 0, alice).String()).To(Equal(atEnd.String()))
			tc.MustSendTx(alice, gp, "UpdatePool", 0)
			pool := tc.MustReadTx(gp, "PoolInfo", 0)[0].(*accrual.PoolInfo)
			Expect(pool.LastRewardTime).To(Equal(start + genesis.DefaultDuration))

			// deposits and withdrawals keep working after the end
			res := tc.MustSendTx(alice, gp, "Withdraw", 0, hog(99))[0].(*stakepool.WithdrawResult)
			Expect(res.Harvested.String()).To(Equal(atEnd.String()))
			Expect(tc.BalanceOf(lps[0], alice).String()).To(Equal(hog(99).String()))
		})

		It("rejects early deposits when configured", func() {
			pools, err := genesis.DefaultPools(lps)
			Expect(err).NotTo(HaveOccurred())
			gp := deploy(true, pools)
			tc.Fund(lps[0], alice, gp, hog(100))

			_, err = tc.SendTx(alice, gp, "Deposit", 0, hog(100))
			Expect(errors.Cause(err)).To(Equal(accrual.ErrPoolNotStarted))
			Expect(accrual.KindOf(err)).To(Equal(accrual.KindSchedule))
			Expect(tc.BalanceOf(lps[0], alice).String()).To(Equal(hog(100).String()))

			Expect(tc.SetTime(start)).To(Succeed())
			tc.MustSendTx(alice, gp, "Deposit", 0, hog(100))
			Expect(userInfo(gp, 0, alice).Amount.String()).To(Equal(hog(99).String()))
		})

		It("splits a pool 40/60 by stake", func() {
			gp := defaultPool()
			tc.Fund(lps[0], alice, gp, hog(40))
			tc.Fund(lps[0], bob, gp, hog(60))
			tc.MustSendTx(alice, gp, "Deposit", 0, hog(40))
			tc.MustSendTx(bob, gp, "Deposit", 0, hog(60))

			Expect(tc.SetTime(start + genesis.Day)).To(Succeed())
			a := pending(gp, 0, alice)
			b := pending(gp, 0, bob)
			Expect(absDiff(a, hog(8640)).Cmp(big.NewInt(1000))).To(BeNumerically("<=", 0))
			Expect(absDiff(b, hog(12960)).Cmp(big.NewInt(1000))).To(BeNumerically("<=", 0))
		})
	})

	Describe("fees", func() {
		It("sends deposit and withdraw fees to the dev fund", func() {
			gp := deploy(false, []genesis.GenesisPoolConfig{
				{Token: lps[0], AllocPoint: 1, DepositFeeBP: 100, WithdrawFeeBP: 50},
			})
			tc.Fund(lps[0], alice, gp, hog(100))

			res := tc.MustSendTx(alice, gp, "Deposit", 0, hog(100))[0].(*stakepool.DepositResult)
			Expect(res.Fee.String()).To(Equal(hog(1).String()))
			Expect(res.Principal.String()).To(Equal(hog(99).String()))
			Expect(tc.BalanceOf(lps[0], util.DevFund).String()).To(Equal(hog(1).String()))
			Expect(tc.BalanceOf(lps[0], gp).String()).To(Equal(hog(99).String()))

			pool := tc.MustReadTx(gp, "PoolInfo", 0)[0].(*accrual.PoolInfo)
			Expect(pool.TotalStaked.String()).To(Equal(hog(99).String()))

			wres := tc.MustSendTx(alice, gp, "Withdraw", 0, hog(99))[0].(*stakepool.WithdrawResult)
			Expect(wres.Fee.Add(wres.Principal).String()).To(Equal(hog(99).String()))
			Expect(wres.Fee.String()).To(Equal(amount.MustParseAmount("0.495").String()))

			Expect(tc.BalanceOf(lps[0], alice).Add(tc.BalanceOf(lps[0], util.DevFund)).String()).To(Equal(hog(100).String()))
			Expect(tc.BalanceOf(lps[0], gp).IsZero()).To(BeTrue())
		})
	})

	Describe("harvest", func() {
		It("pays the pending reward and resets it", func() {
			gp := defaultPool()
			tc.Fund(lps[0], alice, gp, hog(100))
			tc.MustSendTx(alice, gp, "Deposit", 0, hog(100))
			Expect(tc.SetTime(start + genesis.Day)).To(Succeed())

			owed := pending(gp, 0, alice)
			res := tc.MustSendTx(alice, gp, "Deposit", 0, 0)[0].(*stakepool.DepositResult)
			Expect(res.Harvested.String()).To(Equal(owed.String()))
			Expect(res.Shortfall.IsZero()).To(BeTrue())
			Expect(tc.BalanceOf(hogT, alice).String()).To(Equal(owed.String()))
			Expect(pending(gp, 0, alice).IsZero()).To(BeTrue())
			Expect(userInfo(gp, 0, alice).Amount.String()).To(Equal(hog(99).String()))

			found := false
			for _, ev := range tc.Ctx.Events() {
				if ev.Type == stakepool.EventDeposit && ev.Contract == gp {
					found = true
				}
			}
			Expect(found).To(BeTrue())
		})

		It("caps the payout at the reserve", func() {
			pools, err := genesis.DefaultPools(lps)
			Expect(err).NotTo(HaveOccurred())
			gp := deploy(false, pools)
			tc.MustSendTx(util.Admin, hogT, "Transfer", gp, hog(1000))
			tc.Fund(lps[0], alice, gp, hog(100))
			tc.MustSendTx(alice, gp, "Deposit", 0, hog(100))
			Expect(tc.SetTime(start + genesis.Day)).To(Succeed())

			owed := pending(gp, 0, alice)
			res := tc.MustSendTx(alice, gp, "Deposit", 0, 0)[0].(*stakepool.DepositResult)
			Expect(res.Harvested.String()).To(Equal(hog(1000).String()))
			Expect(res.Shortfall.String()).To(Equal(owed.Sub(hog(1000)).String()))
			Expect(tc.BalanceOf(hogT, gp).IsZero()).To(BeTrue())
		})

		It("rejects withdrawing more than the stake", func() {
			gp := defaultPool()
			tc.Fund(lps[0], alice, gp, hog(100))
			tc.MustSendTx(alice, gp, "Deposit", 0, hog(100))

			_, err := tc.SendTx(alice, gp, "Withdraw", 0, hog(100))
			Expect(errors.Cause(err)).To(Equal(accrual.ErrInsufficientStake))
			Expect(accrual.KindOf(err)).To(Equal(accrual.KindValidation))

			_, err = tc.SendTx(alice, gp, "Deposit", 9, hog(1))
			Expect(errors.Cause(err)).To(Equal(accrual.ErrInvalidPoolID))
		})
	})

	Describe("emergency withdraw", func() {
		It("returns the stake and forfeits the reward, even while paused", func() {
			gp := defaultPool()
			tc.Fund(lps[0], alice, gp, hog(100))
			tc.MustSendTx(alice, gp, "Deposit", 0, hog(100))
			Expect(tc.SetTime(start + genesis.Day)).To(Succeed())
			Expect(pending(gp, 0, alice).IsPlus()).To(BeTrue())

			tc.MustSendTx(util.Admin, gp, "Pause")
			_, err := tc.SendTx(alice, gp, "Withdraw", 0, hog(1))
			Expect(errors.Cause(err)).To(Equal(accrual.ErrPaused))

			res := tc.MustSendTx(alice, gp, "EmergencyWithdraw", 0)[0].(*stakepool.EmergencyWithdrawResult)
			Expect(res.Amount.String()).To(Equal(hog(99).String()))
			Expect(tc.BalanceOf(lps[0], alice).String()).To(Equal(hog(99).String()))
			Expect(tc.BalanceOf(hogT, alice).IsZero()).To(BeTrue())
			Expect(pending(gp, 0, alice).IsZero()).To(BeTrue())

			info := userInfo(gp, 0, alice)
			Expect(info.Amount.IsZero()).To(BeTrue())
			Expect(info.RewardDebt.IsZero()).To(BeTrue())
			pool := tc.MustReadTx(gp, "PoolInfo", 0)[0].(*accrual.PoolInfo)
			Expect(pool.TotalStaked.IsZero()).To(BeTrue())
		})
	})

	Describe("operator", func() {
		It("guards pause and the operator role", func() {
			gp := defaultPool()
			_, err := tc.SendTx(alice, gp, "Pause")
			Expect(errors.Cause(err)).To(Equal(accrual.ErrNotOperator))
			Expect(accrual.KindOf(err)).To(Equal(accrual.KindAuthorization))

			tc.MustSendTx(util.Admin, gp, "Pause")
			Expect(tc.MustReadTx(gp, "IsPaused")[0]).To(BeTrue())
			tc.Fund(lps[0], alice, gp, hog(1))
			_, err = tc.SendTx(alice, gp, "Deposit", 0, hog(1))
			Expect(errors.Cause(err)).To(Equal(accrual.ErrPaused))
			tc.MustSendTx(util.Admin, gp, "Unpause")
			tc.MustSendTx(alice, gp, "Deposit", 0, hog(1))

			_, err = tc.SendTx(util.Admin, gp, "SetOperator", common.ZeroAddr)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrZeroAddress))
			tc.MustSendTx(util.Admin, gp, "SetOperator", bob)
			Expect(tc.MustReadTx(gp, "Operator")[0]).To(Equal(bob))
			_, err = tc.SendTx(util.Admin, gp, "Pause")
			Expect(errors.Cause(err)).To(Equal(accrual.ErrNotOperator))
		})

		It("recovers tokens except staked ones and the reward before the grace period", func() {
			gp := defaultPool()
			other := tc.MakeToken("OTHER", "OTHER", "100")
			tc.MustSendTx(util.Admin, other, "Transfer", gp, hog(10))

			_, err := tc.SendTx(alice, gp, "RecoverUnsupportedToken", other, hog(10), alice)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrNotOperator))
			_, err = tc.SendTx(util.Admin, gp, "RecoverUnsupportedToken", other, hog(10), common.ZeroAddr)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrZeroAddress))
			tc.MustSendTx(util.Admin, gp, "RecoverUnsupportedToken", other, hog(10), util.Admin)
			Expect(tc.BalanceOf(other, util.Admin).String()).To(Equal(hog(100).String()))

			_, err = tc.SendTx(util.Admin, gp, "RecoverUnsupportedToken", lps[0], hog(1), util.Admin)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrProtectedToken))

			end := start + genesis.DefaultDuration
			Expect(tc.SetTime(end + genesis.DefaultRecoverGracePeriod - 1)).To(Succeed())
			_, err = tc.SendTx(util.Admin, gp, "RecoverUnsupportedToken", hogT, hog(1), util.Admin)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrProtectedToken))

			Expect(tc.SetTime(end + genesis.DefaultRecoverGracePeriod)).To(Succeed())
			left := tc.BalanceOf(hogT, gp)
			res := tc.MustSendTx(util.Admin, gp, "RecoverUnsupportedToken", hogT, left, util.DevFund)[0].(*stakepool.RecoverResult)
			Expect(res.Amount.String()).To(Equal(genesis.DefaultTotalRewards.String()))
			Expect(tc.BalanceOf(hogT, gp).IsZero()).To(BeTrue())
		})
	})
})
