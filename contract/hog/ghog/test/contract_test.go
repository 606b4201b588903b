package test

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/contract/hog/accrual"
	"github.com/hogfinance/hogpool/contract/hog/ghog"
	"github.com/hogfinance/hogpool/contract/hog/stakepool"
	"github.com/hogfinance/hogpool/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const day = uint64(86400)

func tokens(v uint64) *amount.Amount {
	return amount.NewAmount(v, 0)
}

func perDay(v uint64) *amount.Amount {
	return tokens(v).DivC(int64(day))
}

// near reports whether got is within wei of want
func near(got *amount.Amount, want *amount.Amount, wei int64) bool {
	d := new(big.Int).Abs(new(big.Int).Sub(got.Int, want.Int))
	return d.Cmp(big.NewInt(wei)) <= 0
}

var _ = Describe("GHog pool", func() {
	var (
		tc    *util.TestContext
		ghogT common.Address
		hogS  common.Address
		ghogS common.Address
		pool  common.Address
		start uint64
		alice common.Address
		bob   common.Address
	)

	pending := func(pid uint64, user common.Address) *amount.Amount {
		return tc.MustReadTx(pool, "PendingReward", pid, user)[0].(*amount.Amount)
	}

	poolInfo := func(pid uint64) *accrual.PoolInfo {
		return tc.MustReadTx(pool, "PoolInfo", pid)[0].(*accrual.PoolInfo)
	}

	BeforeEach(func() {
		tc = util.NewTestContext()
		alice = util.Users[0]
		bob = util.Users[1]
		ghogT = tc.MakeToken("GHOG", "GHOG", "1000000")
		hogS = tc.MakeToken("HOG-S", "HOG-S", "1000000")
		ghogS = tc.MakeToken("GHOG-S", "GHOG-S", "1000000")
		start = tc.Now() + 3600
		pool = tc.DeployContract(&ghog.GHogContract{}, &ghog.GHogContractConstruction{
			RewardToken:    ghogT,
			HogS:           hogS,
			GhogS:          ghogS,
			DevFund:        util.DevFund,
			StartTime:      start,
			SharePerSecond: perDay(1000),
		})
		tc.MustSendTx(util.Admin, ghogT, "Transfer", pool, tokens(100000))
	})

	It("initializes with the two launch pools", func() {
		Expect(tc.MustReadTx(pool, "Ghog")[0]).To(Equal(ghogT))
		Expect(tc.MustReadTx(pool, "DevFund")[0]).To(Equal(util.DevFund))
		Expect(tc.MustReadTx(pool, "PoolStartTime")[0]).To(Equal(start))
		Expect(tc.MustReadTx(pool, "Operator")[0]).To(Equal(util.Admin))
		Expect(tc.MustReadTx(pool, "PoolLength")[0]).To(Equal(uint64(2)))
		Expect(tc.MustReadTx(pool, "TotalAllocPoint")[0]).To(Equal(uint64(1000)))
		Expect(poolInfo(0).Token).To(Equal(hogS))
		Expect(poolInfo(1).Token).To(Equal(ghogS))
		Expect(poolInfo(1).AllocPoint).To(Equal(ghog.DefaultGhogSAllocPoint))
		Expect(poolInfo(1).LastRewardTime).To(Equal(start))
	})

	Describe("accrual", func() {
		It("pays 400 a day to a pool with 400 of 1000 weight", func() {
			tc.Fund(ghogS, alice, pool, tokens(100))
			tc.MustSendTx(alice, pool, "Deposit", 1, tokens(100))

			Expect(tc.SetTime(start + day)).To(Succeed())
			Expect(near(pending(1, alice), tokens(400), 10000)).To(BeTrue(), pending(1, alice).String())

			res := tc.MustSendTx(alice, pool, "Deposit", 1, 0)[0].(*stakepool.DepositResult)
			Expect(near(res.Harvested, tokens(400), 10000)).To(BeTrue())
			Expect(tc.BalanceOf(ghogT, alice).String()).To(Equal(res.Harvested.String()))
			Expect(pending(1, alice).IsZero()).To(BeTrue())
		})

		It("splits pools by weight and stakers by stake", func() {
			tc.Fund(hogS, alice, pool, tokens(30))
			tc.Fund(hogS, bob, pool, tokens(70))
			tc.Fund(ghogS, bob, pool, tokens(5))
			tc.MustSendTx(alice, pool, "Deposit", 0, tokens(30))
			tc.MustSendTx(bob, pool, "Deposit", 0, tokens(70))
			tc.MustSendTx(bob, pool, "Deposit", 1, tokens(5))

			Expect(tc.SetTime(start + day)).To(Succeed())
			Expect(near(pending(0, alice), tokens(180), 100000)).To(BeTrue())
			Expect(near(pending(0, bob), tokens(420), 100000)).To(BeTrue())
			Expect(near(pending(1, bob), tokens(400), 100000)).To(BeTrue())
		})

		It("keeps past accrual when the rate changes", func() {
			tc.Fund(ghogS, alice, pool, tokens(100))
			tc.MustSendTx(alice, pool, "Deposit", 1, tokens(100))
			Expect(tc.SetTime(start + day)).To(Succeed())
			before := pending(1, alice)

			_, err := tc.SendTx(alice, pool, "SetSharePerSecond", perDay(2000))
			Expect(errors.Cause(err)).To(Equal(accrual.ErrNotOperator))

			res := tc.MustSendTx(util.Admin, pool, "SetSharePerSecond", perDay(2000))[0].(*ghog.RateResult)
			Expect(res.Previous.String()).To(Equal(perDay(1000).String()))
			Expect(pending(1, alice).String()).To(Equal(before.String()))
			Expect(poolInfo(1).LastRewardTime).To(Equal(start + day))

			Expect(tc.SetTime(start + 2*day)).To(Succeed())
			Expect(near(pending(1, alice), tokens(1200), 100000)).To(BeTrue(), pending(1, alice).String())
		})

		It("keeps past accrual when a weight changes", func() {
			tc.Fund(ghogS, alice, pool, tokens(100))
			tc.MustSendTx(alice, pool, "Deposit", 1, tokens(100))
			Expect(tc.SetTime(start + day)).To(Succeed())

			res := tc.MustSendTx(util.Admin, pool, "Set", 1, 600, 0, 0, common.ZeroAddr)[0].(*ghog.PoolSetResult)
			Expect(res.TotalAllocPoint).To(Equal(uint64(1200)))

			Expect(tc.SetTime(start + 2*day)).To(Succeed())
			Expect(near(pending(1, alice), tokens(900), 100000)).To(BeTrue(), pending(1, alice).String())
		})

		It("fails settlement on overflow without touching state", func() {
			tc.Fund(ghogS, alice, pool, tokens(2))
			tc.MustSendTx(alice, pool, "Deposit", 1, tokens(1))
			huge := amount.NewAmountFromBig(new(big.Int).Lsh(big.NewInt(1), 250))
			tc.MustSendTx(util.Admin, pool, "SetSharePerSecond", huge)

			Expect(tc.SetTime(start + day)).To(Succeed())
			_, err := tc.SendTx(alice, pool, "Deposit", 1, tokens(1))
			Expect(err).To(Equal(accrual.ErrArithmeticOverflow))
			Expect(accrual.KindOf(err)).To(Equal(accrual.KindArithmetic))
			Expect(poolInfo(1).TotalStaked.String()).To(Equal(tokens(1).String()))

			tc.MustSendTx(alice, pool, "EmergencyWithdraw", 1)
			Expect(tc.BalanceOf(ghogS, alice).String()).To(Equal(tokens(2).String()))
		})
	})

	Describe("governance", func() {
		It("adds pools once per token", func() {
			other := tc.MakeToken("OTHER", "OTHER", "100")
			gauge := common.SeedAddress("gauge")

			_, err := tc.SendTx(alice, pool, "Add", other, 100, 0, 0, gauge)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrNotOperator))
			_, err = tc.SendTx(util.Admin, pool, "Add", ghogS, 100, 0, 0, gauge)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrPoolExists))
			_, err = tc.SendTx(util.Admin, pool, "Add", other, 100, 10001, 0, gauge)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrInvalidFee))

			Expect(tc.SetTime(start + day)).To(Succeed())
			res := tc.MustSendTx(util.Admin, pool, "Add", other, 100, 50, 25, gauge)[0].(*ghog.PoolAddedResult)
			Expect(res.Pid).To(Equal(uint64(2)))
			Expect(tc.MustReadTx(pool, "TotalAllocPoint")[0]).To(Equal(uint64(1100)))
			info := poolInfo(2)
			Expect(info.Gauge).To(Equal(gauge))
			Expect(info.LastRewardTime).To(Equal(start + day))
			Expect(info.WithdrawFeeBP).To(Equal(uint16(25)))
		})

		It("records the gauge", func() {
			gauge := common.SeedAddress("gauge")
			res := tc.MustSendTx(util.Admin, pool, "SetGauge", 0, gauge)[0].(*ghog.GaugeResult)
			Expect(res.Previous).To(Equal(common.ZeroAddr))
			Expect(res.Gauge).To(Equal(gauge))
			Expect(poolInfo(0).Gauge).To(Equal(gauge))

			_, err := tc.SendTx(util.Admin, pool, "SetGauge", 5, gauge)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrInvalidPoolID))
		})

		It("never releases the reward token or a staked token", func() {
			Expect(tc.SetTime(start + 365*day)).To(Succeed())
			_, err := tc.SendTx(util.Admin, pool, "RecoverUnsupportedToken", ghogT, tokens(1), util.Admin)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrProtectedToken))
			_, err = tc.SendTx(util.Admin, pool, "RecoverUnsupportedToken", hogS, tokens(1), util.Admin)
			Expect(errors.Cause(err)).To(Equal(accrual.ErrProtectedToken))
		})
	})

	It("charges fees set by governance", func() {
		tc.MustSendTx(util.Admin, pool, "Set", 0, 600, 200, 100, common.ZeroAddr)
		tc.Fund(hogS, alice, pool, tokens(100))

		res := tc.MustSendTx(alice, pool, "Deposit", 0, tokens(100))[0].(*stakepool.DepositResult)
		Expect(res.Fee.String()).To(Equal(tokens(2).String()))
		wres := tc.MustSendTx(alice, pool, "Withdraw", 0, tokens(98))[0].(*stakepool.WithdrawResult)
		Expect(wres.Fee.String()).To(Equal(amount.MustParseAmount("0.98").String()))

		Expect(tc.BalanceOf(hogS, util.DevFund).String()).To(Equal(amount.MustParseAmount("2.98").String()))
		Expect(tc.BalanceOf(hogS, alice).Add(tc.BalanceOf(hogS, util.DevFund)).String()).To(Equal(tokens(100).String()))
	})

	It("forfeits the reward on emergency withdraw", func() {
		tc.Fund(ghogS, alice, pool, tokens(100))
		tc.MustSendTx(alice, pool, "Deposit", 1, tokens(100))
		Expect(tc.SetTime(start + day)).To(Succeed())

		tc.MustSendTx(alice, pool, "EmergencyWithdraw", 1)
		Expect(tc.BalanceOf(ghogS, alice).String()).To(Equal(tokens(100).String()))
		Expect(tc.BalanceOf(ghogT, alice).IsZero()).To(BeTrue())
		Expect(pending(1, alice).IsZero()).To(BeTrue())
		Expect(poolInfo(1).TotalStaked.IsZero()).To(BeTrue())
	})
})
