package test

import (
	"github.com/pkg/errors"

	"github.com/hogfinance/hogpool/common"
	"github.com/hogfinance/hogpool/common/amount"
	"github.com/hogfinance/hogpool/contract/token"
	"github.com/hogfinance/hogpool/extern/test/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Token", func() {
	var (
		tc    *util.TestContext
		hog   common.Address
		alice common.Address
		bob   common.Address
	)

	BeforeEach(func() {
		tc = util.NewTestContext()
		alice = util.Users[0]
		bob = util.Users[1]
		hog = tc.DeployContract(&token.TokenContract{}, &token.TokenContractConstruction{
			Name:   "HOG",
			Symbol: "HOG",
			InitialSupplyMap: map[common.Address]*amount.Amount{
				util.Admin: amount.NewAmount(1000, 0),
			},
			GenesisAllocation: amount.NewAmount(560000, 0),
			DaoAllocation:     amount.NewAmount(1000, 0),
		})
	})

	It("metadata", func() {
		Expect(tc.MustReadTx(hog, "Name")[0]).To(Equal("HOG"))
		Expect(tc.MustReadTx(hog, "Symbol")[0]).To(Equal("HOG"))
		Expect(tc.MustReadTx(hog, "Decimals")[0]).To(Equal(uint64(18)))
		Expect(tc.MustReadTx(hog, "TotalSupply")[0]).To(Equal(amount.NewAmount(1000, 0)))
		Expect(tc.MustReadTx(hog, "Operator")[0]).To(Equal(util.Admin))
	})

	It("Transfer", func() {
		tc.MustSendTx(util.Admin, hog, "Transfer", alice, amount.NewAmount(10, 0))
		Expect(tc.BalanceOf(hog, alice)).To(Equal(amount.NewAmount(10, 0)))
		Expect(tc.BalanceOf(hog, util.Admin)).To(Equal(amount.NewAmount(990, 0)))

		_, err := tc.SendTx(alice, hog, "Transfer", bob, amount.NewAmount(11, 0))
		Expect(errors.Cause(err)).To(Equal(token.ErrInsufficientBalance))
		Expect(tc.BalanceOf(hog, alice)).To(Equal(amount.NewAmount(10, 0)))

		_, err = tc.SendTx(alice, hog, "Transfer", common.ZeroAddr, amount.NewAmount(1, 0))
		Expect(errors.Cause(err)).To(Equal(token.ErrZeroAddress))
	})

	It("TransferFrom spends the allowance of the caller", func() {
		tc.MustSendTx(util.Admin, hog, "Approve", alice, amount.NewAmount(5, 0))

		_, err := tc.SendTx(alice, hog, "TransferFrom", util.Admin, bob, amount.NewAmount(6, 0))
		Expect(errors.Cause(err)).To(Equal(token.ErrInsufficientAllowance))

		tc.MustSendTx(alice, hog, "TransferFrom", util.Admin, bob, amount.NewAmount(3, 0))
		Expect(tc.BalanceOf(hog, bob)).To(Equal(amount.NewAmount(3, 0)))
		Expect(tc.MustReadTx(hog, "Allowance", util.Admin, alice)[0]).To(Equal(amount.NewAmount(2, 0)))
	})

	It("Mint is limited to the operator and minters", func() {
		_, err := tc.SendTx(alice, hog, "Mint", alice, amount.NewAmount(1, 0))
		Expect(errors.Cause(err)).To(Equal(token.ErrNotTokenMinter))

		tc.MustSendTx(util.Admin, hog, "SetMinter", alice, true)
		tc.MustSendTx(alice, hog, "Mint", bob, amount.NewAmount(7, 0))
		Expect(tc.BalanceOf(hog, bob)).To(Equal(amount.NewAmount(7, 0)))
		Expect(tc.MustReadTx(hog, "TotalSupply")[0]).To(Equal(amount.NewAmount(1007, 0)))

		_, err = tc.SendTx(util.Admin, hog, "SetMinter", alice, true)
		Expect(errors.Cause(err)).To(Equal(token.ErrAlreadyMinter))
	})

	It("DistributeReward runs once", func() {
		pool := util.Users[9]
		_, err := tc.SendTx(alice, hog, "DistributeReward", util.DaoFund, pool)
		Expect(errors.Cause(err)).To(Equal(token.ErrNotTokenOperator))

		tc.MustSendTx(util.Admin, hog, "DistributeReward", util.DaoFund, pool)
		Expect(tc.BalanceOf(hog, pool)).To(Equal(amount.NewAmount(560000, 0)))
		Expect(tc.BalanceOf(hog, util.DaoFund)).To(Equal(amount.NewAmount(1000, 0)))

		_, err = tc.SendTx(util.Admin, hog, "DistributeReward", util.DaoFund, pool)
		Expect(errors.Cause(err)).To(Equal(token.ErrAlreadyDistributed))
	})

	It("Pause blocks every balance change", func() {
		tc.MustSendTx(util.Admin, hog, "Pause")
		_, err := tc.SendTx(util.Admin, hog, "Transfer", alice, amount.NewAmount(1, 0))
		Expect(errors.Cause(err)).To(Equal(token.ErrTokenPaused))

		tc.MustSendTx(util.Admin, hog, "Unpause")
		tc.MustSendTx(util.Admin, hog, "Transfer", alice, amount.NewAmount(1, 0))
	})

	It("TransferOperator", func() {
		tc.MustSendTx(util.Admin, hog, "TransferOperator", alice)
		Expect(tc.MustReadTx(hog, "Operator")[0]).To(Equal(alice))

		_, err := tc.SendTx(util.Admin, hog, "Pause")
		Expect(errors.Cause(err)).To(Equal(token.ErrNotTokenOperator))
	})
})
