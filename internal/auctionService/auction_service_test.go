package auction

import (
	"errors"
	"testing"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/custody"
	"auction-engine/internal/escrow"
	"auction-engine/internal/events"
	"auction-engine/internal/ledger"
	"auction-engine/internal/models"
	"auction-engine/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	engineAccount = "auction-engine"
	oneDay        = 24 * time.Hour
)

// fixture wires a service against real in-memory collaborators with a
// controllable clock.
type fixture struct {
	svc       *AuctionService
	store     *repository.MemoryStore
	refunds   *escrow.MemoryLedger
	currency  *ledger.MemoryLedger
	custodian *custody.MemoryCustodian
	log       *events.MemoryLog
	clock     time.Time
}

func newFixture() *fixture {
	f := &fixture{
		store:     repository.NewMemoryStore(),
		refunds:   escrow.NewMemoryLedger(),
		currency:  ledger.NewMemoryLedger(engineAccount),
		custodian: custody.NewMemoryCustodian(),
		log:       events.NewMemoryLog(),
		clock:     time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}

	for _, p := range []string{"seller1", "seller2", "bidder1", "bidder2", "bidder3"} {
		f.currency.Fund(p, decimal.NewFromInt(10000))
	}
	f.custodian.Mint("asset1", "seller1")
	f.custodian.Mint("asset2", "seller2")

	f.svc = NewAuctionService(f.store, f.refunds, f.currency, f.custodian, f.log, nil, engineAccount)
	f.svc.SetClock(func() time.Time { return f.clock })
	return f
}

func (f *fixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func (f *fixture) startAuction(t *testing.T) models.Auction {
	t.Helper()
	record, err := f.svc.StartBid("seller1", "asset1", oneDay, decimal.NewFromInt(1000))
	require.NoError(t, err)
	return record
}

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// Tests StartBid
func TestAuctionService_StartBid(t *testing.T) {
	t.Run("rejects_non_owner", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.StartBid("seller1", "asset2", oneDay, amount(1000))
		require.ErrorIs(t, err, auctionerrors.ErrNotAssetOwner)
	})

	t.Run("rejects_unknown_asset", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.StartBid("seller1", "assetX", oneDay, amount(1000))
		require.ErrorIs(t, err, auctionerrors.ErrAssetUnknown)
	})

	// Table-driven input validation
	tests := []struct {
		name          string
		seller        string
		assetID       string
		duration      time.Duration
		startingPrice decimal.Decimal
	}{
		{name: "empty_seller", seller: "", assetID: "asset1", duration: oneDay, startingPrice: amount(1000)},
		{name: "empty_assetID", seller: "seller1", assetID: "", duration: oneDay, startingPrice: amount(1000)},
		{name: "zero_duration", seller: "seller1", assetID: "asset1", duration: 0, startingPrice: amount(1000)},
		{name: "negative_duration", seller: "seller1", assetID: "asset1", duration: -time.Hour, startingPrice: amount(1000)},
		{name: "zero_starting_price", seller: "seller1", assetID: "asset1", duration: oneDay, startingPrice: amount(0)},
		{name: "negative_starting_price", seller: "seller1", assetID: "asset1", duration: oneDay, startingPrice: amount(-5)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.StartBid(tc.seller, tc.assetID, tc.duration, tc.startingPrice)
			require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)
		})
	}

	t.Run("starts_auctions_correctly", func(t *testing.T) {
		f := newFixture()

		first, err := f.svc.StartBid("seller1", "asset1", oneDay, amount(1000))
		require.NoError(t, err)
		require.Equal(t, uint64(1), first.AuctionID)
		require.Equal(t, "asset1", first.AssetID)
		require.Equal(t, "seller1", first.Seller)
		require.Equal(t, f.clock, first.StartTime)
		require.Equal(t, oneDay, first.Duration)
		require.True(t, first.HighestBid.Equal(amount(1000)))
		require.Empty(t, first.HighestBidder)
		require.Equal(t, models.StatusActive, first.Status)

		// Custody moved to the engine
		owner, err := f.custodian.OwnerOf("asset1")
		require.NoError(t, err)
		require.Equal(t, engineAccount, owner)

		// Identifiers are monotonic across auctions
		second, err := f.svc.StartBid("seller2", "asset2", oneDay, amount(1000))
		require.NoError(t, err)
		require.Equal(t, uint64(2), second.AuctionID)

		// Start event carries the auction parameters
		recorded := f.log.ByAuction(first.AuctionID)
		require.Len(t, recorded, 1)
		require.Equal(t, models.EventStart, recorded[0].Kind)
		require.Equal(t, "asset1", recorded[0].AssetID)
		require.Equal(t, "seller1", recorded[0].Actor)
		require.Equal(t, int64(86400), recorded[0].DurationSeconds)
		_, parseErr := uuid.Parse(recorded[0].EventID)
		require.NoError(t, parseErr)
	})

	t.Run("custody_transfer_failure_aborts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture()
		mockCustodian := custody.NewMockAssetCustodian(ctrl)
		mockCustodian.EXPECT().OwnerOf("asset1").Return("seller1", nil)
		mockCustodian.EXPECT().Transfer("seller1", engineAccount, "asset1").Return(errors.New("custodian offline"))

		svc := NewAuctionService(f.store, f.refunds, f.currency, mockCustodian, f.log, nil, engineAccount)
		_, err := svc.StartBid("seller1", "asset1", oneDay, amount(1000))
		require.Error(t, err)
		require.Empty(t, f.store.List())
		require.Empty(t, f.log.All())
	})
}

// Tests PlaceBid
func TestAuctionService_PlaceBid(t *testing.T) {
	t.Run("rejects_unknown_auction", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.PlaceBid(42, "bidder1", amount(1500))
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("rejects_bid_on_cancelled_auction", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		require.NoError(t, f.svc.CancelBid(record.AuctionID, "seller1"))

		_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.ErrorIs(t, err, auctionerrors.ErrAlreadyEnded)
	})

	t.Run("rejects_bid_after_window", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		f.advance(oneDay + time.Second)

		_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.ErrorIs(t, err, auctionerrors.ErrTimedOut)
	})

	t.Run("rejects_low_and_tied_bids", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)

		// Below the starting price
		_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(900))
		require.ErrorIs(t, err, auctionerrors.ErrBidTooLow)

		// Equal to the starting price: ties are rejected
		_, err = f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1000))
		require.ErrorIs(t, err, auctionerrors.ErrBidTooLow)

		_, err = f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.NoError(t, err)

		// Below the standing bid
		_, err = f.svc.PlaceBid(record.AuctionID, "bidder2", amount(1300))
		require.ErrorIs(t, err, auctionerrors.ErrBidTooLow)
	})

	t.Run("rejected_bid_leaves_no_trace", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.NoError(t, err)

		_, err = f.svc.PlaceBid(record.AuctionID, "bidder2", amount(1300))
		require.ErrorIs(t, err, auctionerrors.ErrBidTooLow)

		current, err := f.svc.GetAuction(record.AuctionID)
		require.NoError(t, err)
		require.True(t, current.HighestBid.Equal(amount(1500)))
		require.Equal(t, "bidder1", current.HighestBidder)
		require.True(t, f.refunds.TotalFor(record.AuctionID).IsZero())
		require.True(t, f.currency.BalanceOf("bidder2").Equal(amount(10000)))
	})

	t.Run("failed_debit_aborts_with_no_state_change", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture()
		record := f.startAuction(t)
		_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.NoError(t, err)

		mockCurrency := ledger.NewMockCurrencyLedger(ctrl)
		mockCurrency.EXPECT().Debit("bidder2", gomock.Any()).Return(errors.New("ledger offline"))

		svc := NewAuctionService(f.store, f.refunds, mockCurrency, f.custodian, f.log, nil, engineAccount)
		svc.SetClock(func() time.Time { return f.clock })

		_, err = svc.PlaceBid(record.AuctionID, "bidder2", amount(2000))
		require.Error(t, err)

		current, err := f.store.Get(record.AuctionID)
		require.NoError(t, err)
		require.True(t, current.HighestBid.Equal(amount(1500)))
		require.Equal(t, "bidder1", current.HighestBidder)
		require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder1").IsZero())
	})

	t.Run("bids_correctly", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)

		first, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.NoError(t, err)
		require.True(t, first.HighestBid.Equal(amount(1500)))
		require.Equal(t, "bidder1", first.HighestBidder)
		require.True(t, f.currency.BalanceOf("bidder1").Equal(amount(8500)))
		require.True(t, f.currency.BalanceOf(engineAccount).Equal(amount(1500)))
		// A first bid supersedes nobody
		require.True(t, f.refunds.TotalFor(record.AuctionID).IsZero())

		second, err := f.svc.PlaceBid(record.AuctionID, "bidder2", amount(2000))
		require.NoError(t, err)
		require.True(t, second.HighestBid.Equal(amount(2000)))
		require.Equal(t, "bidder2", second.HighestBidder)
		require.True(t, f.currency.BalanceOf("bidder2").Equal(amount(8000)))
		require.True(t, f.currency.BalanceOf(engineAccount).Equal(amount(3500)))
		require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder1").Equal(amount(1500)))

		third, err := f.svc.PlaceBid(record.AuctionID, "bidder3", amount(2500))
		require.NoError(t, err)
		require.True(t, third.HighestBid.Equal(amount(2500)))
		require.Equal(t, "bidder3", third.HighestBidder)
		require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder1").Equal(amount(1500)))
		require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder2").Equal(amount(2000)))

		// Bid events carry bidder, amount and timestamp
		recorded := f.log.ByAuction(record.AuctionID)
		require.Len(t, recorded, 4) // start + three bids
		require.Equal(t, models.EventBid, recorded[1].Kind)
		require.Equal(t, "bidder1", recorded[1].Actor)
		require.True(t, recorded[1].Amount.Equal(amount(1500)))
		require.Equal(t, f.clock, recorded[1].Timestamp)
	})

	t.Run("refunds_accumulate_across_rebids", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)

		// bidder1 is outbid, rebids, and is outbid again
		_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.NoError(t, err)
		_, err = f.svc.PlaceBid(record.AuctionID, "bidder2", amount(2000))
		require.NoError(t, err)
		_, err = f.svc.PlaceBid(record.AuctionID, "bidder1", amount(2500))
		require.NoError(t, err)
		_, err = f.svc.PlaceBid(record.AuctionID, "bidder2", amount(3000))
		require.NoError(t, err)

		require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder1").Equal(amount(4000)))
		require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder2").Equal(amount(2000)))
	})

	t.Run("highest_bid_strictly_increases_and_funds_are_conserved", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)

		previous := record.HighestBid
		totalDebited := decimal.Zero
		bidders := []string{"bidder1", "bidder2", "bidder3", "bidder1", "bidder2"}
		for i, bidder := range bidders {
			offer := amount(int64(1200 + 300*i))
			updated, err := f.svc.PlaceBid(record.AuctionID, bidder, offer)
			require.NoError(t, err)
			require.True(t, updated.HighestBid.GreaterThan(previous))
			previous = updated.HighestBid
			totalDebited = totalDebited.Add(offer)

			// refund total + standing bid always equals everything debited
			escrowed := f.refunds.TotalFor(record.AuctionID).Add(updated.HighestBid)
			require.True(t, escrowed.Equal(totalDebited))
			require.True(t, f.currency.BalanceOf(engineAccount).Equal(totalDebited))
		}
	})
}

// Tests CancelBid
func TestAuctionService_CancelBid(t *testing.T) {
	t.Run("rejects_unknown_auction", func(t *testing.T) {
		f := newFixture()
		err := f.svc.CancelBid(1, "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("rejects_non_seller", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		err := f.svc.CancelBid(record.AuctionID, "seller2")
		require.ErrorIs(t, err, auctionerrors.ErrNotSeller)
	})

	t.Run("rejects_cancel_after_first_bid", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.NoError(t, err)

		err = f.svc.CancelBid(record.AuctionID, "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrBidAlreadyJoined)
	})

	t.Run("rejects_cancel_after_end", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		f.advance(oneDay + time.Second)
		_, err := f.svc.EndBid(record.AuctionID)
		require.NoError(t, err)

		err = f.svc.CancelBid(record.AuctionID, "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrAlreadyEnded)
	})

	t.Run("cancels_correctly", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)

		require.NoError(t, f.svc.CancelBid(record.AuctionID, "seller1"))

		current, err := f.svc.GetAuction(record.AuctionID)
		require.NoError(t, err)
		require.Equal(t, models.StatusCancelled, current.Status)

		// Asset is back with the seller
		owner, err := f.custodian.OwnerOf("asset1")
		require.NoError(t, err)
		require.Equal(t, "seller1", owner)

		recorded := f.log.ByAuction(record.AuctionID)
		require.Equal(t, models.EventCancel, recorded[len(recorded)-1].Kind)

		// Cancellation is terminal: no further transitions
		_, err = f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.ErrorIs(t, err, auctionerrors.ErrAlreadyEnded)
		err = f.svc.CancelBid(record.AuctionID, "seller1")
		require.ErrorIs(t, err, auctionerrors.ErrAlreadyEnded)
	})
}

// Tests EndBid
func TestAuctionService_EndBid(t *testing.T) {
	t.Run("rejects_unknown_auction", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.EndBid(1)
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("rejects_settlement_before_end_time", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		_, err := f.svc.EndBid(record.AuctionID)
		require.ErrorIs(t, err, auctionerrors.ErrNotReachedEndTime)

		// One second before the boundary is still too early
		f.advance(oneDay - time.Second)
		_, err = f.svc.EndBid(record.AuctionID)
		require.ErrorIs(t, err, auctionerrors.ErrNotReachedEndTime)
	})

	t.Run("rejects_settlement_of_cancelled_auction", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		require.NoError(t, f.svc.CancelBid(record.AuctionID, "seller1"))
		f.advance(oneDay + time.Second)

		_, err := f.svc.EndBid(record.AuctionID)
		require.ErrorIs(t, err, auctionerrors.ErrAlreadyEnded)
	})

	t.Run("rejects_double_settlement", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		f.advance(oneDay + time.Second)

		_, err := f.svc.EndBid(record.AuctionID)
		require.NoError(t, err)
		_, err = f.svc.EndBid(record.AuctionID)
		require.ErrorIs(t, err, auctionerrors.ErrAlreadyEnded)
	})

	t.Run("settles_correctly_with_bidders", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)

		for i, bidder := range []string{"bidder1", "bidder2", "bidder3"} {
			_, err := f.svc.PlaceBid(record.AuctionID, bidder, amount(int64(1500+500*i)))
			require.NoError(t, err)
		}
		f.advance(oneDay + time.Second)

		settled, err := f.svc.EndBid(record.AuctionID)
		require.NoError(t, err)
		require.Equal(t, models.StatusEnded, settled.Status)

		// Asset to the winner, highest bid to the seller
		owner, err := f.custodian.OwnerOf("asset1")
		require.NoError(t, err)
		require.Equal(t, "bidder3", owner)
		require.True(t, f.currency.BalanceOf("seller1").Equal(amount(12500)))

		// Losing bidders keep their refund balances
		require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder1").Equal(amount(1500)))
		require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder2").Equal(amount(2000)))

		recorded := f.log.ByAuction(record.AuctionID)
		last := recorded[len(recorded)-1]
		require.Equal(t, models.EventEnd, last.Kind)
		require.Equal(t, "bidder3", last.Actor)
		require.True(t, last.Amount.Equal(amount(2500)))
	})

	t.Run("settles_correctly_when_unbid", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		f.advance(oneDay + time.Second)

		settled, err := f.svc.EndBid(record.AuctionID)
		require.NoError(t, err)
		require.Equal(t, models.StatusEnded, settled.Status)

		// Asset returns to the seller, no currency moves
		owner, err := f.custodian.OwnerOf("asset1")
		require.NoError(t, err)
		require.Equal(t, "seller1", owner)
		require.True(t, f.currency.BalanceOf("seller1").Equal(amount(10000)))
		require.True(t, f.currency.BalanceOf(engineAccount).IsZero())

		// Null-winner event with amount equal to the starting price
		recorded := f.log.ByAuction(record.AuctionID)
		last := recorded[len(recorded)-1]
		require.Equal(t, models.EventEnd, last.Kind)
		require.Empty(t, last.Actor)
		require.True(t, last.Amount.Equal(amount(1000)))
	})

	t.Run("anyone_may_trigger_settlement", func(t *testing.T) {
		// EndBid takes no caller: the fixture exercises it without any
		// principal, which is the permissionless path.
		f := newFixture()
		record := f.startAuction(t)
		_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.NoError(t, err)
		f.advance(oneDay + time.Second)

		settled, err := f.svc.EndBid(record.AuctionID)
		require.NoError(t, err)
		require.Equal(t, "bidder1", settled.HighestBidder)
	})
}

// Tests WithdrawRefund
func TestAuctionService_WithdrawRefund(t *testing.T) {
	t.Run("rejects_unknown_auction", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.WithdrawRefund(1, "bidder1")
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("rejects_zero_balance", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		_, err := f.svc.WithdrawRefund(record.AuctionID, "bidder1")
		require.ErrorIs(t, err, auctionerrors.ErrNoRefund)
	})

	t.Run("withdraws_once_in_full", func(t *testing.T) {
		f := newFixture()
		record := f.startAuction(t)
		_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.NoError(t, err)
		_, err = f.svc.PlaceBid(record.AuctionID, "bidder2", amount(2000))
		require.NoError(t, err)

		withdrawn, err := f.svc.WithdrawRefund(record.AuctionID, "bidder1")
		require.NoError(t, err)
		require.True(t, withdrawn.Equal(amount(1500)))
		require.True(t, f.currency.BalanceOf("bidder1").Equal(amount(10000)))
		require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder1").IsZero())

		// Second withdrawal fails
		_, err = f.svc.WithdrawRefund(record.AuctionID, "bidder1")
		require.ErrorIs(t, err, auctionerrors.ErrNoRefund)

		recorded := f.log.ByAuction(record.AuctionID)
		last := recorded[len(recorded)-1]
		require.Equal(t, models.EventWithdraw, last.Kind)
		require.Equal(t, "bidder1", last.Actor)
		require.True(t, last.Amount.Equal(amount(1500)))
	})

	t.Run("failed_credit_leaves_entry_intact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		f := newFixture()
		record := f.startAuction(t)
		_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
		require.NoError(t, err)
		_, err = f.svc.PlaceBid(record.AuctionID, "bidder2", amount(2000))
		require.NoError(t, err)

		mockCurrency := ledger.NewMockCurrencyLedger(ctrl)
		mockCurrency.EXPECT().Credit("bidder1", gomock.Any()).Return(errors.New("ledger offline"))

		svc := NewAuctionService(f.store, f.refunds, mockCurrency, f.custodian, f.log, nil, engineAccount)
		svc.SetClock(func() time.Time { return f.clock })

		_, err = svc.WithdrawRefund(record.AuctionID, "bidder1")
		require.Error(t, err)
		require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder1").Equal(amount(1500)))
	})
}

// Read-only query accessors
func TestAuctionService_Queries(t *testing.T) {
	f := newFixture()
	record := f.startAuction(t)
	_, err := f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
	require.NoError(t, err)

	highest, err := f.svc.HighestBid(record.AuctionID)
	require.NoError(t, err)
	require.True(t, highest.Equal(amount(1500)))

	leader, err := f.svc.HighestBidder(record.AuctionID)
	require.NoError(t, err)
	require.Equal(t, "bidder1", leader)

	balance, err := f.svc.RefundBalance(record.AuctionID, "bidder1")
	require.NoError(t, err)
	require.True(t, balance.IsZero())

	eventList, err := f.svc.EventsForAuction(record.AuctionID)
	require.NoError(t, err)
	require.Len(t, eventList, 2)

	_, err = f.svc.HighestBid(42)
	require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	_, err = f.svc.HighestBidder(42)
	require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	_, err = f.svc.RefundBalance(42, "bidder1")
	require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	_, err = f.svc.EventsForAuction(42)
	require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
}

// Full lifecycle: spec scenario with competing bidders and withdrawals
func TestAuctionService_FullLifecycle(t *testing.T) {
	f := newFixture()

	record, err := f.svc.StartBid("seller1", "asset1", oneDay, amount(1000))
	require.NoError(t, err)

	// Bidder A leads, B lowballs and is rejected, B then takes the lead
	_, err = f.svc.PlaceBid(record.AuctionID, "bidder1", amount(1500))
	require.NoError(t, err)
	_, err = f.svc.PlaceBid(record.AuctionID, "bidder2", amount(1300))
	require.ErrorIs(t, err, auctionerrors.ErrBidTooLow)
	_, err = f.svc.PlaceBid(record.AuctionID, "bidder2", amount(2000))
	require.NoError(t, err)
	require.True(t, f.refunds.BalanceOf(record.AuctionID, "bidder1").Equal(amount(1500)))

	f.advance(oneDay + time.Second)
	settled, err := f.svc.EndBid(record.AuctionID)
	require.NoError(t, err)
	require.Equal(t, "bidder2", settled.HighestBidder)

	// Loser withdraws; everyone's final balances reconcile
	_, err = f.svc.WithdrawRefund(record.AuctionID, "bidder1")
	require.NoError(t, err)

	require.True(t, f.currency.BalanceOf("seller1").Equal(amount(12000)))
	require.True(t, f.currency.BalanceOf("bidder1").Equal(amount(10000)))
	require.True(t, f.currency.BalanceOf("bidder2").Equal(amount(8000)))
	require.True(t, f.currency.BalanceOf(engineAccount).IsZero())

	owner, err := f.custodian.OwnerOf("asset1")
	require.NoError(t, err)
	require.Equal(t, "bidder2", owner)
}
