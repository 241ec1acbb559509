package auction

import (
	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/custody"
	"auction-engine/internal/escrow"
	"auction-engine/internal/events"
	"auction-engine/internal/ledger"
	"auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// AuctionService implements the bid lifecycle state machine. Every lifecycle
// operation runs as one serialized transaction under mu: preconditions are
// checked first, external fund/asset movement happens next, and bookkeeping
// is committed last, so any failure aborts with zero state mutation.
type AuctionService struct {
	mu        sync.Mutex
	store     repository.AuctionStore
	refunds   escrow.RefundLedger
	currency  ledger.CurrencyLedger
	custodian custody.AssetCustodian
	log       events.Log
	persist   *repository.Persistence // optional snapshot sink
	account   string                  // principal under which the engine holds escrowed assets
	now       func() time.Time
}

// NewAuctionService creates an AuctionService. persist may be nil for a pure
// in-memory engine.
func NewAuctionService(
	store repository.AuctionStore,
	refunds escrow.RefundLedger,
	currency ledger.CurrencyLedger,
	custodian custody.AssetCustodian,
	log events.Log,
	persist *repository.Persistence,
	engineAccount string,
) *AuctionService {
	return &AuctionService{
		store:     store,
		refunds:   refunds,
		currency:  currency,
		custodian: custodian,
		log:       log,
		persist:   persist,
		account:   engineAccount,
		now:       time.Now,
	}
}

// SetClock overrides the service clock. Intended for tests.
func (s *AuctionService) SetClock(now func() time.Time) {
	s.now = now
}

// StartBid opens an auction over assetID. The caller must own the asset;
// custody moves to the engine account for the duration of the auction.
func (s *AuctionService) StartBid(seller, assetID string, duration time.Duration, startingPrice decimal.Decimal) (models.Auction, error) {
	if seller == "" || assetID == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing seller or assetID", auctionerrors.ErrInvalidInput)
	}
	if duration <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - non-positive duration", auctionerrors.ErrInvalidInput)
	}
	if startingPrice.Sign() <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - non-positive starting price", auctionerrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	owner, err := s.custodian.OwnerOf(assetID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to resolve owner of asset %s: %w", assetID, err)
	}
	if owner != seller {
		return models.Auction{}, fmt.Errorf("service: asset %s owned by %s: %w", assetID, owner, auctionerrors.ErrNotAssetOwner)
	}

	if err := s.custodian.Transfer(seller, s.account, assetID); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to take custody of asset %s: %w", assetID, err)
	}

	startTime := s.now()
	record := models.Auction{
		AssetID:       assetID,
		Seller:        seller,
		StartTime:     startTime,
		Duration:      duration,
		StartingPrice: startingPrice,
		HighestBid:    startingPrice,
		HighestBidder: "",
		Status:        models.StatusActive,
	}

	auctionID, err := s.store.Create(record)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction for asset %s: %w", assetID, err)
	}
	record.AuctionID = auctionID

	s.log.Append(models.Event{
		EventID:         utils.GenerateID(),
		Kind:            models.EventStart,
		AuctionID:       auctionID,
		AssetID:         assetID,
		Actor:           seller,
		Amount:          startingPrice,
		DurationSeconds: int64(duration / time.Second),
		Timestamp:       startTime,
	})
	s.saveSnapshot()

	return record, nil
}

// PlaceBid offers amount on an auction. The offer must strictly exceed the
// current highest bid; the previous leader's stake moves to the refund
// ledger and stays there until the bidder withdraws it.
func (s *AuctionService) PlaceBid(auctionID uint64, bidder string, amount decimal.Decimal) (models.Auction, error) {
	if bidder == "" {
		return models.Auction{}, fmt.Errorf("service: %w - missing bidder", auctionerrors.ErrInvalidInput)
	}
	if amount.Sign() <= 0 {
		return models.Auction{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.Get(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: %w", err)
	}
	if record.Status.Terminal() {
		return models.Auction{}, fmt.Errorf("service: auction %d is %s: %w", auctionID, record.Status, auctionerrors.ErrAlreadyEnded)
	}

	timestamp := s.now()
	if !timestamp.Before(record.EndTime()) {
		return models.Auction{}, fmt.Errorf("service: auction %d closed at %s: %w", auctionID, record.EndTime().Format(time.RFC3339), auctionerrors.ErrTimedOut)
	}
	if !amount.GreaterThan(record.HighestBid) {
		return models.Auction{}, fmt.Errorf("service: %w - current highest bid is %s", auctionerrors.ErrBidTooLow, record.HighestBid)
	}

	// External debit first: if it fails nothing below runs.
	if err := s.currency.Debit(bidder, amount); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to debit %s from %s: %w", amount, bidder, err)
	}

	if record.HighestBidder != "" {
		s.refunds.Credit(auctionID, record.HighestBidder, record.HighestBid)
	}

	record.HighestBid = amount
	record.HighestBidder = bidder
	if err := s.store.Update(record); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to update auction %d: %w", auctionID, err)
	}

	s.log.Append(models.Event{
		EventID:   utils.GenerateID(),
		Kind:      models.EventBid,
		AuctionID: auctionID,
		Actor:     bidder,
		Amount:    amount,
		Timestamp: timestamp,
	})
	s.saveSnapshot()

	return record, nil
}

// CancelBid terminates an auction before any bid has been placed and returns
// the asset to the seller. Once a bidder has joined, unwinding must go
// through endBid and the refund ledger, never cancellation.
func (s *AuctionService) CancelBid(auctionID uint64, caller string) error {
	if caller == "" {
		return fmt.Errorf("service: %w - missing caller", auctionerrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.Get(auctionID)
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	if record.Seller != caller {
		return fmt.Errorf("service: caller %s: %w", caller, auctionerrors.ErrNotSeller)
	}
	if record.Status.Terminal() {
		return fmt.Errorf("service: auction %d is %s: %w", auctionID, record.Status, auctionerrors.ErrAlreadyEnded)
	}
	if record.HighestBidder != "" {
		return fmt.Errorf("service: auction %d has a standing bid: %w", auctionID, auctionerrors.ErrBidAlreadyJoined)
	}

	if err := s.custodian.Transfer(s.account, record.Seller, record.AssetID); err != nil {
		return fmt.Errorf("service: failed to return asset %s to seller: %w", record.AssetID, err)
	}

	record.Status = models.StatusCancelled
	if err := s.store.Update(record); err != nil {
		return fmt.Errorf("service: failed to update auction %d: %w", auctionID, err)
	}

	s.log.Append(models.Event{
		EventID:   utils.GenerateID(),
		Kind:      models.EventCancel,
		AuctionID: auctionID,
		AssetID:   record.AssetID,
		Actor:     caller,
		Amount:    decimal.Zero,
		Timestamp: s.now(),
	})
	s.saveSnapshot()

	return nil
}

// EndBid settles an auction whose window has elapsed. Any principal may
// trigger it. With a standing bid the asset goes to the winner and the
// highest bid is paid to the seller; an unbid auction returns the asset to
// the seller and moves no currency.
func (s *AuctionService) EndBid(auctionID uint64) (models.Auction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.Get(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: %w", err)
	}
	if s.now().Before(record.EndTime()) {
		return models.Auction{}, fmt.Errorf("service: auction %d open until %s: %w", auctionID, record.EndTime().Format(time.RFC3339), auctionerrors.ErrNotReachedEndTime)
	}
	if record.Status.Terminal() {
		return models.Auction{}, fmt.Errorf("service: auction %d is %s: %w", auctionID, record.Status, auctionerrors.ErrAlreadyEnded)
	}

	if record.HighestBidder != "" {
		if err := s.currency.Credit(record.Seller, record.HighestBid); err != nil {
			return models.Auction{}, fmt.Errorf("service: failed to pay seller %s: %w", record.Seller, err)
		}
		if err := s.custodian.Transfer(s.account, record.HighestBidder, record.AssetID); err != nil {
			return models.Auction{}, fmt.Errorf("service: failed to deliver asset %s to winner: %w", record.AssetID, err)
		}
	} else {
		if err := s.custodian.Transfer(s.account, record.Seller, record.AssetID); err != nil {
			return models.Auction{}, fmt.Errorf("service: failed to return asset %s to seller: %w", record.AssetID, err)
		}
	}

	record.Status = models.StatusEnded
	if err := s.store.Update(record); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to update auction %d: %w", auctionID, err)
	}

	s.log.Append(models.Event{
		EventID:   utils.GenerateID(),
		Kind:      models.EventEnd,
		AuctionID: auctionID,
		AssetID:   record.AssetID,
		Actor:     record.HighestBidder,
		Amount:    record.HighestBid,
		Timestamp: s.now(),
	})
	s.saveSnapshot()

	return record, nil
}

// WithdrawRefund pays out a principal's accumulated refund balance for an
// auction. The withdrawal is total: the entry goes to zero and a repeat call
// fails with ErrNoRefund.
func (s *AuctionService) WithdrawRefund(auctionID uint64, principal string) (decimal.Decimal, error) {
	if principal == "" {
		return decimal.Zero, fmt.Errorf("service: %w - missing principal", auctionerrors.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Get(auctionID); err != nil {
		return decimal.Zero, fmt.Errorf("service: %w", err)
	}

	balance := s.refunds.BalanceOf(auctionID, principal)
	if balance.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("service: auction %d principal %s: %w", auctionID, principal, auctionerrors.ErrNoRefund)
	}

	// Pay out before zeroing so a failed credit leaves the entry intact.
	if err := s.currency.Credit(principal, balance); err != nil {
		return decimal.Zero, fmt.Errorf("service: failed to credit refund to %s: %w", principal, err)
	}
	if _, err := s.refunds.Take(auctionID, principal); err != nil {
		return decimal.Zero, fmt.Errorf("service: failed to clear refund entry: %w", err)
	}

	s.log.Append(models.Event{
		EventID:   utils.GenerateID(),
		Kind:      models.EventWithdraw,
		AuctionID: auctionID,
		Actor:     principal,
		Amount:    balance,
		Timestamp: s.now(),
	})
	s.saveSnapshot()

	return balance, nil
}

// GetAuction returns the record for an auction identifier.
func (s *AuctionService) GetAuction(auctionID uint64) (models.Auction, error) {
	record, err := s.store.Get(auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: %w", err)
	}
	return record, nil
}

// HighestBid returns the current winning amount for an auction.
func (s *AuctionService) HighestBid(auctionID uint64) (decimal.Decimal, error) {
	record, err := s.store.Get(auctionID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("service: %w", err)
	}
	return record.HighestBid, nil
}

// HighestBidder returns the current winning principal, "" when unbid.
func (s *AuctionService) HighestBidder(auctionID uint64) (string, error) {
	record, err := s.store.Get(auctionID)
	if err != nil {
		return "", fmt.Errorf("service: %w", err)
	}
	return record.HighestBidder, nil
}

// RefundBalance returns the refundable balance for (auctionID, principal).
func (s *AuctionService) RefundBalance(auctionID uint64, principal string) (decimal.Decimal, error) {
	if _, err := s.store.Get(auctionID); err != nil {
		return decimal.Zero, fmt.Errorf("service: %w", err)
	}
	return s.refunds.BalanceOf(auctionID, principal), nil
}

// EventsForAuction returns the lifecycle events recorded for an auction.
func (s *AuctionService) EventsForAuction(auctionID uint64) ([]models.Event, error) {
	if _, err := s.store.Get(auctionID); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return s.log.ByAuction(auctionID), nil
}

// saveSnapshot writes the current state to the persistence sink, if one is
// configured. Snapshot failures do not abort the already-committed
// transition; they are logged for the operator.
func (s *AuctionService) saveSnapshot() {
	if s.persist == nil {
		return
	}

	store, ok := s.store.(*repository.MemoryStore)
	refunds, okRefunds := s.refunds.(*escrow.MemoryLedger)
	if !ok || !okRefunds {
		return
	}

	auctions, nextID := store.Snapshot()
	snapshot := repository.Snapshot{
		NextID:   nextID,
		Auctions: auctions,
		Refunds:  refunds.Snapshot(),
	}
	if err := s.persist.Save(snapshot); err != nil {
		utils.Error("failed to save auction snapshot", map[string]any{"error": err.Error()})
	}
}
