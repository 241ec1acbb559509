package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an auction. Active transitions to exactly
// one of Cancelled or Ended; both are terminal.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusEnded     Status = "ended"
)

// Terminal reports whether no further lifecycle transition is possible.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusEnded
}

// Auction is the record of one English auction over a single asset.
// HighestBid starts at StartingPrice and strictly increases with each
// accepted bid; HighestBidder is empty until the first bid is accepted.
type Auction struct {
	AuctionID     uint64          `json:"auction_id"`
	AssetID       string          `json:"asset_id"`
	Seller        string          `json:"seller"`
	StartTime     time.Time       `json:"start_time"`
	Duration      time.Duration   `json:"duration_ns"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	HighestBid    decimal.Decimal `json:"highest_bid"`
	HighestBidder string          `json:"highest_bidder"`
	Status        Status          `json:"status"`
}

// EndTime is derived from the immutable start time and duration.
func (a Auction) EndTime() time.Time {
	return a.StartTime.Add(a.Duration)
}

// EventKind identifies a lifecycle transition in the event log.
type EventKind string

const (
	EventStart    EventKind = "start"
	EventBid      EventKind = "bid"
	EventCancel   EventKind = "cancel"
	EventEnd      EventKind = "end"
	EventWithdraw EventKind = "withdraw"
)

// Event is one append-only log entry. Actor holds the seller for Start,
// the bidder for Bid, the winner (or "" when unbid) for End and the
// withdrawing principal for Withdraw.
type Event struct {
	EventID         string          `json:"event_id"`
	Kind            EventKind       `json:"kind"`
	AuctionID       uint64          `json:"auction_id"`
	AssetID         string          `json:"asset_id,omitempty"`
	Actor           string          `json:"actor,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	DurationSeconds int64           `json:"duration_seconds,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
}
