package helpers

import (
	model "auction-engine/internal/models"
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs
type StartAuctionRequest struct {
	Seller          string          `json:"seller" binding:"required"`
	AssetID         string          `json:"asset_id" binding:"required"`
	DurationSeconds int64           `json:"duration_seconds" binding:"required,gt=0"`
	StartingPrice   decimal.Decimal `json:"starting_price" binding:"required"`
}

type PlaceBidRequest struct {
	Bidder string          `json:"bidder" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type CancelAuctionRequest struct {
	Caller string `json:"caller" binding:"required"`
}

// Response DTOs
type AuctionResponse struct {
	AuctionID       uint64          `json:"auction_id"`
	AssetID         string          `json:"asset_id"`
	Seller          string          `json:"seller"`
	StartTime       string          `json:"start_time"`
	EndTime         string          `json:"end_time"`
	DurationSeconds int64           `json:"duration_seconds"`
	StartingPrice   decimal.Decimal `json:"starting_price"`
	HighestBid      decimal.Decimal `json:"highest_bid"`
	HighestBidder   string          `json:"highest_bidder"`
	Status          string          `json:"status"`
}

type RefundResponse struct {
	AuctionID uint64          `json:"auction_id"`
	Principal string          `json:"principal"`
	Amount    decimal.Decimal `json:"amount"`
}

// AuctionToResponse converts an auction record to its HTTP representation.
func AuctionToResponse(a model.Auction) AuctionResponse {
	return AuctionResponse{
		AuctionID:       a.AuctionID,
		AssetID:         a.AssetID,
		Seller:          a.Seller,
		StartTime:       a.StartTime.UTC().Format(time.RFC3339),
		EndTime:         a.EndTime().UTC().Format(time.RFC3339),
		DurationSeconds: int64(a.Duration / time.Second),
		StartingPrice:   a.StartingPrice,
		HighestBid:      a.HighestBid,
		HighestBidder:   a.HighestBidder,
		Status:          string(a.Status),
	}
}
