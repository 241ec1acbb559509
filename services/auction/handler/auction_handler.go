package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/services/auction/helpers"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AuctionServiceInterface interface {
	StartBid(seller, assetID string, duration time.Duration, startingPrice decimal.Decimal) (model.Auction, error)
	PlaceBid(auctionID uint64, bidder string, amount decimal.Decimal) (model.Auction, error)
	CancelBid(auctionID uint64, caller string) error
	EndBid(auctionID uint64) (model.Auction, error)
	WithdrawRefund(auctionID uint64, principal string) (decimal.Decimal, error)
	GetAuction(auctionID uint64) (model.Auction, error)
	RefundBalance(auctionID uint64, principal string) (decimal.Decimal, error)
	EventsForAuction(auctionID uint64) ([]model.Event, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// parseAuctionID reads the :auction_id path parameter.
func parseAuctionID(c *gin.Context) (uint64, error) {
	raw := c.Param("auction_id")
	auctionID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w - auction_id %q is not a valid identifier", auctionerrors.ErrInvalidInput, raw)
	}
	return auctionID, nil
}

// StartAuctionHandler handles POST /auctions
func (h *AuctionHandler) StartAuctionHandler(c *gin.Context) {
	var req helpers.StartAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "StartAuctionHandler", err)
		return
	}

	auction, err := h.service.StartBid(req.Seller, req.AssetID, time.Duration(req.DurationSeconds)*time.Second, req.StartingPrice)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("StartAuctionHandler: failed to start auction", map[string]any{
			"handler":  "StartAuctionHandler",
			"asset_id": req.AssetID,
			"seller":   req.Seller,
			"error":    err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.AuctionToResponse(auction), "auction started successfully")
	helpers.LogSuccess("StartAuctionHandler", "auction started successfully", map[string]any{
		"auction_id":     auction.AuctionID,
		"asset_id":       auction.AssetID,
		"seller":         auction.Seller,
		"starting_price": auction.StartingPrice.String(),
	})
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	auctionID, err := parseAuctionID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid auction id")
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auction, err := h.service.PlaceBid(auctionID, req.Bidder, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
			"auction_id": auctionID,
			"bidder":     req.Bidder,
			"amount":     req.Amount.String(),
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.AuctionToResponse(auction), "bid accepted")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted", map[string]any{
		"auction_id": auctionID,
		"bidder":     req.Bidder,
		"amount":     req.Amount.String(),
	})
}

// CancelAuctionHandler handles POST /auctions/:auction_id/cancel
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	auctionID, err := parseAuctionID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid auction id")
		return
	}

	var req helpers.CancelAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CancelAuctionHandler", err)
		return
	}

	if err := h.service.CancelBid(auctionID, req.Caller); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CancelAuctionHandler: cancel rejected", map[string]any{
			"auction_id": auctionID,
			"caller":     req.Caller,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"auction_id": auctionID}, "auction cancelled")
	helpers.LogSuccess("CancelAuctionHandler", "auction cancelled", map[string]any{
		"auction_id": auctionID,
		"caller":     req.Caller,
	})
}

// EndAuctionHandler handles POST /auctions/:auction_id/end. Settlement is
// permissionless, so there is no request body.
func (h *AuctionHandler) EndAuctionHandler(c *gin.Context) {
	auctionID, err := parseAuctionID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid auction id")
		return
	}

	auction, err := h.service.EndBid(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("EndAuctionHandler: settlement rejected", map[string]any{
			"auction_id": auctionID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.AuctionToResponse(auction), "auction settled")
	helpers.LogSuccess("EndAuctionHandler", "auction settled", map[string]any{
		"auction_id": auctionID,
		"winner":     auction.HighestBidder,
		"amount":     auction.HighestBid.String(),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID, err := parseAuctionID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid auction id")
		return
	}

	auction, err := h.service.GetAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.AuctionToResponse(auction), "auction retrieved successfully")
}

// GetAuctionEventsHandler handles GET /auctions/:auction_id/events
func (h *AuctionHandler) GetAuctionEventsHandler(c *gin.Context) {
	auctionID, err := parseAuctionID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid auction id")
		return
	}

	eventList, err := h.service.EventsForAuction(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	if eventList == nil {
		eventList = []model.Event{}
	}

	utils.JSONResponse(c, http.StatusOK, eventList, "events retrieved successfully")
}

// GetRefundHandler handles GET /auctions/:auction_id/refunds/:principal
func (h *AuctionHandler) GetRefundHandler(c *gin.Context) {
	auctionID, err := parseAuctionID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid auction id")
		return
	}
	principal := c.Param("principal")

	balance, err := h.service.RefundBalance(auctionID, principal)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	resp := helpers.RefundResponse{AuctionID: auctionID, Principal: principal, Amount: balance}
	utils.JSONResponse(c, http.StatusOK, resp, "refund balance retrieved successfully")
}

// WithdrawRefundHandler handles POST /auctions/:auction_id/refunds/:principal/withdraw
func (h *AuctionHandler) WithdrawRefundHandler(c *gin.Context) {
	auctionID, err := parseAuctionID(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err, "invalid auction id")
		return
	}
	principal := c.Param("principal")

	amount, err := h.service.WithdrawRefund(auctionID, principal)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("WithdrawRefundHandler: withdrawal rejected", map[string]any{
			"auction_id": auctionID,
			"principal":  principal,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.RefundResponse{AuctionID: auctionID, Principal: principal, Amount: amount}
	utils.JSONResponse(c, http.StatusOK, resp, "refund withdrawn successfully")
	helpers.LogSuccess("WithdrawRefundHandler", "refund withdrawn successfully", map[string]any{
		"auction_id": auctionID,
		"principal":  principal,
		"amount":     amount.String(),
	})
}
