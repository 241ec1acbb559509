package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"auction-engine/internal/auctionerrors"
	"auction-engine/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrNotAssetOwner):
		return http.StatusForbidden, "caller does not own the asset"
	case errors.Is(err, auctionerrors.ErrNotSeller):
		return http.StatusForbidden, "caller is not the seller"
	case errors.Is(err, auctionerrors.ErrBidAlreadyJoined):
		return http.StatusConflict, "auction already has a bid"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrAlreadyEnded):
		return http.StatusGone, "auction already ended"
	case errors.Is(err, auctionerrors.ErrTimedOut):
		return http.StatusGone, "auction window closed"
	case errors.Is(err, auctionerrors.ErrNotReachedEndTime):
		return http.StatusTooEarly, "auction window still open"
	case errors.Is(err, auctionerrors.ErrNoRefund):
		return http.StatusNotFound, "no refund balance"
	case errors.Is(err, auctionerrors.ErrInsufficientFunds):
		return http.StatusConflict, "insufficient funds"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
