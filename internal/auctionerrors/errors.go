package auctionerrors

import "errors"

// Lifecycle precondition failures. Every one of these aborts the operation
// with zero state mutation; callers distinguish them with errors.Is.
var (
	ErrAuctionNotFound   = errors.New("auction not found")
	ErrNotAssetOwner     = errors.New("caller does not own the asset")
	ErrNotSeller         = errors.New("caller is not the seller")
	ErrBidAlreadyJoined  = errors.New("someone already joined the bid")
	ErrAlreadyEnded      = errors.New("auction already ended")
	ErrBidTooLow         = errors.New("bid does not exceed highest bid")
	ErrTimedOut          = errors.New("auction window closed")
	ErrNotReachedEndTime = errors.New("auction window still open")
)

// Settlement and input errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoRefund     = errors.New("no refund balance to withdraw")
)

// Collaborator errors surfaced by the in-memory ledger and custodian
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAssetUnknown      = errors.New("asset unknown")
	ErrAccountUnknown    = errors.New("account unknown")
)
