package escrow

import (
	"auction-engine/internal/auctionerrors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// RefundLedger accumulates refundable balances for outbid bidders, keyed by
// (auctionID, principal). Credit is only ever additive and only the
// lifecycle controller calls it; a balance leaves the ledger solely through
// Take, which pays out the whole entry at once.
type RefundLedger interface {
	Credit(auctionID uint64, principal string, amount decimal.Decimal)
	BalanceOf(auctionID uint64, principal string) decimal.Decimal
	Take(auctionID uint64, principal string) (decimal.Decimal, error)
}

// MemoryLedger is a concurrency-safe in-memory RefundLedger.
type MemoryLedger struct {
	mu       sync.RWMutex
	balances map[uint64]map[string]decimal.Decimal // key: auctionID -> principal -> refundable amount
}

// NewMemoryLedger creates an empty refund ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{balances: make(map[uint64]map[string]decimal.Decimal)}
}

// Credit adds amount to the principal's refundable balance for the auction.
// A principal outbid more than once accumulates; nothing is ever overwritten.
func (l *MemoryLedger) Credit(auctionID uint64, principal string, amount decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	byPrincipal, ok := l.balances[auctionID]
	if !ok {
		byPrincipal = make(map[string]decimal.Decimal)
		l.balances[auctionID] = byPrincipal
	}
	byPrincipal[principal] = byPrincipal[principal].Add(amount)
}

// BalanceOf returns the refundable balance for (auctionID, principal), zero
// when no entry exists.
func (l *MemoryLedger) BalanceOf(auctionID uint64, principal string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[auctionID][principal]
}

// Take zeroes the entry and returns the full balance. Withdrawal is total:
// no partial amounts, and a second Take fails with ErrNoRefund.
func (l *MemoryLedger) Take(auctionID uint64, principal string) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balances[auctionID][principal]
	if balance.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("take refund for auction %d principal %s: %w", auctionID, principal, auctionerrors.ErrNoRefund)
	}
	l.balances[auctionID][principal] = decimal.Zero
	return balance, nil
}

// TotalFor returns the sum of all refundable balances for an auction. Used
// to check fund conservation.
func (l *MemoryLedger) TotalFor(auctionID uint64) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, balance := range l.balances[auctionID] {
		total = total.Add(balance)
	}
	return total
}

// Snapshot copies the full balance table for persistence.
func (l *MemoryLedger) Snapshot() map[uint64]map[string]decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[uint64]map[string]decimal.Decimal, len(l.balances))
	for auctionID, byPrincipal := range l.balances {
		copied := make(map[string]decimal.Decimal, len(byPrincipal))
		for principal, balance := range byPrincipal {
			copied[principal] = balance
		}
		out[auctionID] = copied
	}
	return out
}

// Restore replaces the balance table from a persisted snapshot.
func (l *MemoryLedger) Restore(balances map[uint64]map[string]decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances = make(map[uint64]map[string]decimal.Decimal, len(balances))
	for auctionID, byPrincipal := range balances {
		copied := make(map[string]decimal.Decimal, len(byPrincipal))
		for principal, balance := range byPrincipal {
			copied[principal] = balance
		}
		l.balances[auctionID] = copied
	}
}
