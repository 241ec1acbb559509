package ledger

import (
	"auction-engine/internal/auctionerrors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

// CurrencyLedger is the external fungible-currency ledger consumed by the
// auction engine. Debit moves funds out of a principal's account into the
// engine's escrow pool; Credit pays out of the pool. Either call fully
// succeeds or fully fails.
type CurrencyLedger interface {
	Debit(from string, amount decimal.Decimal) error
	Credit(to string, amount decimal.Decimal) error
}

// MemoryLedger is a concurrency-safe in-memory CurrencyLedger. Debited
// funds accumulate under a named escrow account so the total supply is
// conserved, mirroring how a token contract would hold escrowed balances.
type MemoryLedger struct {
	mu            sync.RWMutex
	balances      map[string]decimal.Decimal // key: principal -> value: balance
	escrowAccount string
}

// NewMemoryLedger creates an in-memory ledger whose escrow pool lives under
// escrowAccount.
func NewMemoryLedger(escrowAccount string) *MemoryLedger {
	return &MemoryLedger{
		balances:      map[string]decimal.Decimal{escrowAccount: decimal.Zero},
		escrowAccount: escrowAccount,
	}
}

// Fund adds balance to a principal's account. Intended for seeding and tests.
func (l *MemoryLedger) Fund(principal string, amount decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[principal] = l.balances[principal].Add(amount)
}

// BalanceOf returns the current balance of a principal.
func (l *MemoryLedger) BalanceOf(principal string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[principal]
}

// Debit moves amount from the principal's account into the escrow pool.
func (l *MemoryLedger) Debit(from string, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("debit %s from %s: %w", amount, from, auctionerrors.ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[from]
	if !ok {
		return fmt.Errorf("debit from %s: %w", from, auctionerrors.ErrAccountUnknown)
	}
	if balance.LessThan(amount) {
		return fmt.Errorf("debit %s from %s (balance %s): %w", amount, from, balance, auctionerrors.ErrInsufficientFunds)
	}

	l.balances[from] = balance.Sub(amount)
	l.balances[l.escrowAccount] = l.balances[l.escrowAccount].Add(amount)
	return nil
}

// Credit moves amount from the escrow pool to the principal's account.
func (l *MemoryLedger) Credit(to string, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("credit %s to %s: %w", amount, to, auctionerrors.ErrInvalidInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	pool := l.balances[l.escrowAccount]
	if pool.LessThan(amount) {
		return fmt.Errorf("credit %s to %s (escrow pool %s): %w", amount, to, pool, auctionerrors.ErrInsufficientFunds)
	}

	l.balances[l.escrowAccount] = pool.Sub(amount)
	l.balances[to] = l.balances[to].Add(amount)
	return nil
}
