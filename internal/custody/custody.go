package custody

import (
	"auction-engine/internal/auctionerrors"
	"fmt"
	"sync"
)

// AssetCustodian is the external unique-asset registry consumed by the
// auction engine. Transfers either fully succeed or fully fail.
type AssetCustodian interface {
	OwnerOf(assetID string) (string, error)
	Transfer(from, to, assetID string) error
}

// MemoryCustodian is a concurrency-safe in-memory AssetCustodian. It stands
// in for the real asset registry in main and in integration tests.
type MemoryCustodian struct {
	mu     sync.RWMutex
	owners map[string]string // key: assetID -> value: owning principal
}

// NewMemoryCustodian creates an empty in-memory custodian.
func NewMemoryCustodian() *MemoryCustodian {
	return &MemoryCustodian{owners: make(map[string]string)}
}

// Mint registers a new asset under the given owner. Intended for seeding
// and tests.
func (c *MemoryCustodian) Mint(assetID, owner string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.owners[assetID] = owner
}

// OwnerOf returns the current owner of an asset.
func (c *MemoryCustodian) OwnerOf(assetID string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	owner, ok := c.owners[assetID]
	if !ok {
		return "", fmt.Errorf("owner of asset %s: %w", assetID, auctionerrors.ErrAssetUnknown)
	}
	return owner, nil
}

// Transfer moves an asset from its current owner to another principal. It
// fails without effect unless from is the current owner.
func (c *MemoryCustodian) Transfer(from, to, assetID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	owner, ok := c.owners[assetID]
	if !ok {
		return fmt.Errorf("transfer asset %s: %w", assetID, auctionerrors.ErrAssetUnknown)
	}
	if owner != from {
		return fmt.Errorf("transfer asset %s from %s: %w", assetID, from, auctionerrors.ErrNotAssetOwner)
	}
	c.owners[assetID] = to
	return nil
}
