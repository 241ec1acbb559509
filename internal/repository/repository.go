package repository

import (
	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"fmt"
	"sort"
	"sync"
)

// AuctionStore defines the record storage interface for the auction engine.
// Records are created once, mutated only through Update, and never deleted;
// terminal records stay queryable indefinitely.
type AuctionStore interface {
	Create(auction model.Auction) (uint64, error)
	Get(auctionID uint64) (model.Auction, error)
	Update(auction model.Auction) error
	List() []model.Auction
}

// MemoryStore is a concurrency-safe in-memory implementation of AuctionStore.
// Auction identifiers are assigned monotonically starting at 1.
type MemoryStore struct {
	mu       sync.RWMutex
	auctions map[uint64]model.Auction // key: auctionID -> value: record
	nextID   uint64
}

// NewMemoryStore creates a new in-memory store instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		auctions: make(map[uint64]model.Auction),
		nextID:   1,
	}
}

// Create assigns the next auction identifier, stores the record and returns
// the identifier.
func (s *MemoryStore) Create(auction model.Auction) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auction.AuctionID = s.nextID
	s.nextID++
	s.auctions[auction.AuctionID] = auction
	return auction.AuctionID, nil
}

// Get returns the record for an auction identifier.
func (s *MemoryStore) Get(auctionID uint64) (model.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	auction, ok := s.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %d: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// Update replaces an existing record.
func (s *MemoryStore) Update(auction model.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.auctions[auction.AuctionID]; !ok {
		return fmt.Errorf("update auction %d: %w", auction.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	s.auctions[auction.AuctionID] = auction
	return nil
}

// List returns all records ordered by auction identifier.
func (s *MemoryStore) List() []model.Auction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Auction, 0, len(s.auctions))
	for _, auction := range s.auctions {
		out = append(out, auction)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AuctionID < out[j].AuctionID })
	return out
}

// Snapshot returns all records plus the next identifier for persistence.
func (s *MemoryStore) Snapshot() ([]model.Auction, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Auction, 0, len(s.auctions))
	for _, auction := range s.auctions {
		out = append(out, auction)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AuctionID < out[j].AuctionID })
	return out, s.nextID
}

// Restore replaces the store contents from a persisted snapshot.
func (s *MemoryStore) Restore(auctions []model.Auction, nextID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.auctions = make(map[uint64]model.Auction, len(auctions))
	for _, auction := range auctions {
		s.auctions[auction.AuctionID] = auction
	}
	if nextID < 1 {
		nextID = 1
	}
	s.nextID = nextID
}
