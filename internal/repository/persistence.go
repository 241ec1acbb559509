package repository

import (
	model "auction-engine/internal/models"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/shopspring/decimal"
)

const snapshotFile = "auctions.cbor"

// Snapshot is the persisted state: the record table, the identifier counter
// and the two-level refund balance map. Nothing else is persisted.
type Snapshot struct {
	NextID   uint64                                `cbor:"next_id"`
	Auctions []model.Auction                       `cbor:"auctions"`
	Refunds  map[uint64]map[string]decimal.Decimal `cbor:"refunds"`
}

// Persistence writes CBOR snapshots of the engine state to a data directory.
// Saves go through a temp file and an atomic rename so a crash leaves either
// the old snapshot or the new one, never a torn file.
type Persistence struct {
	dataDir string
	mu      sync.Mutex // protects concurrent writes to the filesystem
}

// NewPersistence initializes a persistence handler, creating the data
// directory if needed.
func NewPersistence(dataDir string) (*Persistence, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dataDir, err)
	}
	return &Persistence{dataDir: dataDir}, nil
}

// Save writes the snapshot to disk.
func (p *Persistence) Save(snapshot Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, err := cbor.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	filePath := filepath.Join(p.dataDir, snapshotFile)
	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return os.Rename(tempPath, filePath)
}

// Load reads the last snapshot. A missing file is not an error: it returns
// an empty snapshot and false.
func (p *Persistence) Load() (Snapshot, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	raw, err := os.ReadFile(filepath.Join(p.dataDir, snapshotFile))
	if errors.Is(err, fs.ErrNotExist) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := cbor.Unmarshal(raw, &snapshot); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, true, nil
}
