package main

import (
	auction "auction-engine/internal/auctionService"
	"auction-engine/internal/custody"
	"auction-engine/internal/escrow"
	"auction-engine/internal/events"
	"auction-engine/internal/ledger"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

func main() {

	engineAccount := getEngineAccount()

	store := repository.NewMemoryStore()
	refunds := escrow.NewMemoryLedger()
	currency := ledger.NewMemoryLedger(engineAccount)
	custodian := custody.NewMemoryCustodian()
	eventLog := events.NewMemoryLog()

	persist := setupPersistence(store, refunds)

	prepopulateAccounts(currency, custodian)

	auctionSvc := auction.NewAuctionService(store, refunds, currency, custodian, eventLog, persist, engineAccount)

	router := server.SetupRouter(auctionSvc)

	port := getPort()
	fmt.Printf("Starting auction engine on %s...\n", port)
	if err := router.Run(port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// setupPersistence restores the last snapshot when a data directory is
// configured. With no AUCTION_DATA_DIR the engine runs purely in memory.
func setupPersistence(store *repository.MemoryStore, refunds *escrow.MemoryLedger) *repository.Persistence {
	dataDir := os.Getenv("AUCTION_DATA_DIR")
	if dataDir == "" {
		return nil
	}

	persist, err := repository.NewPersistence(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open data dir %s: %v\n", dataDir, err)
		os.Exit(1)
	}

	snapshot, found, err := persist.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load snapshot from %s: %v\n", dataDir, err)
		os.Exit(1)
	}
	if found {
		store.Restore(snapshot.Auctions, snapshot.NextID)
		refunds.Restore(snapshot.Refunds)
	}
	return persist
}

// prepopulateAccounts seeds demo principals and assets so the engine is
// usable out of the box.
func prepopulateAccounts(currency *ledger.MemoryLedger, custodian *custody.MemoryCustodian) {
	principals := []string{"seller1", "seller2", "bidder1", "bidder2", "bidder3"}
	for _, p := range principals {
		currency.Fund(p, decimal.NewFromInt(10000))
	}

	custodian.Mint("asset1", "seller1")
	custodian.Mint("asset2", "seller2")
}

// getEngineAccount returns the escrow account name from env or a default
func getEngineAccount() string {
	if account := os.Getenv("AUCTION_ENGINE_ACCOUNT"); account != "" {
		return account
	}
	return "auction-engine"
}

// getPort returns the server port from env or defaults to ":8080"
func getPort() string {
	if p := os.Getenv("PORT"); p != "" {
		return fmt.Sprintf(":%s", p)
	}
	return ":8080"
}
