package integrationtests

import (
	auction "auction-engine/internal/auctionService"
	"auction-engine/internal/custody"
	"auction-engine/internal/escrow"
	"auction-engine/internal/events"
	"auction-engine/internal/ledger"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const engineAccount = "auction-engine"

// TestEnv bundles the router with the collaborators and a controllable
// clock so tests can fund principals, mint assets and move time.
type TestEnv struct {
	Router    *gin.Engine
	Currency  *ledger.MemoryLedger
	Custodian *custody.MemoryCustodian
	Clock     time.Time

	svc *auction.AuctionService
}

// Advance moves the engine clock forward.
func (e *TestEnv) Advance(d time.Duration) {
	e.Clock = e.Clock.Add(d)
}

// SetupTestEnv initializes the full stack with in-memory collaborators,
// seeded with the standard principals and assets used across the tests.
func SetupTestEnv() *TestEnv {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	refunds := escrow.NewMemoryLedger()
	currency := ledger.NewMemoryLedger(engineAccount)
	custodian := custody.NewMemoryCustodian()
	eventLog := events.NewMemoryLog()

	for _, p := range []string{"seller1", "seller2", "bidder1", "bidder2", "bidder3"} {
		currency.Fund(p, decimal.NewFromInt(10000))
	}
	custodian.Mint("asset1", "seller1")
	custodian.Mint("asset2", "seller2")

	svc := auction.NewAuctionService(store, refunds, currency, custodian, eventLog, nil, engineAccount)

	env := &TestEnv{
		Currency:  currency,
		Custodian: custodian,
		Clock:     time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
		svc:       svc,
	}
	svc.SetClock(func() time.Time { return env.Clock })
	env.Router = server.SetupRouter(svc)
	return env
}

// ExecuteRequestAndParse executes an HTTP request on the router and parses
// the JSON envelope, returning the data payload for 2xx responses.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if w.Code >= 200 && w.Code < 300 {
			if data, ok := resp["data"].(map[string]any); ok {
				return data, w
			}
		}
	}

	return resp, w
}
