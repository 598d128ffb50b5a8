package httpapi

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stumpline/cricket-auction/internal/infrastructure/repository/memory"
	"github.com/stumpline/cricket-auction/internal/platform/id"
	"github.com/stumpline/cricket-auction/internal/platform/logging"
	"github.com/stumpline/cricket-auction/internal/usecase"
)

func newTestRouter(t *testing.T, adminToken string) http.Handler {
	t.Helper()

	players := memory.NewPlayerRepository(memory.SeedPlayers())
	teams := memory.NewTeamRepository(memory.SeedTeams())
	ledger := memory.NewLedger(players, teams)

	auctionSvc := usecase.NewAuctionService(players, teams, ledger, id.NewRandomGenerator(), logging.NewNop())
	if err := auctionSvc.Load(t.Context()); err != nil {
		t.Fatalf("load auction state: %v", err)
	}
	playerSvc := usecase.NewPlayerService(players, auctionSvc, id.NewRandomGenerator())
	teamSvc := usecase.NewTeamService(teams, players, auctionSvc, id.NewRandomGenerator())
	rosterSvc := usecase.NewRosterSheetService(auctionSvc, playerSvc, nil, logging.NewNop())

	handler := NewHandler(auctionSvc, playerSvc, teamSvc, rosterSvc, nil, logging.NewNop())
	return NewRouter(handler, slog.New(slog.DiscardHandler), []string{"*"}, adminToken)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_SellFlow(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/v1/auction/select", `{"player_id":"player_kohli"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("select player: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/auction/bid", `{"team_id":"team_mi","amount":2000000}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("place bid: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/auction/bid", `{"team_id":"team_csk","amount":2500000}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("raise bid: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/auction/sold", `{"player_id":"player_kohli","team_id":"team_csk","amount":2500000}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("sell player: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %s", rec.Body.String())
	}
	if got, _ := data["amountDisplay"].(string); got != "25,00,000" {
		t.Fatalf("expected amountDisplay 25,00,000, got %q", got)
	}
	if got, _ := data["teamName"].(string); got != "Chennai Super Kings" {
		t.Fatalf("expected teamName Chennai Super Kings, got %q", got)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/teams/team_csk", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get team: expected 200, got %d", rec.Code)
	}
	body = decodeEnvelope(t, rec)
	data = body["data"].(map[string]any)
	teamObj := data["team"].(map[string]any)
	if got, _ := teamObj["currentBudget"].(float64); got != 7_500_000 {
		t.Fatalf("expected current budget 7500000, got %v", got)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/auction/history", "", nil)
	body = decodeEnvelope(t, rec)
	entries, ok := body["data"].([]any)
	if !ok || len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %s", rec.Body.String())
	}
}

func TestRouter_BidBelowBaseIsBadRequest(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodPost, "/v1/auction/select", `{"player_id":"player_kohli"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("select player: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/auction/bid", `{"team_id":"team_mi","amount":100}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	errorObj := body["error"].(map[string]any)
	items := errorObj["errors"].([]any)
	first := items[0].(map[string]any)
	if got, _ := first["reason"].(string); got != "invalidBid" {
		t.Fatalf("expected reason invalidBid, got %q", got)
	}
}

func TestRouter_AdminTokenGuardsMutations(t *testing.T) {
	router := newTestRouter(t, "sekret")

	rec := doJSON(t, router, http.MethodGet, "/v1/players", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public read should not need token, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/auction/select", `{"player_id":"player_kohli"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/auction/select", `{"player_id":"player_kohli"}`,
		map[string]string{"X-Admin-Token": "sekret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UnknownPlayerIsNotFound(t *testing.T) {
	router := newTestRouter(t, "")

	rec := doJSON(t, router, http.MethodGet, "/v1/players/player_nobody", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
