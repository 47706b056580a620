package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/russellmwolf/discord-buttons/internal/clicklog"
)

func testRouterWithClicks(t *testing.T) http.Handler {
	t.Helper()
	store, err := clicklog.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	seed := []*clicklog.Click{
		{CustomID: "go", Kind: clicklog.KindButton, UserID: "u1", CreatedAt: time.Now()},
		{CustomID: "go", Kind: clicklog.KindButton, UserID: "u2", CreatedAt: time.Now()},
		{CustomID: "hey", Kind: clicklog.KindMenu, UserID: "u1", Values: "reload", CreatedAt: time.Now()},
	}
	for _, c := range seed {
		if err := store.Record(c); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return newRouter(store)
}

func TestStart_NilStore(t *testing.T) {
	err := Start(context.Background(), StartOpts{Store: nil})
	if err == nil {
		t.Fatal("expected error for nil store")
	}
	if !strings.Contains(err.Error(), "store is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "store is required")
	}
}

func TestHealthz(t *testing.T) {
	router := testRouterWithClicks(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRecentEndpoint(t *testing.T) {
	router := testRouterWithClicks(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clicks/recent?limit=2", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Clicks []clicklog.Click `json:"clicks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Clicks) != 2 {
		t.Errorf("len(clicks) = %d, want 2", len(resp.Clicks))
	}
}

func TestStatsEndpoint(t *testing.T) {
	router := testRouterWithClicks(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clicks/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Hours       int                      `json:"hours"`
		Total       int64                    `json:"total"`
		UniqueUsers int64                    `json:"unique_users"`
		ByCustomID  []clicklog.CustomIDCount `json:"by_custom_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Hours != 24 {
		t.Errorf("hours = %d, want 24", resp.Hours)
	}
	if resp.Total != 3 {
		t.Errorf("total = %d, want 3", resp.Total)
	}
	if resp.UniqueUsers != 2 {
		t.Errorf("unique_users = %d, want 2", resp.UniqueUsers)
	}
	if len(resp.ByCustomID) != 2 || resp.ByCustomID[0].CustomID != "go" {
		t.Errorf("by_custom_id = %+v, want go first", resp.ByCustomID)
	}
}

func TestStatsEndpoint_BadHours(t *testing.T) {
	router := testRouterWithClicks(t)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/clicks/stats?hours=zero", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
