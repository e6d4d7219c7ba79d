package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCardsEndpoint(t *testing.T) {
	srv := NewServer(Config{Addr: ":0"})
	req := httptest.NewRequest(http.MethodGet, "/api/cards", nil)
	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var cards []CardInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &cards); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(cards) != 22 {
		t.Errorf("got %d cards, want the 21 playable plus the opening sentinel", len(cards))
	}
	for _, c := range cards {
		if c.Name == "" || c.Kind == "" {
			t.Errorf("card %d is missing display fields: %+v", c.ID, c)
		}
	}
}

func TestJoinQRWithoutAddress(t *testing.T) {
	srv := NewServer(Config{Addr: ":0"})
	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/join/qr", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when no join address is configured", rec.Code)
	}
}

func TestJoinQRReturnsPNG(t *testing.T) {
	srv := NewServer(Config{Addr: ":0", JoinAddr: "example.com:9000"})
	rec := httptest.NewRecorder()
	srv.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/join/qr", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.Bytes()
	if len(body) < 8 || body[1] != 'P' || body[2] != 'N' || body[3] != 'G' {
		t.Error("body should be a PNG image")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CARTOGRAPH_WEB_ADDR", ":9191")
	t.Setenv("CARTOGRAPH_JOIN_ADDR", "play.example.com:9000")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.Addr != ":9191" || cfg.JoinAddr != "play.example.com:9000" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Setenv("CARTOGRAPH_WEB_ADDR", "")
	t.Setenv("CARTOGRAPH_JOIN_ADDR", "")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q, want the default", cfg.Addr)
	}
}
