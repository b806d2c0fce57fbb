package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"baldr/internal/api"
	"baldr/internal/catalog"
	"baldr/internal/media"
	"baldr/internal/mediauri"
	"baldr/internal/services"
	"baldr/internal/testsupport"
)

const (
	songUUID     = "0b7b2c1e-6a4e-4a8f-9d39-8f3f1f6c2a10"
	partiturUUID = "9a2c6e0d-3c55-4d0a-8a7e-1b2f4c6d8e01"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newStore(t *testing.T) *catalog.SQLiteStore {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.MustUpsert(t, store,
		&media.Record{
			Ref: "Fuer-Elise", UUID: songUUID, Path: "songs/Fuer-Elise.mp3", Title: "Für Elise",
			Samples: []media.SampleSpec{{Ref: "thema", StartTime: 0, EndTime: 12}},
		},
		&media.Record{Ref: "Partitur", UUID: partiturUUID, Path: "scores/Partitur.png", Title: "Partitur", MultiPartCount: 11},
	)
	return store
}

func TestGetAssetByRefAndUUID(t *testing.T) {
	router := api.NewRouter(newStore(t), nil)

	for _, path := range []string{"/api/assets/ref/Fuer-Elise", "/api/assets/uuid/" + songUUID} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d body %s", path, rec.Code, rec.Body.String())
		}
		var got media.Record
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Ref != "Fuer-Elise" || len(got.Samples) != 1 {
			t.Fatalf("%s: unexpected record %+v", path, got)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%s: missing request id", path)
		}
	}
}

func TestGetAssetErrors(t *testing.T) {
	router := api.NewRouter(newStore(t), nil)
	tests := []struct {
		path   string
		status int
	}{
		{path: "/api/assets/ref/Fehlt", status: http.StatusNotFound},
		{path: "/api/assets/http/Fuer-Elise", status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.status {
			t.Fatalf("%s: status %d, want %d", tt.path, rec.Code, tt.status)
		}
		var body api.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Error == "" {
			t.Fatalf("%s: unexpected body %s", tt.path, rec.Body.String())
		}
	}
}

func TestListAssets(t *testing.T) {
	router := api.NewRouter(newStore(t), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assets", nil))
	var all api.AssetListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if all.Total != 2 || all.Assets[0].Ref != "Fuer-Elise" || all.Assets[0].Category != "audio" {
		t.Fatalf("unexpected list %+v", all)
	}
	if all.Assets[0].UpdatedAt == "" {
		t.Fatal("missing updatedAt")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/assets?q=elise", nil))
	var found api.AssetListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &found); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if found.Total != 1 || found.Assets[0].Ref != "Fuer-Elise" || found.Query != "elise" {
		t.Fatalf("unexpected search result %+v", found)
	}
}

func TestHealthcheck(t *testing.T) {
	router := api.NewRouter(newStore(t), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck?format=json", nil))
	var health api.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &health); err != nil || health.Assets != 2 {
		t.Fatalf("unexpected health %s", rec.Body.String())
	}
}

func TestHTTPClientAgainstRouter(t *testing.T) {
	srv := httptest.NewServer(api.NewRouter(newStore(t), nil))
	defer srv.Close()

	client := catalog.NewHTTPClient(srv.URL, srv.Client())
	rec, err := client.FetchAssetByAuthority(context.Background(), mediauri.MustParse("uuid:"+partiturUUID+"#2-3"))
	if err != nil {
		t.Fatalf("FetchAssetByAuthority: %v", err)
	}
	if rec.Ref != "Partitur" || rec.MultiPartCount != 11 {
		t.Fatalf("unexpected record %+v", rec)
	}

	_, err = client.FetchAssetByAuthority(context.Background(), mediauri.MustParse("ref:Fehlt"))
	var notFound *catalog.NotFoundError
	if !errors.As(err, &notFound) || !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestServerStartStop(t *testing.T) {
	srv, err := api.NewServer("127.0.0.1:0", newStore(t), nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()

	resp, err := http.Get("http://" + srv.Addr() + "/healthcheck")
	if err != nil {
		t.Fatalf("GET healthcheck: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	if _, err := api.NewServer("", newStore(t), nil); err == nil {
		t.Fatal("expected error for empty bind")
	}
}
