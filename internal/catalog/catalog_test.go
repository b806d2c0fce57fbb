package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"baldr/internal/config"
	"baldr/internal/media"
	"baldr/internal/mediauri"
	"baldr/internal/services"
)

const floeteUUID = "5b0f1c62-41f1-4b21-8d7c-2d3b6a1e9c44"

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestStoreUpsertAndFetch(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := &media.Record{Ref: "ref:IN_Floete", UUID: floeteUUID, Path: "instruments/Floete.jpg", Title: "Flöte"}
	created, err := store.Upsert(ctx, rec)
	if err != nil || !created {
		t.Fatalf("Upsert: created=%v err=%v", created, err)
	}

	got, err := store.FetchAssetByAuthority(ctx, mediauri.MustParse("ref:IN_Floete"))
	if err != nil {
		t.Fatalf("fetch by ref: %v", err)
	}
	if got.Ref != "IN_Floete" || got.Title != "Flöte" {
		t.Fatalf("unexpected record %+v", got)
	}

	byUUID, err := store.FetchAssetByAuthority(ctx, mediauri.MustParse("uuid:"+floeteUUID))
	if err != nil || byUUID.Ref != "IN_Floete" {
		t.Fatalf("fetch by uuid: %+v %v", byUUID, err)
	}

	rec.Title = "Querflöte"
	created, err = store.Upsert(ctx, rec)
	if err != nil || created {
		t.Fatalf("second Upsert: created=%v err=%v", created, err)
	}
	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Querflöte" || entries[0].Category != "image" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].ID == "" {
		t.Fatal("expected ulid id")
	}
}

func TestStoreNotFoundAndDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.FetchAssetByAuthority(ctx, mediauri.MustParse("ref:Missing"))
	var notFound *NotFoundError
	if !errors.As(err, &notFound) || !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	if _, err := store.Upsert(ctx, &media.Record{Ref: "A", UUID: floeteUUID, Filename: "a.mp3"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Delete(ctx, "ref:A"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Fatalf("count after delete = %d", n)
	}
	if err := store.Delete(ctx, "A"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestStoreRejectsInvalidRecord(t *testing.T) {
	store := openTestStore(t)
	cases := []*media.Record{
		{Ref: "has space", UUID: floeteUUID},
		{Ref: "ok", UUID: "not-a-uuid"},
		{Ref: "", UUID: floeteUUID},
		{Ref: "ok", UUID: floeteUUID, MultiPartCount: 1000},
	}
	for _, rec := range cases {
		if _, err := store.Upsert(context.Background(), rec); !errors.Is(err, services.ErrValidation) {
			t.Errorf("record %+v: expected validation error, got %v", rec, err)
		}
	}
}

func TestScanDirCountsParts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "scores", "Partitur.png"), "1")
	writeFile(t, filepath.Join(root, "scores", "Partitur_no002.png"), "2")
	writeFile(t, filepath.Join(root, "scores", "Partitur_no003.png"), "3")
	writeFile(t, filepath.Join(root, "scores", "Partitur.png.yml"), "ref: Partitur\nuuid: "+floeteUUID+"\ncomposer: ref:PR_Mozart\n")
	writeFile(t, filepath.Join(root, "orphan.mp3.yml"), "ref: Orphan\n")
	writeFile(t, filepath.Join(root, ".git", "x.mp3"), "")
	writeFile(t, filepath.Join(root, ".git", "x.mp3.yml"), "ref: Hidden\n")

	sidecars, err := ScanDir(root)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(sidecars) != 1 {
		t.Fatalf("expected one sidecar, got %d", len(sidecars))
	}
	rec := sidecars[0].Record
	if rec.Path != "scores/Partitur.png" || rec.Extension != "png" || rec.MultiPartCount != 3 {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Meta["composer"] != "ref:PR_Mozart" {
		t.Fatalf("meta not kept: %#v", rec.Meta)
	}
}

func TestDirClient(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Floete.jpg"), "")
	writeFile(t, filepath.Join(root, "Floete.jpg.yml"), "ref: IN_Floete\nuuid: "+floeteUUID+"\ntitle: Flöte\n")

	client := NewDirClient(root)
	ctx := context.Background()
	rec, err := client.FetchAssetByAuthority(ctx, mediauri.MustParse("uuid:"+floeteUUID))
	if err != nil || rec.Ref != "IN_Floete" {
		t.Fatalf("fetch: %+v %v", rec, err)
	}
	if _, err := client.FetchAssetByAuthority(ctx, mediauri.MustParse("ref:Nope")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDirClientDuplicateRefs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.mp3"), "")
	writeFile(t, filepath.Join(root, "a.mp3.yml"), "ref: Same\n")
	writeFile(t, filepath.Join(root, "b.mp3"), "")
	writeFile(t, filepath.Join(root, "b.mp3.yml"), "ref: Same\n")

	_, err := NewDirClient(root).FetchAssetByAuthority(context.Background(), mediauri.MustParse("ref:Same"))
	if err == nil || !strings.Contains(err.Error(), "duplicate ref") {
		t.Fatalf("expected duplicate ref error, got %v", err)
	}
}

func TestImportMintsAndWritesBack(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Für Elise.mp3"), "")
	writeFile(t, filepath.Join(root, "Für Elise.mp3.yml"), "composer: Beethoven\n")
	writeFile(t, filepath.Join(root, "bad.mp3"), "")
	writeFile(t, filepath.Join(root, "bad.mp3.yml"), "ref: bad ref\nuuid: "+floeteUUID+"\n")

	store := openTestStore(t)
	report, err := Import(context.Background(), store, root, ImportOptions{WriteBack: true})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.Scanned != 2 || report.Created != 1 || len(report.Rejected) != 1 || report.Minted != 1 {
		t.Fatalf("unexpected report %+v", report)
	}

	rec, err := store.FetchAssetByAuthority(context.Background(), mediauri.MustParse("ref:Fuer_Elise"))
	if err != nil {
		t.Fatalf("fetch imported: %v", err)
	}
	if rec.UUID == "" || rec.Title != "Fuer Elise" {
		t.Fatalf("unexpected imported record %+v", rec)
	}

	data, err := os.ReadFile(filepath.Join(root, "Für Elise.mp3.yml"))
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	if !strings.Contains(string(data), "uuid: "+rec.UUID) || !strings.Contains(string(data), "composer: Beethoven") {
		t.Fatalf("sidecar not written back:\n%s", data)
	}

	report, err = Import(context.Background(), store, root, ImportOptions{})
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if report.Updated != 1 || report.Minted != 0 {
		t.Fatalf("unexpected second report %+v", report)
	}
}

func TestImportRejectsConcurrentRun(t *testing.T) {
	store := openTestStore(t)
	held := flock.New(store.Path() + ".lock")
	if ok, err := held.TryLock(); !ok || err != nil {
		t.Fatalf("lock: %v %v", ok, err)
	}
	defer func() { _ = held.Unlock() }()

	if _, err := Import(context.Background(), store, t.TempDir(), ImportOptions{}); err == nil {
		t.Fatal("expected lock conflict")
	}
}

func TestHTTPClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/assets/ref/IN_Floete":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(media.Record{Ref: "IN_Floete", UUID: floeteUUID, Filename: "Floete.jpg"})
		case "/api/assets/ref/Broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL+"/", server.Client())
	ctx := context.Background()
	rec, err := client.FetchAssetByAuthority(ctx, mediauri.MustParse("ref:IN_Floete#complete"))
	if err != nil || rec.Filename != "Floete.jpg" {
		t.Fatalf("fetch: %+v %v", rec, err)
	}
	if _, err := client.FetchAssetByAuthority(ctx, mediauri.MustParse("ref:Missing")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := client.FetchAssetByAuthority(ctx, mediauri.MustParse("ref:Broken")); !errors.Is(err, services.ErrExternal) {
		t.Fatalf("expected external error, got %v", err)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Backend = config.BackendDir
	cfg.Catalog.MediaDir = t.TempDir()
	client, closeFn, err := Open(&cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()
	if _, ok := client.(*DirClient); !ok {
		t.Fatalf("expected DirClient, got %T", client)
	}

	cfg.Catalog.Backend = "mongodb"
	if _, _, err := Open(&cfg); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
