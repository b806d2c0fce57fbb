package testsupport

import (
	"context"
	"sync"
	"sync/atomic"

	"baldr/internal/catalog"
	"baldr/internal/media"
	"baldr/internal/mediauri"
)

// FakeCatalog is an in-memory catalog.Client that counts fetches. Set Gate to
// make every fetch wait until the channel is closed.
type FakeCatalog struct {
	Gate chan struct{}

	mu      sync.Mutex
	records map[string]*media.Record
	calls   map[string]int
	total   atomic.Int64
}

func NewFakeCatalog(records ...*media.Record) *FakeCatalog {
	f := &FakeCatalog{
		records: make(map[string]*media.Record),
		calls:   make(map[string]int),
	}
	for _, rec := range records {
		f.Add(rec)
	}
	return f
}

// Add registers rec under its ref and uuid.
func (f *FakeCatalog) Add(rec *media.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[mediauri.SchemeRef+":"+mediauri.RemoveScheme(rec.Ref)] = rec
	if rec.UUID != "" {
		f.records[mediauri.SchemeUUID+":"+mediauri.RemoveScheme(rec.UUID)] = rec
	}
}

// FetchAssetByAuthority implements catalog.Client.
func (f *FakeCatalog) FetchAssetByAuthority(ctx context.Context, uri mediauri.URI) (*media.Record, error) {
	f.total.Add(1)
	key := uri.WithoutFragment()
	f.mu.Lock()
	f.calls[key]++
	rec, ok := f.records[key]
	f.mu.Unlock()

	if f.Gate != nil {
		select {
		case <-f.Gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return nil, &catalog.NotFoundError{URI: key}
	}
	out := *rec
	return &out, nil
}

// Calls returns the number of fetches for one URI.
func (f *FakeCatalog) Calls(uri string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[uri]
}

// Total returns the number of fetches overall.
func (f *FakeCatalog) Total() int {
	return int(f.total.Load())
}
