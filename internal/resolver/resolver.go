package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"baldr/internal/catalog"
	"baldr/internal/logging"
	"baldr/internal/media"
	"baldr/internal/mediauri"
	"baldr/internal/multipart"
	"baldr/internal/services"
)

const defaultConcurrency = 8

// Resolver caches resolved assets. It is safe for concurrent use.
type Resolver struct {
	client      catalog.Client
	logger      *slog.Logger
	httpBaseURL string
	concurrency int

	group   singleflight.Group
	fetches atomic.Int64

	mu        sync.RWMutex
	assets    map[string]*media.Asset
	order     []*media.Asset
	assigned  map[*media.Asset]bool
	shortcuts *media.ShortcutManager
}

// Option configures a Resolver.
type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHTTPBaseURL sets the URL prefix of asset HTTP URLs.
func WithHTTPBaseURL(url string) Option {
	return func(r *Resolver) { r.httpBaseURL = url }
}

// WithConcurrency bounds the number of simultaneous catalog fetches in ResolveAll.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func New(client catalog.Client, opts ...Option) *Resolver {
	r := &Resolver{
		client:      client,
		logger:      logging.NewNop(),
		concurrency: defaultConcurrency,
		assets:      make(map[string]*media.Asset),
		assigned:    make(map[*media.Asset]bool),
		shortcuts:   media.NewShortcutManager(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "resolver")
	return r
}

// ResolveAsset returns the asset behind uri, fetching it from the catalog on
// first use. The fragment is ignored. A missing catalog record yields
// *AssetNotFoundError, or (nil, nil) when lenient is set.
func (r *Resolver) ResolveAsset(ctx context.Context, uri string, lenient bool) (*media.Asset, error) {
	u, err := mediauri.Parse(uri)
	if err != nil {
		return nil, err
	}
	key := u.WithoutFragment()
	if asset := r.cached(key); asset != nil {
		return asset, nil
	}

	// The shared fetch outlives any single caller; each caller only stops
	// waiting when its own context ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		if asset := r.cached(key); asset != nil {
			return asset, nil
		}
		return r.fetch(fetchCtx, u)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			if lenient {
				r.logger.Debug("optional asset missing", logging.String(logging.FieldURI, key))
				return nil, nil
			}
			return nil, &AssetNotFoundError{URI: key}
		}
		return nil, err
	}
	if shared {
		r.logger.Debug("joined in-flight fetch", logging.String(logging.FieldURI, key))
	}
	return v.(*media.Asset), nil
}

func (r *Resolver) fetch(ctx context.Context, u mediauri.URI) (*media.Asset, error) {
	started := time.Now()
	r.fetches.Add(1)
	rec, err := r.client.FetchAssetByAuthority(ctx, u)
	if err != nil {
		return nil, err
	}
	asset, err := media.NewAsset(rec, r.httpBaseURL)
	if err != nil {
		return nil, err
	}
	asset = r.store(u.WithoutFragment(), asset)
	r.logger.Debug("asset resolved",
		logging.String(logging.FieldURI, u.WithoutFragment()),
		logging.String("ref", asset.Ref),
		logging.String("category", string(asset.Category)),
		logging.Duration(logging.FieldElapsed, time.Since(started)))
	return asset, nil
}

func (r *Resolver) cached(key string) *media.Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.assets[key]
}

// store caches asset under the requested key, its ref and its uuid. If the same
// asset was already reached through another key that instance wins.
func (r *Resolver) store(key string, asset *media.Asset) *media.Asset {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.assets[asset.Ref]; ok {
		r.assets[key] = existing
		return existing
	}
	for _, k := range []string{key, asset.Ref, asset.UUID} {
		if k != "" {
			r.assets[k] = asset
		}
	}
	r.order = append(r.order, asset)
	return asset
}

// ResolveAll resolves every URI concurrently and fails on the first error
// unless lenient is set. URIs linked from the fetched records are resolved in
// further rounds with the same leniency. Shortcuts are then assigned in the
// order of uris.
func (r *Resolver) ResolveAll(ctx context.Context, uris []string, lenient bool) error {
	seen := mediauri.NewOrderedSet()
	pending := make([]string, 0, len(uris))
	for _, uri := range uris {
		key := mediauri.RemoveFragment(uri)
		if seen.Add(key) {
			pending = append(pending, key)
		}
	}

	for round := 1; len(pending) > 0; round++ {
		resolved := make([]*media.Asset, len(pending))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.concurrency)
		for i, uri := range pending {
			g.Go(func() error {
				asset, err := r.ResolveAsset(gctx, uri, lenient)
				if err != nil {
					return err
				}
				resolved[i] = asset
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		r.logger.Debug("resolution round finished",
			logging.Int("round", round),
			logging.Int("uris", len(pending)))

		var next []string
		for _, asset := range resolved {
			if asset == nil {
				continue
			}
			for _, linked := range asset.LinkedURIs() {
				if seen.Add(linked) && r.cached(linked) == nil {
					next = append(next, linked)
				}
			}
		}
		pending = next
	}

	r.linkPreviews()
	r.assignShortcuts(seen.Values())
	return nil
}

// linkPreviews uses a resolved cover asset as preview image.
func (r *Resolver) linkPreviews() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, asset := range r.order {
		if asset.PreviewHTTPURL != "" || asset.Record == nil || asset.Record.Cover == "" {
			continue
		}
		if cover, ok := r.assets[mediauri.RemoveFragment(asset.Record.Cover)]; ok {
			asset.PreviewHTTPURL = cover.HTTPURL
		}
	}
}

func (r *Resolver) assignShortcuts(uris []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, uri := range uris {
		asset, ok := r.assets[uri]
		if !ok || r.assigned[asset] {
			continue
		}
		r.assigned[asset] = true
		r.shortcuts.AssignAsset(asset)
	}
}

// Asset returns an already resolved asset.
func (r *Resolver) Asset(uri string) (*media.Asset, error) {
	u, err := mediauri.Parse(uri)
	if err != nil {
		return nil, err
	}
	asset := r.cached(u.WithoutFragment())
	if asset == nil {
		return nil, notResolved(uri)
	}
	return asset, nil
}

// Sample returns the sample named by the fragment of uri, or the complete
// sample when there is no fragment.
func (r *Resolver) Sample(uri string) (*media.Sample, error) {
	u, err := mediauri.Parse(uri)
	if err != nil {
		return nil, err
	}
	asset := r.cached(u.WithoutFragment())
	if asset == nil {
		return nil, notResolved(uri)
	}
	if asset.Samples == nil {
		return nil, services.Wrap(services.ErrValidation, "resolve", "sample",
			fmt.Sprintf("%s is a %s asset and has no samples", asset.Ref, asset.Category), nil)
	}
	id := u.Fragment
	if id == "" {
		id = media.CompleteSampleID
	}
	sample, ok := asset.Samples.Get(id)
	if !ok {
		return nil, services.Wrap(services.ErrNotFound, "resolve", "sample",
			fmt.Sprintf("%s has no sample %q", asset.Ref, id), nil)
	}
	return sample, nil
}

// MultipartSelection binds the fragment of uri to the parts of its asset. The
// asset must already be resolved.
func (r *Resolver) MultipartSelection(uri string) (*multipart.Selection, error) {
	u, err := mediauri.Parse(uri)
	if err != nil {
		return nil, err
	}
	asset := r.cached(u.WithoutFragment())
	if asset == nil {
		return nil, notResolved(uri)
	}
	return asset.Selection(u.Fragment)
}

// Assets returns the resolved assets in resolution order.
func (r *Resolver) Assets() []*media.Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*media.Asset, len(r.order))
	copy(out, r.order)
	return out
}

// Samples returns the samples of all resolved playable assets.
func (r *Resolver) Samples() []*media.Sample {
	var out []*media.Sample
	for _, asset := range r.Assets() {
		if asset.Samples != nil {
			out = append(out, asset.Samples.All()...)
		}
	}
	return out
}

// FetchCount returns the number of catalog fetches issued so far.
func (r *Resolver) FetchCount() int {
	return int(r.fetches.Load())
}

// Reset drops every cached asset and restarts shortcut numbering.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = make(map[string]*media.Asset)
	r.assigned = make(map[*media.Asset]bool)
	r.order = nil
	r.shortcuts.Reset()
	r.fetches.Store(0)
}
