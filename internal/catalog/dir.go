package catalog

import (
	"context"
	"fmt"
	"sync"

	"baldr/internal/media"
	"baldr/internal/mediauri"
)

// DirClient serves records straight from sidecar files below a media
// directory. The directory is scanned once, on the first lookup.
type DirClient struct {
	root string

	once   sync.Once
	err    error
	byRef  map[string]*media.Record
	byUUID map[string]*media.Record
}

func NewDirClient(root string) *DirClient {
	return &DirClient{root: root}
}

func (c *DirClient) load() {
	sidecars, err := ScanDir(c.root)
	if err != nil {
		c.err = err
		return
	}
	c.byRef = make(map[string]*media.Record, len(sidecars))
	c.byUUID = make(map[string]*media.Record, len(sidecars))
	for _, sc := range sidecars {
		ref := mediauri.RemoveScheme(sc.Record.Ref)
		if ref == "" {
			continue
		}
		if prev, ok := c.byRef[ref]; ok {
			c.err = fmt.Errorf("duplicate ref %q in %s and %s", ref, prev.Path, sc.Record.Path)
			return
		}
		c.byRef[ref] = sc.Record
		if id := mediauri.RemoveScheme(sc.Record.UUID); id != "" {
			c.byUUID[id] = sc.Record
		}
	}
}

// FetchAssetByAuthority implements Client. Records are returned as copies.
func (c *DirClient) FetchAssetByAuthority(ctx context.Context, uri mediauri.URI) (*media.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.once.Do(c.load)
	if c.err != nil {
		return nil, c.err
	}
	index := c.byRef
	if uri.Scheme == mediauri.SchemeUUID {
		index = c.byUUID
	}
	rec, ok := index[uri.Authority]
	if !ok {
		return nil, &NotFoundError{URI: uri.WithoutFragment()}
	}
	out := *rec
	return &out, nil
}
