package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"baldr/internal/media"
	"baldr/internal/mediauri"
	"baldr/internal/services"
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPClient queries the REST API of a remote `baldr serve` instance:
// GET <base>/api/assets/<scheme>/<authority>.
type HTTPClient struct {
	baseURL string
	client  HTTPDoer
}

// NewHTTPClient uses http.DefaultClient when client is nil.
func NewHTTPClient(baseURL string, client HTTPDoer) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  client,
	}
}

// FetchAssetByAuthority implements Client.
func (c *HTTPClient) FetchAssetByAuthority(ctx context.Context, uri mediauri.URI) (*media.Record, error) {
	endpoint := fmt.Sprintf("%s/api/assets/%s/%s", c.baseURL, url.PathEscape(uri.Scheme), url.PathEscape(uri.Authority))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, "catalog", "fetch asset", uri.WithoutFragment(), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{URI: uri.WithoutFragment()}
	case resp.StatusCode >= http.StatusMultipleChoices:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, services.Wrap(services.ErrExternal, "catalog", "fetch asset",
			fmt.Sprintf("%s returned %d: %s", endpoint, resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var rec media.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, services.Wrap(services.ErrExternal, "catalog", "decode asset", uri.WithoutFragment(), err)
	}
	return &rec, nil
}
