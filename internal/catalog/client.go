package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spacecanva/spacecanva/internal/cache"
	"github.com/spacecanva/spacecanva/internal/logging"
)

// Defaults for a catalog client.
const (
	DefaultBaseURL = "https://spacecanvabackend.onrender.com/api/exoplanetarchive"
	DefaultTable   = "ps"
	DefaultFormat  = "json"
	DefaultTTL     = time.Hour

	// NoExpiry as Options.TTL keeps cached snapshots until ClearCache.
	NoExpiry time.Duration = -1
)

// Options configures a Client. Zero fields take the package defaults; use
// NoExpiry for a TTL that never expires.
type Options struct {
	BaseURL    string
	Table      string // table used when a call names none
	HTTPClient *http.Client
	Cache      cache.Cache
	TTL        time.Duration
	Logger     *zap.Logger
}

// Client fetches exoplanet tables from the archive proxy and caches the
// decoded records.
type Client struct {
	baseURL string
	table   string
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	logger  *zap.Logger
}

// NewClient creates a catalog client.
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		table:   opts.Table,
		http:    opts.HTTPClient,
		cache:   opts.Cache,
		ttl:     opts.TTL,
		logger:  logging.OrNop(opts.Logger),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.table == "" {
		c.table = DefaultTable
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 60 * time.Second}
	}
	if c.cache == nil {
		c.cache = cache.NewMemory(nil)
	}
	switch {
	case c.ttl == 0:
		c.ttl = DefaultTTL
	case c.ttl < 0:
		c.ttl = 0 // the cache treats a zero ttl as no expiry
	}
	return c
}

func cacheKey(table, format string) string {
	return table + "_" + format
}

// FetchExoplanets returns every record of table, serving from the cache
// when a fresh copy exists.
func (c *Client) FetchExoplanets(ctx context.Context, table, format string) ([]Exoplanet, error) {
	if table == "" {
		table = c.table
	}
	if format == "" {
		format = DefaultFormat
	}
	key := cacheKey(table, format)

	if planets, ok := c.cached(ctx, key); ok {
		return planets, nil
	}

	planets, err := c.fetch(ctx, table, format)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(planets)
	if err != nil {
		return nil, fmt.Errorf("encoding catalog snapshot: %w", err)
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("caching catalog snapshot", zap.String("key", key), zap.Error(err))
	}
	return planets, nil
}

// FetchConfirmed returns the confirmed planets of the client's table.
func (c *Client) FetchConfirmed(ctx context.Context) ([]Exoplanet, error) {
	all, err := c.FetchExoplanets(ctx, c.table, DefaultFormat)
	if err != nil {
		return nil, err
	}
	confirmed := make([]Exoplanet, 0, len(all))
	for _, p := range all {
		if p.IsConfirmed() {
			confirmed = append(confirmed, p)
		}
	}
	return confirmed, nil
}

// ClearCache drops every cached snapshot.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

// cached returns the snapshot under key. Read and decode failures are
// treated as misses.
func (c *Client) cached(ctx context.Context, key string) ([]Exoplanet, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("reading catalog cache", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var planets []Exoplanet
	if err := json.Unmarshal(data, &planets); err != nil {
		c.logger.Warn("decoding cached catalog", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	c.logger.Debug("catalog cache hit", zap.String("key", key), zap.Int("planets", len(planets)))
	return planets, true
}

func (c *Client) fetch(ctx context.Context, table, format string) ([]Exoplanet, error) {
	q := url.Values{}
	q.Set("table", table)
	q.Set("format", format)
	endpoint := c.baseURL + "/exoplanets?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching exoplanets: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("proxy API error: %s", resp.Status)
	}

	planets, cells, err := decodeTAP(body)
	if err != nil {
		return nil, err
	}
	for _, cell := range cells {
		c.logger.Warn("kept unconvertible catalog cell in extra",
			zap.Int("row", cell.Row),
			zap.String("column", cell.Column),
			zap.Any("value", cell.Value),
			zap.Error(cell.Err))
	}
	c.logger.Info("fetched exoplanet catalog",
		zap.String("table", table),
		zap.Int("planets", len(planets)),
		zap.Duration("elapsed", time.Since(start)))
	return planets, nil
}
