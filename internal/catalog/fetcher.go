package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/shop-catalog-exporter/internal/mcp"
	"github.com/donaldgifford/shop-catalog-exporter/internal/metrics"
)

const (
	defaultPageSize    = 100
	defaultMaxProducts = 300
	defaultPageDelay   = 300 * time.Millisecond

	searchTool    = "search_shop_catalog"
	searchContext = "catalog"

	clientName    = "shopcat"
	clientVersion = "1.0"
)

// ErrMCPUnavailable indicates the store failed the initialize handshake
// and does not speak the MCP catalog protocol.
var ErrMCPUnavailable = errors.New("store does not support the MCP catalog protocol")

// Stop reasons recorded in FetchResult.StoppedAt.
const (
	StopLimitReached = "limit_reached"
	StopCallFailed   = "call_failed"
	StopNoContent    = "no_content"
	StopEndOfCatalog = "end_of_catalog"
)

// Fetcher drives the paginated catalog retrieval loop against an MCP
// endpoint. It is strictly sequential: one call in flight at a time, with
// a fixed pacing delay between pages.
type Fetcher struct {
	client      mcp.Caller
	log         *slog.Logger
	pageSize    int
	maxProducts int // 0 = unlimited
	pacer       *rate.Limiter
}

// FetcherOption configures the Fetcher.
type FetcherOption func(*Fetcher)

// WithPageSize overrides the per-request product limit.
func WithPageSize(n int) FetcherOption {
	return func(f *Fetcher) {
		f.pageSize = n
	}
}

// WithMaxProducts caps the total number of products fetched. Zero means
// unlimited.
func WithMaxProducts(n int) FetcherOption {
	return func(f *Fetcher) {
		f.maxProducts = n
	}
}

// WithPageDelay sets the minimum spacing between page requests. Zero
// disables pacing.
func WithPageDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d <= 0 {
			f.pacer = nil
			return
		}
		f.pacer = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithFetcherLogger sets the logger.
func WithFetcherLogger(l *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.log = l
	}
}

// NewFetcher creates a Fetcher with the default page size (100), product
// cap (300), and inter-page delay (300ms).
func NewFetcher(client mcp.Caller, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      client,
		log:         slog.Default(),
		pageSize:    defaultPageSize,
		maxProducts: defaultMaxProducts,
		pacer:       rate.NewLimiter(rate.Every(defaultPageDelay), 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchResult holds the accumulated catalog and how the loop ended.
type FetchResult struct {
	Products  []Product
	PagesUsed int
	TotalSeen int
	StoppedAt string
}

// searchArgs is the argument object for the search_shop_catalog tool.
type searchArgs struct {
	Query   string `json:"query"`
	Context string `json:"context"`
	Limit   int    `json:"limit"`
	After   string `json:"after,omitempty"`
}

// Fetch performs the initialize handshake and then pages through the
// catalog until a stop condition is hit.
//
// The handshake is a hard precondition: if it fails, Fetch returns
// ErrMCPUnavailable and no tools/call request is ever issued. Once paging
// has started, every way the server can stop answering usefully (error,
// empty body, missing content, end of data) ends the loop softly with
// whatever was accumulated, never with an error.
func (f *Fetcher) Fetch(ctx context.Context) (*FetchResult, error) {
	init := f.client.Call(ctx, "initialize", mcp.NewInitializeParams(clientName, clientVersion))
	if !init.OK() {
		return nil, fmt.Errorf("%w: %s", ErrMCPUnavailable, init.Reason())
	}

	result := &FetchResult{}
	var cursor string

	for page := 1; ; page++ {
		if f.maxProducts > 0 && len(result.Products) >= f.maxProducts {
			result.StoppedAt = StopLimitReached
			break
		}

		// The first Wait consumes the initial token immediately, so only
		// pages after the first are actually delayed.
		if f.pacer != nil {
			if err := f.pacer.Wait(ctx); err != nil {
				return nil, fmt.Errorf("pacing wait: %w", err)
			}
		}

		args := searchArgs{Query: "*", Context: searchContext, Limit: f.pageSize}
		if cursor != "" {
			args.After = cursor
		}

		res := f.client.Call(ctx, "tools/call", mcp.ToolCallParams{
			Name:      searchTool,
			Arguments: args,
		})
		if !res.OK() {
			f.log.Warn("page call failed, keeping partial catalog",
				"page", page,
				"reason", res.Reason(),
				"products_so_far", len(result.Products),
			)
			result.StoppedAt = StopCallFailed
			break
		}

		text, ok := mcp.FirstContentText(res.Body())
		if !ok {
			f.log.Warn("response carried no content blocks, keeping partial catalog",
				"page", page,
				"products_so_far", len(result.Products),
			)
			result.StoppedAt = StopNoContent
			break
		}

		pg := DecodePage(text)

		result.Products = append(result.Products, pg.Products...)
		result.TotalSeen += len(pg.Products)
		result.PagesUsed++

		metrics.PagesFetchedTotal.Inc()
		metrics.ProductsFetchedTotal.Add(float64(len(pg.Products)))

		f.log.Info("page fetched",
			"page", page,
			"products", len(pg.Products),
			"total", len(result.Products),
		)

		cursor = pg.Pagination.EndCursor

		if !pg.Pagination.HasNextPage || cursor == "" || len(pg.Products) == 0 {
			result.StoppedAt = StopEndOfCatalog
			break
		}
	}

	// The last page can overshoot the cap because the page size does not
	// divide it evenly; trim after the fact rather than shrinking the
	// request limit near the boundary.
	if f.maxProducts > 0 && len(result.Products) > f.maxProducts {
		result.Products = result.Products[:f.maxProducts]
	}

	return result, nil
}
