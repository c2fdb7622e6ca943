package feeds

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"aide/internal/httpkit"
)

const (
	// DefaultMaxConcurrent is the default concurrency cap for a round.
	DefaultMaxConcurrent = 5

	// DefaultBaseWait is the default courtesy delay applied after each
	// fetch. Outcome classification scales it (2x for upstream/auth
	// failures, 3x for malformed bodies and transport errors).
	DefaultBaseWait = 3 * time.Second

	// requestTimeout bounds a single feed request.
	requestTimeout = 60 * time.Second

	// maxBodyBytes caps how much of a feed body is read.
	maxBodyBytes = 10 << 20
)

// Config configures a Fetcher.
type Config struct {
	// MaxConcurrent is the concurrency cap (default 5).
	MaxConcurrent int

	// BaseWait is the per-fetch courtesy delay unit (default 3s).
	BaseWait time.Duration

	// Logger receives all fetch outcomes. Nothing else is produced.
	Logger *slog.Logger

	// HTTPClient overrides the default client. Tests use this; the
	// default follows redirects with a 60s timeout and TLS
	// verification disabled, so feeds behind misconfigured tunnels
	// still respond.
	HTTPClient *http.Client
}

// Fetcher fetches feed URLs under a global concurrency gate and
// classifies each outcome. Outcomes are logged only; a fetch never
// returns an error to the round driver, and each URL is attempted
// exactly once per round regardless of how it fails.
type Fetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseWait   time.Duration
	slots      chan struct{}

	// sleep is swapped out in tests to observe cooldown durations.
	sleep func(ctx context.Context, d time.Duration)
}

// NewFetcher creates a fetcher with the given config.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.BaseWait < 0 {
		cfg.BaseWait = 0
	} else if cfg.BaseWait == 0 {
		cfg.BaseWait = DefaultBaseWait
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = httpkit.NewClient(
			httpkit.WithTimeout(requestTimeout),
			httpkit.WithTLSInsecureSkipVerify(),
		)
	}

	return &Fetcher{
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
		baseWait:   cfg.BaseWait,
		slots:      make(chan struct{}, cfg.MaxConcurrent),
		sleep:      sleepCtx,
	}
}

// jsonFeed is the subset of a JSON Feed document the poller reads.
type jsonFeed struct {
	Title       string `json:"title"`
	HomePageURL string `json:"home_page_url"`
}

// Fetch retrieves one feed URL under the concurrency gate. It blocks
// until a slot is free, issues the request, classifies the outcome,
// and sleeps the outcome's cooldown before releasing the slot. Always
// returns once the cooldown elapses or ctx is cancelled.
func (f *Fetcher) Fetch(ctx context.Context, url string) {
	select {
	case f.slots <- struct{}{}:
		defer func() { <-f.slots }()
	case <-ctx.Done():
		return
	}

	f.fetchLocked(ctx, url)
}

// fetchLocked does the request and classification. Caller holds a slot.
func (f *Fetcher) fetchLocked(ctx context.Context, url string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.logger.Error("fetch failed", "url", url, "error", err)
		f.sleep(ctx, 3*f.baseWait)
		return
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Error("fetch failed", "url", url, "error", err)
		f.sleep(ctx, 3*f.baseWait)
		return
	}
	defer httpkit.DrainAndClose(resp.Body, 1<<20)

	switch {
	case resp.StatusCode == http.StatusBadGateway || resp.StatusCode == 530:
		// 530 is Cloudflare's "origin unreachable": the tunnel
		// behind the feed is likely offline.
		f.logger.Debug("fetch failed, upstream offline",
			"url", url,
			"status", resp.StatusCode,
		)
		f.sleep(ctx, 2*f.baseWait)
		return

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		f.logger.Debug("fetch failed, feed is protected",
			"url", url,
			"status", resp.StatusCode,
		)
		f.sleep(ctx, 2*f.baseWait)
		return

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		f.logger.Error("fetch failed",
			"url", url,
			"status", resp.StatusCode,
		)
		f.sleep(ctx, 3*f.baseWait)
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		f.logger.Error("fetch failed", "url", url, "error", err)
		f.sleep(ctx, 3*f.baseWait)
		return
	}

	var feed jsonFeed
	if err := json.Unmarshal(body, &feed); err != nil {
		f.logger.Warn("fetch succeeded but body is not valid JSON",
			"url", url,
			"error", err,
			"body", snippet(body, 200),
		)
		f.sleep(ctx, 3*f.baseWait)
		return
	}

	f.logger.Info("feed fetched",
		"title", feed.Title,
		"homepage", feed.HomePageURL,
		"feedurl", url,
	)
	f.sleep(ctx, f.baseWait)
}

// snippet returns at most n bytes of b as a string, for log lines.
func snippet(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

// sleepCtx sleeps for d or until ctx is cancelled, whichever is first.
func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
