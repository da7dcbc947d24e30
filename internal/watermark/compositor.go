// Package watermark composites a tiled, semi-transparent text overlay
// onto catalog images and memoizes the result per (image key, mode) for
// the life of the process. Concurrent requests for the same key share a
// single render, and a bounded gate keeps a burst of detail views from
// monopolizing the process.
package watermark

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/image/font/opentype"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

type entryStatus int

const (
	statusPending entryStatus = iota
	statusReady
	statusError
)

type entry struct {
	status  entryStatus
	dataURL string
}

// Compositor owns the watermark cache. Construct one per process with
// New and share it; all methods are safe for concurrent use.
type Compositor struct {
	baseDir  string
	text     string
	fontPath string
	client   *http.Client
	gate     *semaphore.Weighted

	mu    sync.Mutex
	cache map[string]*entry

	flight singleflight.Group

	fontOnce sync.Once
	font     *opentype.Font
}

// Options configures a Compositor.
type Options struct {
	// BaseDir anchors relative image sources (the site root holding
	// images/ and images/thumbs/).
	BaseDir string
	// Text is the overlay text.
	Text string
	// FontPath points at the display TTF. Empty or unloadable falls
	// back to the bundled Go Regular.
	FontPath string
	// Concurrency bounds simultaneous composite passes. Zero means 2.
	Concurrency int64
}

// New builds a Compositor with an empty cache.
func New(opts Options) *Compositor {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 2
	}
	return &Compositor{
		baseDir:  opts.BaseDir,
		text:     opts.Text,
		fontPath: opts.FontPath,
		client:   &http.Client{Timeout: 30 * time.Second},
		gate:     semaphore.NewWeighted(opts.Concurrency),
		cache:    map[string]*entry{},
	}
}

// Get returns the watermarked data URL for an image reference, rendering
// it on first use. Failures are soft: a bad reference or unloadable
// image yields "" with a nil error, and the failure is cached so the
// image is not retried within the session. The returned error is non-nil
// only when ctx is done before a result is available.
func (c *Compositor) Get(ctx context.Context, imageRef string, mode Mode) (string, error) {
	ref, ok := Resolve(imageRef)
	if !ok {
		return "", nil
	}
	key := ref.Key + ":" + string(mode)

	c.mu.Lock()
	if e, exists := c.cache[key]; exists && e.status != statusPending {
		url := e.dataURL
		c.mu.Unlock()
		return url, nil
	}
	if _, exists := c.cache[key]; !exists {
		// Pending placeholder goes in before any yield so a second
		// caller in the same window attaches instead of re-rendering.
		c.cache[key] = &entry{status: statusPending}
	}
	c.mu.Unlock()

	type result struct{ dataURL string }
	ch := c.flight.DoChan(key, func() (any, error) {
		// A caller that saw the pending placeholder can land here after
		// the shared render already finished; terminal states are never
		// re-rendered.
		c.mu.Lock()
		if e := c.cache[key]; e != nil && e.status != statusPending {
			url := e.dataURL
			c.mu.Unlock()
			return result{url}, nil
		}
		c.mu.Unlock()

		// Once scheduled, a render runs to completion even if every
		// waiter has gone away; the result still lands in the cache.
		dataURL := c.render(context.WithoutCancel(ctx), ref.Src(mode), mode)
		status := statusReady
		if dataURL == "" {
			status = statusError
		}
		c.mu.Lock()
		c.cache[key] = &entry{status: status, dataURL: dataURL}
		c.mu.Unlock()
		return result{dataURL}, nil
	})

	select {
	case res := <-ch:
		return res.Val.(result).dataURL, nil
	case <-ctx.Done():
		// The render keeps going and lands in the cache; this caller
		// just stops waiting.
		return "", ctx.Err()
	}
}

// Cached reports the terminal state for a reference without triggering a
// render. ok is false while absent or pending.
func (c *Compositor) Cached(imageRef string, mode Mode) (string, bool) {
	ref, resolved := Resolve(imageRef)
	if !resolved {
		return "", false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, exists := c.cache[ref.Key+":"+string(mode)]
	if !exists || e.status == statusPending {
		return "", false
	}
	return e.dataURL, true
}

// render performs one load+composite pass. All failures collapse to ""
// here; the distinction between a load failure and a compositing failure
// only matters for logging.
func (c *Compositor) render(ctx context.Context, src string, mode Mode) string {
	img, err := c.loadImage(ctx, src)
	if err != nil {
		slog.Warn("watermark source load failed", "src", src, "err", err)
		return ""
	}

	// Gate acquisition is the scheduling yield point: decode happened
	// above, pixel work waits its turn here.
	if err := c.gate.Acquire(ctx, 1); err != nil {
		slog.Warn("watermark render cancelled", "src", src, "err", err)
		return ""
	}
	defer c.gate.Release(1)

	dataURL, err := c.composite(img, optionsForMode(mode))
	if err != nil {
		slog.Warn("watermark composite failed", "src", src, "err", err)
		return ""
	}
	return dataURL
}
