// Package browser wraps a chromedp browsing session with wait-then-act
// interaction primitives. Every mutating or querying operation funnels
// through the same visibility wait, so nothing ever acts on an element the
// client-rendered UI has not produced yet, and every failure leaves a
// screenshot behind.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/almoelda/restful-booker-automation/internal/config"
	"github.com/almoelda/restful-booker-automation/internal/tools/slowlog"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

// ErrElementNotFound marks an element that did not become visible within its
// wait budget.
var ErrElementNotFound = errors.New("element not found or not visible")

const (
	// DefaultWaitTimeout bounds the visibility wait behind every action.
	DefaultWaitTimeout = 10 * time.Second
	// DefaultProbeTimeout bounds the non-throwing visibility probes.
	DefaultProbeTimeout = 5 * time.Second

	// settleDelay lets client-side rendering catch up after navigation.
	settleDelay = 500 * time.Millisecond
	// stabilizeDelay brackets clicks so asynchronous UI updates settle.
	stabilizeDelay = 200 * time.Millisecond

	pollInterval = 250 * time.Millisecond
)

type Driver struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc

	baseURL       string
	screenshotDir string
	waitTimeout   time.Duration
	probeTimeout  time.Duration

	logger *zerolog.Logger
	slow   slowlog.Logger

	dialogMu       sync.Mutex
	dialogsHandled bool
}

type OptionFunc func(*options)

type options struct {
	baseURL       string
	screenshotDir string
	headless      bool
	waitTimeout   time.Duration
	probeTimeout  time.Duration
}

func WithBaseURL(url string) OptionFunc {
	return func(o *options) {
		o.baseURL = url
	}
}

func WithScreenshotDir(dir string) OptionFunc {
	return func(o *options) {
		o.screenshotDir = dir
	}
}

func WithHeadless(headless bool) OptionFunc {
	return func(o *options) {
		o.headless = headless
	}
}

func WithWaitTimeout(timeout time.Duration) OptionFunc {
	return func(o *options) {
		o.waitTimeout = timeout
	}
}

func WithProbeTimeout(timeout time.Duration) OptionFunc {
	return func(o *options) {
		o.probeTimeout = timeout
	}
}

// NewDriver starts one browser session. Each Driver owns exactly one session;
// parallel test cases use separate drivers.
func NewDriver(logger *zerolog.Logger, optionFuncs ...OptionFunc) (*Driver, error) {
	cfg := config.FromEnv()

	opts := options{
		baseURL:       cfg.BaseURL,
		screenshotDir: cfg.ScreenshotDir,
		headless:      cfg.Headless,
		waitTimeout:   DefaultWaitTimeout,
		probeTimeout:  DefaultProbeTimeout,
	}

	for _, fn := range optionFuncs {
		fn(&opts)
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.headless),
		chromedp.Flag("disable-web-security", true),
		chromedp.WindowSize(1400, 800),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	ctx, cancel := chromedp.NewContext(allocCtx)

	// Starts the browser process before the first action needs it.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		allocCancel()

		return nil, fmt.Errorf("start browser session: %w", err)
	}

	return &Driver{
		ctx:           ctx,
		cancel:        cancel,
		allocCancel:   allocCancel,
		baseURL:       opts.baseURL,
		screenshotDir: opts.screenshotDir,
		waitTimeout:   opts.waitTimeout,
		probeTimeout:  opts.probeTimeout,
		logger:        logger,
		slow:          slowlog.CreateLogger(logger),
	}, nil
}

func (d *Driver) Close() {
	d.cancel()
	d.allocCancel()
}

// Navigate loads a URL (absolute, or relative to the base URL), waits for the
// document readiness signal to reach "complete", then applies a settling
// delay for client-side-rendered content.
func (d *Driver) Navigate(path string) error {
	url := d.resolveURL(path)

	d.logger.Info().Str("url", url).Msg("navigating")

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout+settleDelay)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.Poll("document.readyState === 'complete'", nil,
			chromedp.WithPollingInterval(pollInterval)),
		chromedp.Sleep(settleDelay),
	)
	if err != nil {
		d.failureShot("navigate")
		return fmt.Errorf("navigate to %q: %w", url, err)
	}

	d.logger.Info().Str("url", url).Msg("page loaded")

	return nil
}

func (d *Driver) resolveURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	return strings.TrimSuffix(d.baseURL, "/") + path
}

// Title returns the current document title.
func (d *Driver) Title() (string, error) {
	var title string
	if err := chromedp.Run(d.ctx, chromedp.Title(&title)); err != nil {
		return "", fmt.Errorf("read title: %w", err)
	}

	return title, nil
}

// Location returns the current URL.
func (d *Driver) Location() (string, error) {
	var location string
	if err := chromedp.Run(d.ctx, chromedp.Location(&location)); err != nil {
		return "", fmt.Errorf("read location: %w", err)
	}

	return location, nil
}

// Refresh reloads the page and re-waits for readiness.
func (d *Driver) Refresh() error {
	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout+settleDelay)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Reload(),
		chromedp.Poll("document.readyState === 'complete'", nil,
			chromedp.WithPollingInterval(pollInterval)),
		chromedp.Sleep(settleDelay),
	)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	d.logger.Info().Msg("page refreshed")

	return nil
}

// Back navigates one step back in session history.
func (d *Driver) Back() error {
	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.NavigateBack()); err != nil {
		return fmt.Errorf("navigate back: %w", err)
	}

	d.logger.Info().Msg("navigated back")

	return nil
}

// Screenshot captures a full-page screenshot under the configured directory.
func (d *Driver) Screenshot(name string) error {
	var buf []byte

	ctx, cancel := context.WithTimeout(d.ctx, d.waitTimeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}

	if err := os.MkdirAll(d.screenshotDir, 0o755); err != nil {
		return fmt.Errorf("create screenshot dir: %w", err)
	}

	path := filepath.Join(d.screenshotDir, sanitizeName(name)+".png")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}

	d.logger.Info().Str("path", path).Msg("screenshot taken")

	return nil
}

// failureShot is the debugging aid attached at the wait choke point: a best
// effort capture keyed by the failing selector.
func (d *Driver) failureShot(selector string) {
	name := fmt.Sprintf("failure-%s-%d", sanitizeName(selector), time.Now().UnixMilli())

	if err := d.Screenshot(name); err != nil {
		d.logger.Warn().Err(err).Msg("failure screenshot could not be captured")
	}
}

// sanitizeName maps a selector to a filesystem-safe artifact key.
func sanitizeName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	const maxLen = 80
	if len(mapped) > maxLen {
		mapped = mapped[:maxLen]
	}

	return mapped
}
