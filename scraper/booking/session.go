package booking

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"booking-scraper/config"
	"booking-scraper/utils"
)

// Session is one browser tab on the results site.
type Session interface {
	// Open navigates to url and waits for the document to be ready.
	Open(url string) error
	// HTML returns the current rendered document.
	HTML() (string, error)
	// NextVisible reports whether the next-page control is present and visible.
	NextVisible() (bool, error)
	// ClickNext activates the next-page control.
	ClickNext() error
	Close() error
}

// SessionFactory opens a Session bound to ctx.
type SessionFactory func(ctx context.Context) (Session, error)

// ChromeSession drives a single Chrome tab through chromedp.
type ChromeSession struct {
	tab         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	navTimeout  time.Duration
	run         func(context.Context, ...chromedp.Action) error
}

// ChromeSessionFactory returns a SessionFactory launching Chrome with cfg's
// headless and binary settings.
func ChromeSessionFactory(cfg *config.Config, logger *utils.Logger) SessionFactory {
	return func(ctx context.Context) (Session, error) {
		s, err := NewChromeSession(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// NewChromeSession launches the browser and opens a blank tab.
func NewChromeSession(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*ChromeSession, error) {
	chromeBin := cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[browser] Using browser binary: %s (headless=%t)", chromeBin, cfg.Headless)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)

	// Suppress chromedp log noise
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	// An empty Run starts the browser so later timeouts only bound the action.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("browser: launch: %w", err)
	}

	return &ChromeSession{
		tab:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		navTimeout:  cfg.NavTimeout(),
		run:         chromedp.Run,
	}, nil
}

func (s *ChromeSession) Open(url string) error {
	if err := s.do(
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("browser: navigate: %w", err)
	}
	return nil
}

func (s *ChromeSession) HTML() (string, error) {
	var doc string
	if err := s.do(chromedp.OuterHTML("html", &doc, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("browser: read html: %w", err)
	}
	return doc, nil
}

func (s *ChromeSession) NextVisible() (bool, error) {
	var visible bool
	if err := s.do(
		chromedp.Evaluate(fmt.Sprintf(nextVisibleScript, NextPageSelector), &visible),
	); err != nil {
		return false, fmt.Errorf("browser: check next control: %w", err)
	}
	return visible, nil
}

func (s *ChromeSession) ClickNext() error {
	if err := s.do(
		chromedp.Click(NextPageSelector, chromedp.ByQuery, chromedp.NodeVisible),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("browser: click next: %w", err)
	}
	return nil
}

// do runs actions on the tab, each call bounded by the navigation timeout.
func (s *ChromeSession) do(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.tab, s.navTimeout)
	defer cancel()
	return s.run(ctx, actions...)
}

// Close shuts the tab and then the browser process.
func (s *ChromeSession) Close() error {
	s.cancelTab()
	s.cancelAlloc()
	return nil
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
