package loader

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"

	"github.com/SerjaoM/txtai/internal/logger"
)

// DynamicFetcher renders pages in a headless browser before retrieving
// their markup. Use it for pages that only produce content after script
// execution.
type DynamicFetcher struct {
	cfg       FetcherConfig
	allocCtx  context.Context
	cancelCtx context.CancelFunc
}

// NewDynamicFetcher creates a dynamic fetcher with a browser allocator.
func NewDynamicFetcher(cfg FetcherConfig) (*DynamicFetcher, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	logger.Debug("dynamic fetcher created", "user_agent", cfg.UserAgent, "timeout", cfg.Timeout)

	return &DynamicFetcher{
		cfg:       cfg,
		allocCtx:  allocCtx,
		cancelCtx: cancelAlloc,
	}, nil
}

// Fetch navigates to url in a fresh browser context and returns the
// rendered document markup.
func (f *DynamicFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	logger.Debug("dynamic fetch starting", "url", url)

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, f.cfg.Timeout)
	defer cancelTimeout()

	// Honor caller cancellation alongside the browser timeout.
	go func() {
		select {
		case <-ctx.Done():
			cancelTimeout()
		case <-timeoutCtx.Done():
		}
	}()

	var html string
	err := chromedp.Run(timeoutCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("browser fetch failed: %w", err)
	}

	logger.Debug("dynamic fetch complete", "url", url, "size", len(html))
	return []byte(html), nil
}

// Close shuts down the browser allocator.
func (f *DynamicFetcher) Close() error {
	f.cancelCtx()
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return string(FetchModeDynamic)
}
