package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Default snapshot parameters: a desktop-width view of the booking widget.
const (
	DefaultWidth      = 1280
	DefaultHeight     = 1600
	DefaultTimeoutSec = 30

	// ReadySelector matches the widget root once the server-rendered view
	// is complete.
	ReadySelector = `[data-ready="true"]`
)

// Options defines parameters for a Chromium-based screenshot capture.
type Options struct {
	// URL to capture, e.g. "http://127.0.0.1:8080/".
	URL string

	// OutputPath is where the PNG screenshot will be written.
	OutputPath string

	// Width and Height are the viewport dimensions in pixels. If zero,
	// DefaultWidth / DefaultHeight are used.
	Width  int
	Height int

	// Timeout bounds the entire capture operation. If zero, a sane default
	// (DefaultTimeoutSec) is used.
	Timeout time.Duration

	// Headers are sent with every request the page makes, e.g. an
	// Authorization header when the server has basic auth enabled.
	Headers map[string]string
}

// BasicAuthHeader returns the Authorization header value for user:pass.
func BasicAuthHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

// tasks builds the chromedp action list, writing the screenshot into png.
func (o Options) tasks(png *[]byte) chromedp.Tasks {
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(o.Width), int64(o.Height)),
	}
	if len(o.Headers) > 0 {
		h := make(network.Headers, len(o.Headers))
		for k, v := range o.Headers {
			h[k] = v
		}
		tasks = append(tasks, network.Enable(), network.SetExtraHTTPHeaders(h))
	}
	return append(tasks,
		chromedp.Navigate(o.URL),
		chromedp.WaitVisible(ReadySelector, chromedp.ByQuery),
		chromedp.FullScreenshot(png, 100),
	)
}

func (o *Options) normalize() error {
	if o.URL == "" {
		return fmt.Errorf("capture: URL is required")
	}
	if o.OutputPath == "" {
		return fmt.Errorf("capture: OutputPath is required")
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = time.Duration(DefaultTimeoutSec) * time.Second
	}
	return nil
}

// BookingPagePNG launches a headless Chromium via chromedp, opens opts.URL,
// waits until the booking widget marks itself ready, and writes a full-page
// PNG to opts.OutputPath.
func BookingPagePNG(parentCtx context.Context, opts Options) error {
	if err := opts.normalize(); err != nil {
		return err
	}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	if err := chromedp.Run(ctx, opts.tasks(&png)); err != nil {
		return fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	if err := os.WriteFile(opts.OutputPath, png, 0o644); err != nil {
		return fmt.Errorf("capture: failed to write PNG: %w", err)
	}
	return nil
}
