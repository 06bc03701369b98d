package reader

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

const defaultProbeTimeout = 15 * time.Second

// Indirection for tests; probing drives a real browser otherwise.
var (
	chromedpExecAllocator = chromedp.NewExecAllocator
	chromedpContext       = chromedp.NewContext
	chromedpRunner        = chromedp.Run
)

// FrameURL is the frame viewer address for a book. It needs only the ID,
// which is why the synthesized no-credential detail can still offer it.
func FrameURL(volumeID string) string {
	return fmt.Sprintf("https://books.google.com/books?id=%s&lpg=PP1&pg=PP1&output=embed", volumeID)
}

// SearchLink builds a book-search web link for a title, used as the escape
// hatch when no viewer can display the book.
func SearchLink(title string) string {
	return "https://www.google.com/search?tbm=bks&q=" + url.QueryEscape(title)
}

// FrameProber checks whether the frame viewer can actually display a book
// by loading it in a headless browser and inspecting the rendered page.
type FrameProber struct {
	headless bool
	timeout  time.Duration
}

// ProbeOption customizes a FrameProber.
type ProbeOption func(*FrameProber)

// WithHeadful runs the probe in a visible browser window.
func WithHeadful() ProbeOption {
	return func(p *FrameProber) { p.headless = false }
}

// WithProbeTimeout overrides the probe deadline.
func WithProbeTimeout(d time.Duration) ProbeOption {
	return func(p *FrameProber) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewFrameProber creates a headless prober with the default deadline.
func NewFrameProber(opts ...ProbeOption) *FrameProber {
	p := &FrameProber{headless: true, timeout: defaultProbeTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load navigates the frame viewer to the book and classifies what rendered.
// Implements EmbeddedViewer so the detail flow can treat both viewers alike.
func (p *FrameProber) Load(parentCtx context.Context, volumeID string) Outcome {
	ctx, cancel := context.WithTimeout(parentCtx, p.timeout)
	defer cancel()

	allocCtx, cancelAllocator := chromedpExecAllocator(ctx, p.allocatorOptions()...)
	defer cancelAllocator()

	browserCtx, cancelBrowser := chromedpContext(allocCtx)
	defer cancelBrowser()

	var bodyText string
	tasks := chromedp.Tasks{
		network.Enable(),
		// Cover scans are heavy and irrelevant to outcome classification.
		network.SetBlockedURLs([]string{"*.png", "*.jpg", "*.jpeg", "*.gif"}),
		chromedp.Navigate(FrameURL(volumeID)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Text("body", &bodyText, chromedp.ByQuery),
	}

	if err := chromedpRunner(browserCtx, tasks...); err != nil {
		slog.Warn("Frame viewer probe failed", "volume_id", volumeID, "error", err)
		return OutcomeLoadError
	}

	outcome := classifyFrameBody(bodyText)
	slog.Debug("Frame viewer probe finished", "volume_id", volumeID, "outcome", outcome)
	return outcome
}

func (p *FrameProber) allocatorOptions() []chromedp.ExecAllocatorOption {
	return []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("headless", p.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("mute-audio", true),
	}
}

// classifyFrameBody maps the rendered page text onto a load outcome.
func classifyFrameBody(body string) Outcome {
	lower := strings.ToLower(body)
	switch {
	case strings.Contains(lower, "not found"):
		return OutcomeNotFound
	case strings.Contains(lower, "no preview available"), strings.Contains(lower, "not available"):
		return OutcomeNotAvailable
	case strings.Contains(lower, "not embeddable"):
		return OutcomeNotEmbeddable
	default:
		return OutcomeLoaded
	}
}
