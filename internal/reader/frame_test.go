package reader

import (
	"context"
	"testing"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/assert"
)

func TestFrameURL(t *testing.T) {
	assert.Equal(t,
		"https://books.google.com/books?id=abc123&lpg=PP1&pg=PP1&output=embed",
		FrameURL("abc123"))
}

func TestSearchLink(t *testing.T) {
	assert.Equal(t,
		"https://www.google.com/search?tbm=bks&q=The+Great+Gatsby",
		SearchLink("The Great Gatsby"))
}

func TestClassifyFrameBody(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want Outcome
	}{
		{"loaded", "About this book\nChapter one...", OutcomeLoaded},
		{"not found", "Error: Not Found", OutcomeNotFound},
		{"no preview", "No preview available for this title", OutcomeNotAvailable},
		{"not embeddable", "This title is not embeddable", OutcomeNotEmbeddable},
		{"empty body", "", OutcomeLoaded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifyFrameBody(tc.body))
		})
	}
}

func TestFrameProberOptions(t *testing.T) {
	p := NewFrameProber()
	assert.True(t, p.headless)
	assert.Equal(t, defaultProbeTimeout, p.timeout)

	p = NewFrameProber(WithHeadful(), WithProbeTimeout(defaultProbeTimeout/2))
	assert.False(t, p.headless)
	assert.Equal(t, defaultProbeTimeout/2, p.timeout)
}

func TestFrameProberLoadRunnerFailure(t *testing.T) {
	originalRunner := chromedpRunner
	chromedpRunner = func(ctx context.Context, actions ...chromedp.Action) error {
		return context.DeadlineExceeded
	}
	defer func() { chromedpRunner = originalRunner }()

	p := NewFrameProber()
	outcome := p.Load(context.Background(), "vol-1")
	assert.Equal(t, OutcomeLoadError, outcome)
}
