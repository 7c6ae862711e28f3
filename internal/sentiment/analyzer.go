package sentiment

import (
	"context"
	"strings"
)

// Analyzer is the single entry point for sentiment resolution. When a
// remote classifier is configured it handles every non-empty review
// (falling back internally on failure); otherwise the keyword
// classifier is invoked directly. Resolve never returns an error: the
// worst case is a neutral zero-confidence result.
type Analyzer struct {
	remote   Classifier
	fallback Classifier
}

// NewAnalyzer composes the pipeline. remote may be nil, in which case
// every review goes straight to fallback.
func NewAnalyzer(remote, fallback Classifier) *Analyzer {
	return &Analyzer{remote: remote, fallback: fallback}
}

// Resolve classifies the given review text. Empty or whitespace-only
// input short-circuits without invoking any classifier.
func (a *Analyzer) Resolve(ctx context.Context, text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{
			Sentiment:  Neutral,
			Confidence: 0,
			Analysis:   "No text provided for analysis.",
			Method:     "none",
		}
	}

	if a.remote != nil {
		return a.remote.Classify(ctx, text)
	}
	return a.fallback.Classify(ctx, text)
}
