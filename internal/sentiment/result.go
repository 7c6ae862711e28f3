package sentiment

import "context"

// Sentiment labels form a closed set; nothing else is ever returned to
// a caller, including values the remote model might invent.
const (
	Positive = "positive"
	Negative = "negative"
	Neutral  = "neutral"
)

// Result is the outcome of analyzing one review. Confidence is on a
// 0-100 scale everywhere. Method records which classifier produced the
// result ("openai" or "keyword") for diagnostics and metrics; it is not
// part of the client-facing payload.
type Result struct {
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Analysis   string  `json:"analysis"`
	Method     string  `json:"-"`
}

// Classifier analyzes review text. Implementations never return an
// error: a classifier that cannot produce a real answer degrades to a
// neutral zero-confidence result (or, for the remote classifier,
// delegates to its fallback).
type Classifier interface {
	Classify(ctx context.Context, text string) Result
}

// ValidLabel reports whether s is one of the three allowed sentiment values.
func ValidLabel(s string) bool {
	return s == Positive || s == Negative || s == Neutral
}
