package sentiment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordClassifierPositive(t *testing.T) {
	c := NewKeywordClassifier()
	got := c.Classify(context.Background(), "This movie was the best, most wonderful experience, I loved it!")

	assert.Equal(t, Positive, got.Sentiment)
	// 3 positive hits, 0 negative: 3/(3+0+1)*100.
	assert.InDelta(t, 75.0, got.Confidence, 0.01)
	assert.Contains(t, got.Analysis, "positive")
	assert.Equal(t, "keyword", got.Method)
}

func TestKeywordClassifierNegative(t *testing.T) {
	c := NewKeywordClassifier()
	got := c.Classify(context.Background(), "Absolutely terrible, a boring disaster and a total waste of time")

	assert.Equal(t, Negative, got.Sentiment)
	// 4 negative hits, 0 positive: 4/(0+4+1)*100.
	assert.InDelta(t, 80.0, got.Confidence, 0.01)
	assert.Contains(t, got.Analysis, "negative")
}

func TestKeywordClassifierNeutral(t *testing.T) {
	c := NewKeywordClassifier()

	tests := []struct {
		name string
		text string
	}{
		{"no keyword hits", "the film premiered yesterday in three cities"},
		{"balanced hits", "good photography but bad pacing"},
		{"empty string", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(context.Background(), tt.text)
			assert.Equal(t, Neutral, got.Sentiment)
			assert.Equal(t, 30.0, got.Confidence)
		})
	}
}

func TestKeywordClassifierSubstringContainment(t *testing.T) {
	c := NewKeywordClassifier()
	// Matching is not word-boundary aware: "hateful" contains "hate".
	got := c.Classify(context.Background(), "hateful acting throughout")
	assert.Equal(t, Negative, got.Sentiment)
}

func TestKeywordClassifierConfidenceBounds(t *testing.T) {
	c := NewKeywordClassifier()
	// Pile every positive keyword into one review; confidence must stay in [0,100].
	got := c.Classify(context.Background(), strings.Join(positiveWords, " "))
	assert.Equal(t, Positive, got.Sentiment)
	assert.GreaterOrEqual(t, got.Confidence, 0.0)
	assert.LessOrEqual(t, got.Confidence, 100.0)
	assert.True(t, ValidLabel(got.Sentiment))
}
