package sentiment

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// Keyword lists for the fallback classifier. Matching is substring
// containment on the lowercased text, not word-boundary aware, so
// "hateful" counts as a "hate" hit.
var positiveWords = []string{
	"good", "great", "excellent", "amazing", "awesome", "wonderful",
	"fantastic", "superb", "brilliant", "masterpiece", "loved", "best",
	"enjoy", "impressive", "beautiful", "perfect", "recommend", "favorite",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "disappointing", "waste",
	"boring", "poor", "worst", "hate", "dislike", "mediocre", "dull",
	"stupid", "failure", "disaster", "mess", "weak", "annoying",
}

// KeywordClassifier scores reviews by counting polarity keywords. It is
// the availability backstop: deterministic, dependency-free, and it
// always produces a result.
type KeywordClassifier struct{}

// NewKeywordClassifier returns the rule-based fallback classifier.
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Classify counts positive vs negative keyword hits and derives a label,
// a 0-100 confidence and a short rationale. Ties (including zero hits on
// both sides) are neutral with a fixed confidence of 30, deliberately
// low to signal genuine ambiguity.
func (c *KeywordClassifier) Classify(_ context.Context, text string) Result {
	lowered := strings.ToLower(text)

	var positiveCount, negativeCount int
	for _, w := range positiveWords {
		if strings.Contains(lowered, w) {
			positiveCount++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lowered, w) {
			negativeCount++
		}
	}

	var label string
	var polarity float64
	switch {
	case positiveCount > negativeCount:
		label = Positive
		polarity = math.Min(1.0, float64(positiveCount)/10)
	case negativeCount > positiveCount:
		label = Negative
		polarity = -math.Min(1.0, float64(negativeCount)/10)
	default:
		label = Neutral
		polarity = 0.0
	}

	var confidence float64
	if label == Neutral {
		confidence = 30
	} else {
		diff := math.Abs(float64(positiveCount - negativeCount))
		confidence = math.Min(100, diff/float64(positiveCount+negativeCount+1)*100)
		confidence = math.Round(confidence*10) / 10
	}

	return Result{
		Sentiment:  label,
		Confidence: confidence,
		Analysis:   fmt.Sprintf("Keyword analysis detected %s sentiment (polarity: %.2f)", label, polarity),
		Method:     "keyword",
	}
}
