// Package enrich runs rate-limited classification over record batches and
// defines the result schemas every enriched record carries.
package enrich

import "math"

const (
	// DefaultConfidence substitutes missing or out-of-range scores.
	DefaultConfidence = 0.5

	defaultReasoning = "no specific reasoning provided"
)

// Categorization labels a record with the business category taxonomy.
type Categorization struct {
	PrimaryCategory     string
	SecondaryCategories []string
	Confidence          float64
	Keywords            []string
	Reasoning           string
}

// DefaultCategorization returns the full schema with default values. A non-nil
// err records the failure in the reasoning field so it stays visible in the
// persisted row.
func DefaultCategorization(err error) Categorization {
	c := Categorization{
		PrimaryCategory:     "Uncategorized",
		SecondaryCategories: []string{},
		Confidence:          DefaultConfidence,
		Keywords:            []string{},
		Reasoning:           defaultReasoning,
	}
	if err != nil {
		c.Reasoning = "categorization failed: " + err.Error()
	}
	return c
}

// Sentiment labels a record as Positive, Negative or Neutral.
type Sentiment struct {
	Label       string
	Confidence  float64
	KeyEmotions []string
	Reasoning   string
}

func DefaultSentiment(err error) Sentiment {
	s := Sentiment{
		Label:       "Neutral",
		Confidence:  DefaultConfidence,
		KeyEmotions: []string{},
		Reasoning:   defaultReasoning,
	}
	if err != nil {
		s.Reasoning = "sentiment analysis failed: " + err.Error()
	}
	return s
}

// ValidConfidence reports whether a capability-returned score is usable.
// Anything outside [0,1] is replaced with DefaultConfidence at the boundary
// rather than clamped, so a malformed score never leaks downstream.
func ValidConfidence(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
