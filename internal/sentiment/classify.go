// Package sentiment discretizes continuous sentiment scores into display
// buckets and transforms raw review data into chart-ready series. All
// functions are pure; the package holds no state.
package sentiment

// Bucket is a discrete sentiment class.
type Bucket string

const (
	Positive Bucket = "positive"
	Neutral  Bucket = "neutral"
	Negative Bucket = "negative"
)

// Tone is a semantic color token resolved to a concrete style by the UI
// layer. The values mirror the storefront's badge palette.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

// Classification is the display metadata for a classified score.
type Classification struct {
	Bucket Bucket
	Label  string
	Tone   Tone
}

// Classify maps a score in [0,1] to a bucket using the canonical
// product-level thresholds: >= 0.6 positive, <= 0.4 negative. Out-of-range
// scores are clamped, never rejected. This is the rule used by list
// badges, the filter engine, and the ad-hoc analyzer.
func Classify(score float64) Classification {
	score = clamp(score)
	switch {
	case score >= 0.6:
		return Classification{Bucket: Positive, Label: "Positive", Tone: ToneSuccess}
	case score <= 0.4:
		return Classification{Bucket: Negative, Label: "Negative", Tone: ToneDanger}
	default:
		return Classification{Bucket: Neutral, Label: "Neutral", Tone: ToneWarning}
	}
}

// ClassifyReview maps a per-review score using the historical review-level
// thresholds: >= 0.5 positive, < 0.3 negative. The detail view keeps this
// variant for parity with how individual reviews have always been badged;
// everything product-level goes through Classify.
func ClassifyReview(score float64) Classification {
	score = clamp(score)
	switch {
	case score >= 0.5:
		return Classification{Bucket: Positive, Label: "Positive", Tone: ToneSuccess}
	case score < 0.3:
		return Classification{Bucket: Negative, Label: "Negative", Tone: ToneDanger}
	default:
		return Classification{Bucket: Neutral, Label: "Neutral", Tone: ToneWarning}
	}
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
