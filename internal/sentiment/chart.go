package sentiment

import (
	"math"
	"sort"
	"time"
)

// Slice is one segment of a sentiment distribution chart.
type Slice struct {
	Label      string
	Value      int
	Percentage int
}

// Distribution builds the three-segment distribution series from bucket
// counts. Percentages are rounded; a zero total yields all zeros rather
// than a division fault.
func Distribution(positive, neutral, negative int) []Slice {
	total := positive + neutral + negative
	pct := func(v int) int {
		if total == 0 {
			return 0
		}
		return int(math.Round(float64(v) / float64(total) * 100))
	}
	return []Slice{
		{Label: "Positive", Value: positive, Percentage: pct(positive)},
		{Label: "Neutral", Value: neutral, Percentage: pct(neutral)},
		{Label: "Negative", Value: negative, Percentage: pct(negative)},
	}
}

// ReviewPoint is the transformer's view of a review. Keywords are the bare
// phrases, already unwrapped from their wire shape.
type ReviewPoint struct {
	Text      string
	Sentiment float64
	Date      string
	Keywords  []string
}

// HeatmapCell is one time-ordered cell of the review heat-map.
type HeatmapCell struct {
	Index       int
	Sentiment   float64
	ColorBucket int
	StarRating  float64
	SummaryText string
}

const (
	summaryLimit    = 60
	maxCellKeywords = 3
)

// dateLayouts are tried in order when sorting reviews chronologically.
var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}

// HeatmapSeries builds the time-ordered heat-map series from reviews.
// When the first review carries a date, reviews are stable-sorted
// ascending by parsed date; any pair that fails to parse keeps its
// original relative order. The result is recomputed fresh per call.
func HeatmapSeries(reviews []ReviewPoint) []HeatmapCell {
	if len(reviews) == 0 {
		return nil
	}

	ordered := make([]ReviewPoint, len(reviews))
	copy(ordered, reviews)
	if ordered[0].Date != "" {
		sort.SliceStable(ordered, func(i, j int) bool {
			ti, okI := parseDate(ordered[i].Date)
			tj, okJ := parseDate(ordered[j].Date)
			if !okI || !okJ {
				return false
			}
			return ti.Before(tj)
		})
	}

	cells := make([]HeatmapCell, len(ordered))
	for i, r := range ordered {
		cells[i] = HeatmapCell{
			Index:       i,
			Sentiment:   r.Sentiment,
			ColorBucket: colorBucket(r.Sentiment),
			StarRating:  starRating(r.Sentiment),
			SummaryText: summarize(r),
		}
	}
	return cells
}

// colorBucket maps a score to one of five heat levels. The five-way split
// carries more granularity than the three-way badge classifier on purpose:
// the heat-map reads like a star scale.
func colorBucket(score float64) int {
	switch {
	case score >= 0.8:
		return 5
	case score >= 0.6:
		return 4
	case score >= 0.4:
		return 3
	case score >= 0.2:
		return 2
	default:
		return 1
	}
}

// starRating converts a [0,1] score to a 0-5 star scale with one decimal.
func starRating(score float64) float64 {
	return math.Round(score*5*10) / 10
}

func summarize(r ReviewPoint) string {
	text := r.Text
	if runes := []rune(text); len(runes) > summaryLimit {
		text = string(runes[:summaryLimit]) + "…"
	}
	kws := r.Keywords
	if len(kws) > maxCellKeywords {
		kws = kws[:maxCellKeywords]
	}
	for _, kw := range kws {
		if kw == "" {
			continue
		}
		text += " · " + kw
	}
	return text
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
