package sentiment

import "testing"

func TestClassifyThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  Bucket
	}{
		{0.0, Negative},
		{0.4, Negative},
		{0.41, Neutral},
		{0.59, Neutral},
		{0.6, Positive},
		{1.0, Positive},
		// Out-of-range scores clamp instead of failing.
		{-0.5, Negative},
		{1.5, Positive},
	}
	for _, tt := range tests {
		got := Classify(tt.score)
		if got.Bucket != tt.want {
			t.Errorf("Classify(%v).Bucket = %v, want %v", tt.score, got.Bucket, tt.want)
		}
	}
}

func TestClassifyLabelsAndTones(t *testing.T) {
	if c := Classify(0.9); c.Label != "Positive" || c.Tone != ToneSuccess {
		t.Errorf("Classify(0.9) = %+v, want Positive/success", c)
	}
	if c := Classify(0.5); c.Label != "Neutral" || c.Tone != ToneWarning {
		t.Errorf("Classify(0.5) = %+v, want Neutral/warning", c)
	}
	if c := Classify(0.1); c.Label != "Negative" || c.Tone != ToneDanger {
		t.Errorf("Classify(0.1) = %+v, want Negative/danger", c)
	}
}

// The review-level classifier keeps its own, looser thresholds. The two
// rules disagree in the 0.5-0.6 and 0.3-0.4 ranges and that is intended.
func TestClassifyReviewThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  Bucket
	}{
		{0.0, Negative},
		{0.29, Negative},
		{0.3, Neutral},
		{0.49, Neutral},
		{0.5, Positive},
		{1.0, Positive},
	}
	for _, tt := range tests {
		got := ClassifyReview(tt.score)
		if got.Bucket != tt.want {
			t.Errorf("ClassifyReview(%v).Bucket = %v, want %v", tt.score, got.Bucket, tt.want)
		}
	}
}

func TestClassifiersDivergeInOverlap(t *testing.T) {
	// 0.55 is positive for a review row but neutral for a product badge.
	if got := Classify(0.55).Bucket; got != Neutral {
		t.Errorf("Classify(0.55) = %v, want neutral", got)
	}
	if got := ClassifyReview(0.55).Bucket; got != Positive {
		t.Errorf("ClassifyReview(0.55) = %v, want positive", got)
	}
}
