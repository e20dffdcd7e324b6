package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"adscope/internal/domain/ads"
)

func TestScore_HighReachRunningAd(t *testing.T) {
	ad := &ads.Ad{
		Impressions:         "500000-1000000", // midpoint 750000
		Spend:               "15000-20000",    // midpoint 17500
		AdDeliveryStartTime: "2024-10-01T00:00:00Z",
		ReachBreakdown:      datatypes.JSON(`[{"country":"US"}]`),
	}

	scorer := NewScorer()
	performance, engagement := scorer.Score(ad)

	// reach 750000/100000 = 7.5, efficiency (750000/17500)/100 ≈ 0.4286,
	// +10 still running, +2 for one breakdown entry
	assert.InDelta(t, 19.9286, performance, 0.001)
	assert.InDelta(t, 42.8571, engagement, 0.001)
}

func TestScore_ClampedAt100(t *testing.T) {
	ad := &ads.Ad{
		Impressions:         "90000000", // reach component capped at 50
		Spend:               "10",       // efficiency component capped at 30
		AdDeliveryStartTime: "2024-10-01T00:00:00Z",
		ReachBreakdown:      datatypes.JSON(`[{},{},{},{},{},{},{}]`), // capped at 10
	}

	scorer := NewScorer()
	performance, _ := scorer.Score(ad)

	assert.Equal(t, 100.0, performance)
}

func TestScore_EachComponentCapped(t *testing.T) {
	scorer := NewScorer()

	// Reach only, over the cap.
	performance, _ := scorer.Score(&ads.Ad{Impressions: "10000000"})
	assert.Equal(t, 50.0, performance)

	// Breakdown only, over the cap.
	performance, _ = scorer.Score(&ads.Ad{
		Impressions:    "0",
		ReachBreakdown: datatypes.JSON(`[{},{},{},{},{},{},{},{},{}]`),
	})
	assert.Equal(t, 10.0, performance)
}

func TestScore_ZeroSpendMeansZeroEngagement(t *testing.T) {
	scorer := NewScorer()

	_, engagement := scorer.Score(&ads.Ad{Impressions: "100000", Spend: "0"})
	assert.Equal(t, 0.0, engagement)

	_, engagement = scorer.Score(&ads.Ad{Impressions: "100000", Spend: ""})
	assert.Equal(t, 0.0, engagement)
}

func TestScore_NoLongevityBonusWhenStopped(t *testing.T) {
	scorer := NewScorer()

	running, _ := scorer.Score(&ads.Ad{
		Impressions:         "0",
		AdDeliveryStartTime: "2024-01-01T00:00:00Z",
	})
	stopped, _ := scorer.Score(&ads.Ad{
		Impressions:         "0",
		AdDeliveryStartTime: "2024-01-01T00:00:00Z",
		AdDeliveryStopTime:  "2024-02-01T00:00:00Z",
	})

	assert.Equal(t, 10.0, running)
	assert.Equal(t, 0.0, stopped)
}

func TestScore_MalformedBreakdownCountsAsZero(t *testing.T) {
	scorer := NewScorer()

	performance, _ := scorer.Score(&ads.Ad{
		Impressions:    "0",
		ReachBreakdown: datatypes.JSON(`{"not":"an array"}`),
	})
	assert.Equal(t, 0.0, performance)
}

func TestScore_TunableEfficiencyDivisor(t *testing.T) {
	ad := &ads.Ad{Impressions: "10000", Spend: "100"}

	defaultScorer := NewScorer()
	perfDefault, _ := defaultScorer.Score(ad)
	assert.InDelta(t, 0.1+1.0, perfDefault, 0.0001) // reach 0.1 + efficiency 100/100

	tuned := &Scorer{EfficiencyDivisor: 10}
	perfTuned, _ := tuned.Score(ad)
	assert.InDelta(t, 0.1+10.0, perfTuned, 0.0001)
}

func TestScore_Deterministic(t *testing.T) {
	ad := &ads.Ad{
		Impressions:         "1000-5000",
		Spend:               "100-200",
		AdDeliveryStartTime: "2024-10-01T00:00:00Z",
	}

	scorer := NewScorer()
	p1, e1 := scorer.Score(ad)
	p2, e2 := scorer.Score(ad)
	assert.Equal(t, p1, p2)
	assert.Equal(t, e1, e2)
}
