package ingest

import (
	"math"

	"adscope/internal/domain/ads"
)

// Scoring weights. Each signal is capped so no single metric can dominate
// the composite: impressions are the primary signal (50), cost efficiency
// second (30), persistence and disclosed reach breadth are tie-breakers
// (10 each).
const (
	reachDivisor       = 100000.0
	reachCap           = 50.0
	efficiencyCap      = 30.0
	longevityBonus     = 10.0
	breakdownPointsPer = 2.0
	breakdownCap       = 10.0
	maxScore           = 100.0
)

// Scorer derives the ranking metrics from an ad's disclosed numbers. It is
// deterministic and side-effect-free: identical input always yields the
// same scores, which re-scoring relies on.
type Scorer struct {
	// EfficiencyDivisor scales impressions-per-spend before capping. The
	// constant has no principled derivation, so it is tunable
	// (SCORE_EFFICIENCY_DIVISOR) rather than hard-coded.
	EfficiencyDivisor float64
}

func NewScorer() *Scorer {
	return &Scorer{EfficiencyDivisor: 100}
}

// Score computes the performance score (clamped to [0,100]) and
// engagement rate (impressions per spend unit, 0 when spend is unknown).
func (s *Scorer) Score(ad *ads.Ad) (performance, engagement float64) {
	impressions := ParseMetricValue(ad.Impressions)
	spend := ParseMetricValue(ad.Spend)

	score := math.Min(impressions/reachDivisor, reachCap)

	if spend > 0 {
		score += math.Min((impressions/spend)/s.EfficiencyDivisor, efficiencyCap)
		engagement = impressions / spend
	}

	// Still-running ads are likely performing well.
	if ad.AdDeliveryStartTime != "" && ad.AdDeliveryStopTime == "" {
		score += longevityBonus
	}

	score += math.Min(breakdownPointsPer*float64(ad.ReachBreakdownCount()), breakdownCap)

	performance = math.Max(0, math.Min(score, maxScore))
	return performance, engagement
}

// Apply stores the derived scores on the ad.
func (s *Scorer) Apply(ad *ads.Ad) {
	ad.PerformanceScore, ad.EngagementRate = s.Score(ad)
}
