package analytics

import "github.com/convopulse/convopulse/internal/domain"

// QualityTier labels a conversation quality score bracket.
type QualityTier string

const (
	TierExcellent        QualityTier = "Excellent"
	TierGood             QualityTier = "Good"
	TierNeedsImprovement QualityTier = "Needs Improvement"
)

// Tier thresholds on the 0-100 scale.
const (
	excellentThreshold = 75
	goodThreshold      = 50
)

// ScoreWeights holds the tunable constants of the heuristic quality
// scorer. The scoring algorithm itself never changes; only these weights
// do.
type ScoreWeights struct {
	// SatisfactionPointValue maps the legacy 1-5 satisfaction scale onto
	// the 100-point base (score = rating * value, 0 when unrated).
	SatisfactionPointValue float64
	SuccessBonus           float64
	FastResponseBonus      float64
	FastResponseMaxMS      float64
	HandoffPenalty         float64
	DeescalationBonus      float64
}

// DefaultScoreWeights returns the production weights.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		SatisfactionPointValue: 20,
		SuccessBonus:           10,
		FastResponseBonus:      10,
		FastResponseMaxMS:      2000,
		HandoffPenalty:         10,
		DeescalationBonus:      15,
	}
}

// QualityScore combines satisfaction, outcome, latency, escalation and
// emotional-trajectory signals into a single 0-100 estimate. Deterministic
// and side-effect free; all-missing optional fields score exactly 0.
func QualityScore(it domain.Interaction, w ScoreWeights) float64 {
	score := 0.0
	if it.CustomerSatisfaction != nil {
		score = float64(*it.CustomerSatisfaction) * w.SatisfactionPointValue
	}
	if it.Success != nil && *it.Success {
		score += w.SuccessBonus
	}
	if it.ExecutionTimeMS != nil && *it.ExecutionTimeMS < w.FastResponseMaxMS {
		score += w.FastResponseBonus
	}
	if it.IsHandoff {
		score -= w.HandoffPenalty
	}
	if deescalated(it.ConversationHistory) {
		score += w.DeescalationBonus
	}
	return clamp(score, 0, 100)
}

// TierFor maps a score onto its quality tier.
func TierFor(score float64) QualityTier {
	switch {
	case score >= excellentThreshold:
		return TierExcellent
	case score >= goodThreshold:
		return TierGood
	default:
		return TierNeedsImprovement
	}
}

// deescalated detects a conversation that opened frustrated and closed
// satisfied or positive. Requires more than two messages so a single
// exchange never qualifies.
func deescalated(history []domain.ConversationMessage) bool {
	if len(history) <= 2 {
		return false
	}
	if history[0].DetectedEmotion != domain.EmotionFrustrated {
		return false
	}
	last := history[len(history)-1].DetectedEmotion
	return last == domain.EmotionSatisfied || last == domain.EmotionPositive
}
