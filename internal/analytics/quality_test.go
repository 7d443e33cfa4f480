package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/convopulse/convopulse/internal/domain"
)

func frustratedToSatisfied() []domain.ConversationMessage {
	return []domain.ConversationMessage{
		{Speaker: domain.SpeakerCustomer, DetectedEmotion: domain.EmotionFrustrated},
		{Speaker: domain.SpeakerBot, DetectedEmotion: domain.EmotionNeutral},
		{Speaker: domain.SpeakerCustomer, DetectedEmotion: domain.EmotionSatisfied},
	}
}

func TestQualityScore(t *testing.T) {
	w := DefaultScoreWeights()

	tests := []struct {
		name     string
		it       domain.Interaction
		expected float64
	}{
		{
			name:     "all optional fields missing",
			it:       domain.Interaction{},
			expected: 0,
		},
		{
			name: "satisfaction base only",
			it:   domain.Interaction{CustomerSatisfaction: intPtr(4)},
			// 4 * 20
			expected: 80,
		},
		{
			name: "success and fast response bonuses",
			it: domain.Interaction{
				CustomerSatisfaction: intPtr(3),
				Success:              boolPtr(true),
				ExecutionTimeMS:      floatPtr(1500),
			},
			expected: 80,
		},
		{
			name: "slow response earns no bonus",
			it: domain.Interaction{
				CustomerSatisfaction: intPtr(3),
				ExecutionTimeMS:      floatPtr(2000),
			},
			expected: 60,
		},
		{
			name: "handoff penalty",
			it: domain.Interaction{
				CustomerSatisfaction: intPtr(3),
				IsHandoff:            true,
			},
			expected: 50,
		},
		{
			name: "clamped at 100",
			it: domain.Interaction{
				CustomerSatisfaction: intPtr(5),
				Success:              boolPtr(true),
				ExecutionTimeMS:      floatPtr(100),
			},
			expected: 100,
		},
		{
			name: "clamped at 0",
			it: domain.Interaction{
				IsHandoff: true,
			},
			expected: 0,
		},
		{
			name: "de-escalation bonus",
			it: domain.Interaction{
				CustomerSatisfaction: intPtr(3),
				ConversationHistory:  frustratedToSatisfied(),
			},
			expected: 75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := QualityScore(tt.it, w)
			assert.InDelta(t, tt.expected, score, 0.001)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		})
	}
}

func TestDeescalationBonusConditions(t *testing.T) {
	w := DefaultScoreWeights()
	base := domain.Interaction{CustomerSatisfaction: intPtr(3)}

	withHistory := func(history []domain.ConversationMessage) domain.Interaction {
		it := base
		it.ConversationHistory = history
		return it
	}

	// All three conditions met: +15 over the 60-point base.
	assert.InDelta(t, 75.0, QualityScore(withHistory(frustratedToSatisfied()), w), 0.001)

	// Only two messages: no bonus.
	short := frustratedToSatisfied()[:2]
	short[1].DetectedEmotion = domain.EmotionSatisfied
	assert.InDelta(t, 60.0, QualityScore(withHistory(short), w), 0.001)

	// First message not frustrated: no bonus.
	calmStart := frustratedToSatisfied()
	calmStart[0].DetectedEmotion = domain.EmotionNeutral
	assert.InDelta(t, 60.0, QualityScore(withHistory(calmStart), w), 0.001)

	// Last message neither satisfied nor positive: no bonus.
	badEnd := frustratedToSatisfied()
	badEnd[2].DetectedEmotion = domain.EmotionNegative
	assert.InDelta(t, 60.0, QualityScore(withHistory(badEnd), w), 0.001)

	// Positive ending qualifies too.
	positiveEnd := frustratedToSatisfied()
	positiveEnd[2].DetectedEmotion = domain.EmotionPositive
	assert.InDelta(t, 75.0, QualityScore(withHistory(positiveEnd), w), 0.001)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		tier  QualityTier
	}{
		{100, TierExcellent},
		{75, TierExcellent},
		{74.9, TierGood},
		{50, TierGood},
		{49.9, TierNeedsImprovement},
		{0, TierNeedsImprovement},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.tier, TierFor(tt.score), "score %v", tt.score)
	}
}
