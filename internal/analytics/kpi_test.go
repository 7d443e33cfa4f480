package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/convopulse/convopulse/internal/domain"
)

func boolPtr(b bool) *bool        { return &b }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestComputeDashboardMetricsEmpty(t *testing.T) {
	m := ComputeDashboardMetrics(nil, nil)

	assert.Equal(t, 0, m.TotalInteractions)
	assert.Zero(t, m.SuccessRate)
	assert.Zero(t, m.HandoffRate)
	assert.Zero(t, m.AvgResponseTime)
	assert.Zero(t, m.CustomerSatisfaction)
	assert.Zero(t, m.ActiveIssues.Total())
}

func TestComputeDashboardMetricsLocal(t *testing.T) {
	interactions := []domain.Interaction{
		{Status: domain.StatusCompleted, Success: boolPtr(true), SatisfactionScore: intPtr(1), Urgency: domain.UrgencyLow},
		{Status: domain.StatusFailed, Success: boolPtr(false), SatisfactionScore: intPtr(2), Urgency: domain.UrgencyHigh},
		{Status: domain.StatusInProgress, Urgency: domain.UrgencyCritical},
	}

	m := ComputeDashboardMetrics(interactions, nil)

	assert.Equal(t, 3, m.TotalInteractions)
	assert.InDelta(t, 33.33, m.SuccessRate, 0.01)
	assert.InDelta(t, 50.0, m.CustomerSatisfaction, 0.001)
	assert.Equal(t, 1, m.ActiveIssues.Total())
	assert.Equal(t, 1, m.ActiveIssues.Critical)
}

func TestComputeDashboardMetricsPrefersSummary(t *testing.T) {
	interactions := []domain.Interaction{
		{Status: domain.StatusCompleted},
		{Status: domain.StatusFailed, IsHandoff: true},
	}
	summary := &domain.StatisticsSummary{
		TotalInteractions:     intPtr(200),
		CompletedInteractions: intPtr(150),
		AvgExecutionTime:      floatPtr(420),
	}

	m := ComputeDashboardMetrics(interactions, summary)

	assert.Equal(t, 200, m.TotalInteractions)
	assert.InDelta(t, 75.0, m.SuccessRate, 0.001)
	// TotalHandoffs absent from the summary: handoff count falls back to
	// the local one, against the external total.
	assert.InDelta(t, 0.5, m.HandoffRate, 0.001)
	assert.InDelta(t, 420.0, m.AvgResponseTime, 0.001)
}

func TestComputeDashboardMetricsAvgResponseTime(t *testing.T) {
	// Missing execution times count as 0 over the full record count.
	interactions := []domain.Interaction{
		{Status: domain.StatusCompleted, ExecutionTimeMS: floatPtr(1000)},
		{Status: domain.StatusCompleted, ExecutionTimeMS: floatPtr(3000)},
		{Status: domain.StatusCompleted},
		{Status: domain.StatusCompleted},
	}

	m := ComputeDashboardMetrics(interactions, nil)

	assert.InDelta(t, 1000.0, m.AvgResponseTime, 0.001)
}

func TestComputeDashboardMetricsIgnoresInvalidFeedback(t *testing.T) {
	interactions := []domain.Interaction{
		{Status: domain.StatusCompleted, SatisfactionScore: intPtr(1)},
		{Status: domain.StatusCompleted, SatisfactionScore: intPtr(5)},
		{Status: domain.StatusCompleted, SatisfactionScore: intPtr(0)},
	}

	m := ComputeDashboardMetrics(interactions, nil)

	// Only the score of 1 is valid feedback.
	assert.InDelta(t, 100.0, m.CustomerSatisfaction, 0.001)
}

func TestActiveIssuesBucketsSumToOpenCount(t *testing.T) {
	interactions := []domain.Interaction{
		{Status: domain.StatusPending, Urgency: domain.UrgencyLow},
		{Status: domain.StatusInProgress, Urgency: domain.UrgencyMedium},
		{Status: domain.StatusInProgress, Urgency: domain.UrgencyMedium},
		{Status: domain.StatusPending, Urgency: domain.UrgencyHigh},
		{Status: domain.StatusCompleted, Urgency: domain.UrgencyCritical},
		{Status: domain.StatusFailed, Urgency: domain.UrgencyCritical},
	}

	m := ComputeDashboardMetrics(interactions, nil)

	open := 0
	for _, it := range interactions {
		if it.IsOpen() {
			open++
		}
	}
	assert.Equal(t, open, m.ActiveIssues.Total())
	assert.Equal(t, IssueCounts{Low: 1, Medium: 2, High: 1}, m.ActiveIssues)
}

func TestRatePctBounds(t *testing.T) {
	tests := []struct {
		name     string
		num, den int
		expected float64
	}{
		{"zero denominator", 5, 0, 0},
		{"negative denominator", 5, -1, 0},
		{"full rate", 7, 7, 100},
		{"capped above 100", 9, 3, 100},
		{"zero numerator", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ratePct(tt.num, tt.den), 0.001)
		})
	}
}
