package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/convopulse/convopulse/internal/analytics"
	"github.com/convopulse/convopulse/internal/config"
	"github.com/convopulse/convopulse/internal/domain"
)

type fakeSource struct {
	interactions []domain.Interaction
	summary      *domain.StatisticsSummary
	trend        []domain.SatisfactionStatsRow
	byIntent     []domain.SatisfactionByIntentRow

	listErr     error
	summaryErr  error
	trendErr    error
	byIntentErr error

	listCalls int
}

func (f *fakeSource) ListInteractions(ctx context.Context, limit, offset int) ([]domain.Interaction, error) {
	f.listCalls++
	return f.interactions, f.listErr
}

func (f *fakeSource) StatisticsSummary(ctx context.Context) (*domain.StatisticsSummary, error) {
	return f.summary, f.summaryErr
}

func (f *fakeSource) SatisfactionDaily(ctx context.Context, limit int) ([]domain.SatisfactionStatsRow, error) {
	return f.trend, f.trendErr
}

func (f *fakeSource) SatisfactionByIntent(ctx context.Context) ([]domain.SatisfactionByIntentRow, error) {
	return f.byIntent, f.byIntentErr
}

func intPtr(v int) *int { return &v }

func testConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		TrendWindow:     14,
		FallbackPeriods: 4,
		LeaderboardSize: 15,
		SegmentKey:      "intent",
		SnapshotTTL:     time.Minute,
	}
}

func newTestService(source *fakeSource) *InsightsService {
	return NewInsightsService(source, testConfig(), 100, zap.NewNop())
}

func TestOverviewPrefersUpstreamSummary(t *testing.T) {
	source := &fakeSource{
		interactions: []domain.Interaction{
			{Status: domain.StatusCompleted},
			{Status: domain.StatusFailed},
		},
		summary: &domain.StatisticsSummary{
			TotalInteractions:     intPtr(1000),
			CompletedInteractions: intPtr(900),
		},
	}
	svc := newTestService(source)

	m, err := svc.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1000, m.TotalInteractions)
	assert.InDelta(t, 90.0, m.SuccessRate, 0.001)
}

func TestOverviewDegradesWhenSummaryFails(t *testing.T) {
	source := &fakeSource{
		interactions: []domain.Interaction{
			{Status: domain.StatusCompleted},
			{Status: domain.StatusFailed},
		},
		summaryErr: domain.ErrUpstreamUnavailable,
	}
	svc := newTestService(source)

	m, err := svc.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalInteractions)
	assert.InDelta(t, 50.0, m.SuccessRate, 0.001)
}

func TestOverviewFailsWithoutSnapshot(t *testing.T) {
	source := &fakeSource{listErr: errors.New("connection refused")}
	svc := newTestService(source)

	_, err := svc.Overview(context.Background())

	assert.Error(t, err)
}

func TestSegmentsDefaultsToConfiguredKey(t *testing.T) {
	source := &fakeSource{
		interactions: []domain.Interaction{
			{Intent: "billing", Status: domain.StatusCompleted},
			{Intent: "refund", Status: domain.StatusFailed},
		},
	}
	svc := newTestService(source)

	result, err := svc.Segments(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, "intent", result.Key)
	require.Len(t, result.Segments, 2)
	// Ranked view sorts by resolution rate, base view keeps input order.
	assert.Equal(t, "billing", result.Ranked[0].SegmentName)
}

func TestSegmentsRejectsUnknownKey(t *testing.T) {
	svc := newTestService(&fakeSource{})

	_, err := svc.Segments(context.Background(), analytics.GroupKey("channel"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestQualityTierTally(t *testing.T) {
	sat5 := 5
	sat3 := 3
	source := &fakeSource{
		interactions: []domain.Interaction{
			{InteractionID: "a", CustomerSatisfaction: &sat5},
			{InteractionID: "b", CustomerSatisfaction: &sat3},
			{InteractionID: "c"},
		},
	}
	svc := newTestService(source)

	report, err := svc.Quality(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Excellent)
	assert.Equal(t, 1, report.Good)
	assert.Equal(t, 1, report.NeedsImprovement)
	require.Len(t, report.Conversations, 3)
	assert.Equal(t, analytics.TierExcellent, report.Conversations[0].Tier)
}

func TestSatisfactionDegradesPerSource(t *testing.T) {
	source := &fakeSource{
		interactions: []domain.Interaction{
			{Channel: domain.ChannelChat, Intent: "billing", SatisfactionScore: intPtr(1)},
			{Channel: domain.ChannelChat, Intent: "billing", SatisfactionScore: intPtr(2)},
		},
		trendErr: domain.ErrUpstreamUnavailable,
		byIntent: []domain.SatisfactionByIntentRow{
			{Intent: "from_upstream", TotalWithFeedback: 5},
		},
	}
	svc := newTestService(source)

	result, err := svc.Satisfaction(context.Background())

	require.NoError(t, err)
	// Trend fell back to the flat series.
	require.Len(t, result.Trend, 4)
	assert.Equal(t, "W1", result.Trend[0].Label)
	assert.InDelta(t, 50.0, result.Trend[0].SatisfactionRatePct, 0.001)
	// By-intent still came from upstream.
	require.Len(t, result.ByIntent, 1)
	assert.Equal(t, "from_upstream", result.ByIntent[0].Intent)
	// Channel breakdown is always local.
	require.Len(t, result.ByChannel, 1)
	assert.Equal(t, domain.ChannelChat, result.ByChannel[0].Channel)
}

func TestLeaderboardUsesConfiguredDefault(t *testing.T) {
	interactions := make([]domain.Interaction, 40)
	for i := range interactions {
		interactions[i] = domain.Interaction{Status: domain.StatusCompleted}
	}
	source := &fakeSource{interactions: interactions}
	svc := newTestService(source)

	entries, err := svc.Leaderboard(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, entries, 15)
}

func TestSnapshotCaching(t *testing.T) {
	source := &fakeSource{
		interactions: []domain.Interaction{{Status: domain.StatusCompleted}},
	}
	svc := newTestService(source)

	_, err := svc.Leaderboard(context.Background(), 5)
	require.NoError(t, err)
	_, err = svc.Leaderboard(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 1, source.listCalls)
}

func TestStaleSnapshotServedOnFetchFailure(t *testing.T) {
	source := &fakeSource{
		interactions: []domain.Interaction{{Status: domain.StatusCompleted}},
	}
	cfg := testConfig()
	cfg.SnapshotTTL = 0 // every request refetches
	svc := NewInsightsService(source, cfg, 100, zap.NewNop())

	_, err := svc.Leaderboard(context.Background(), 5)
	require.NoError(t, err)

	source.listErr = errors.New("upstream down")
	entries, err := svc.Leaderboard(context.Background(), 5)

	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
