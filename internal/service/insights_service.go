package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/convopulse/convopulse/internal/analytics"
	"github.com/convopulse/convopulse/internal/config"
	"github.com/convopulse/convopulse/internal/domain"
	"github.com/convopulse/convopulse/pkg/metrics"
)

// DataSource supplies interaction snapshots and optional pre-aggregated
// rows from the interaction store.
type DataSource interface {
	ListInteractions(ctx context.Context, limit, offset int) ([]domain.Interaction, error)
	StatisticsSummary(ctx context.Context) (*domain.StatisticsSummary, error)
	SatisfactionDaily(ctx context.Context, limit int) ([]domain.SatisfactionStatsRow, error)
	SatisfactionByIntent(ctx context.Context) ([]domain.SatisfactionByIntentRow, error)
}

// InsightsService fetches interaction snapshots and runs the aggregation
// engine over them. Derived metrics are recomputed on every request and
// never persisted; only the raw snapshot is cached, briefly, to spare the
// upstream store.
type InsightsService struct {
	source DataSource
	cfg    config.AnalyticsConfig
	limit  int
	logger *zap.Logger

	mu        sync.RWMutex
	snapshot  []domain.Interaction
	fetchedAt time.Time
}

// NewInsightsService creates a new insights service.
func NewInsightsService(source DataSource, cfg config.AnalyticsConfig, fetchLimit int, logger *zap.Logger) *InsightsService {
	if fetchLimit <= 0 {
		fetchLimit = 500
	}
	return &InsightsService{
		source: source,
		cfg:    cfg,
		limit:  fetchLimit,
		logger: logger,
	}
}

// SegmentsResult holds the per-segment metrics plus the
// resolution-rate-ordered view used for leaderboard presentation.
type SegmentsResult struct {
	Key      string                         `json:"key"`
	Segments []analytics.SegmentPerformance `json:"segments"`
	Ranked   []analytics.SegmentPerformance `json:"ranked"`
}

// ScoredConversation is one interaction annotated with its quality score.
type ScoredConversation struct {
	InteractionID string                `json:"interaction_id"`
	Channel       string                `json:"channel"`
	Intent        string                `json:"intent"`
	AssignedAgent string                `json:"assigned_agent,omitempty"`
	Score         float64               `json:"score"`
	Tier          analytics.QualityTier `json:"tier"`
}

// QualityReport summarizes conversation quality across the snapshot.
type QualityReport struct {
	Total            int                  `json:"total"`
	Excellent        int                  `json:"excellent"`
	Good             int                  `json:"good"`
	NeedsImprovement int                  `json:"needs_improvement"`
	Conversations    []ScoredConversation `json:"conversations"`
}

// SatisfactionResult bundles the satisfaction trend and breakdowns.
type SatisfactionResult struct {
	Overall   analytics.FeedbackStats          `json:"overall"`
	Trend     []analytics.TrendPoint           `json:"trend"`
	ByIntent  []domain.SatisfactionByIntentRow `json:"by_intent"`
	ByChannel []analytics.ChannelStats         `json:"by_channel"`
}

// Overview returns the system-wide KPI metrics, preferring the upstream
// pre-aggregated summary field by field. A summary fetch failure degrades
// to fully local computation.
func (s *InsightsService) Overview(ctx context.Context) (analytics.DashboardMetrics, error) {
	interactions, err := s.interactions(ctx)
	if err != nil {
		return analytics.DashboardMetrics{}, err
	}

	summary, err := s.source.StatisticsSummary(ctx)
	if err != nil {
		s.logger.Warn("statistics summary unavailable, using local aggregates", zap.Error(err))
		summary = nil
	}

	return analytics.ComputeDashboardMetrics(interactions, summary), nil
}

// Segments returns per-segment performance for the requested grouping
// key, falling back to the configured default when key is empty.
func (s *InsightsService) Segments(ctx context.Context, key analytics.GroupKey) (*SegmentsResult, error) {
	if key == "" {
		key = analytics.GroupKey(s.cfg.SegmentKey)
	}
	if !key.Valid() {
		return nil, domain.ErrInvalidInput
	}

	interactions, err := s.interactions(ctx)
	if err != nil {
		return nil, err
	}

	segments := analytics.ComputeSegmentPerformance(interactions, key)
	return &SegmentsResult{
		Key:      string(key),
		Segments: segments,
		Ranked:   analytics.SortByResolutionRate(segments),
	}, nil
}

// Quality scores every conversation in the snapshot and tallies tiers.
func (s *InsightsService) Quality(ctx context.Context) (*QualityReport, error) {
	interactions, err := s.interactions(ctx)
	if err != nil {
		return nil, err
	}

	weights := s.scoreWeights()
	report := &QualityReport{
		Total:         len(interactions),
		Conversations: make([]ScoredConversation, 0, len(interactions)),
	}
	for _, it := range interactions {
		score := analytics.QualityScore(it, weights)
		tier := analytics.TierFor(score)
		switch tier {
		case analytics.TierExcellent:
			report.Excellent++
		case analytics.TierGood:
			report.Good++
		default:
			report.NeedsImprovement++
		}
		report.Conversations = append(report.Conversations, ScoredConversation{
			InteractionID: it.InteractionID,
			Channel:       it.Channel,
			Intent:        it.IntentKey(),
			AssignedAgent: it.AssignedAgent,
			Score:         score,
			Tier:          tier,
		})
	}
	return report, nil
}

// Satisfaction returns the satisfaction trend and breakdowns. Each
// optional upstream source degrades independently to local computation.
func (s *InsightsService) Satisfaction(ctx context.Context) (*SatisfactionResult, error) {
	interactions, err := s.interactions(ctx)
	if err != nil {
		return nil, err
	}

	trendRows, err := s.source.SatisfactionDaily(ctx, s.cfg.TrendWindow)
	if err != nil {
		s.logger.Warn("satisfaction trend unavailable, using flat fallback", zap.Error(err))
		trendRows = nil
	}

	intentRows, err := s.source.SatisfactionByIntent(ctx)
	if err != nil {
		s.logger.Warn("satisfaction by intent unavailable, computing locally", zap.Error(err))
		intentRows = nil
	}

	return &SatisfactionResult{
		Overall:   analytics.ComputeFeedbackStats(interactions),
		Trend:     analytics.SatisfactionTrend(interactions, trendRows, s.cfg.TrendWindow, s.cfg.FallbackPeriods),
		ByIntent:  analytics.SatisfactionByIntent(interactions, intentRows),
		ByChannel: analytics.ChannelBreakdown(interactions),
	}, nil
}

// Leaderboard returns the top interactions by composite score.
func (s *InsightsService) Leaderboard(ctx context.Context, limit int) ([]analytics.LeaderboardEntry, error) {
	interactions, err := s.interactions(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.LeaderboardSize
	}
	return analytics.ComputeLeaderboard(interactions, limit), nil
}

// interactions returns the current snapshot, refetching when the cached
// one has expired. A fetch failure with a live cache serves stale data
// rather than failing the request.
func (s *InsightsService) interactions(ctx context.Context) ([]domain.Interaction, error) {
	s.mu.RLock()
	if s.snapshot != nil && time.Since(s.fetchedAt) < s.cfg.SnapshotTTL {
		snap := s.snapshot
		s.mu.RUnlock()
		return snap, nil
	}
	s.mu.RUnlock()

	fetched, err := s.source.ListInteractions(ctx, s.limit, 0)
	if err != nil {
		s.mu.RLock()
		snap := s.snapshot
		s.mu.RUnlock()
		if snap != nil {
			s.logger.Warn("interaction fetch failed, serving stale snapshot", zap.Error(err))
			metrics.SnapshotStaleServes.Inc()
			return snap, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.snapshot = fetched
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	metrics.SnapshotRefreshes.Inc()
	metrics.InteractionsFetched.Set(float64(len(fetched)))
	return fetched, nil
}

func (s *InsightsService) scoreWeights() analytics.ScoreWeights {
	q := s.cfg.Quality
	if q == (config.QualityConfig{}) {
		return analytics.DefaultScoreWeights()
	}
	return analytics.ScoreWeights{
		SatisfactionPointValue: q.SatisfactionPointValue,
		SuccessBonus:           q.SuccessBonus,
		FastResponseBonus:      q.FastResponseBonus,
		FastResponseMaxMS:      q.FastResponseMaxMS,
		HandoffPenalty:         q.HandoffPenalty,
		DeescalationBonus:      q.DeescalationBonus,
	}
}
