package analytics

import (
	"fmt"
	"sort"

	"github.com/convopulse/convopulse/internal/domain"
)

// FeedbackStats is the aggregate satisfaction summary over a whole
// interaction collection.
type FeedbackStats struct {
	FeedbackCount       int     `json:"feedback_count"`
	Satisfied           int     `json:"satisfied"`
	Unsatisfied         int     `json:"unsatisfied"`
	SatisfactionRatePct float64 `json:"satisfaction_rate_pct"`
	FeedbackRatePct     float64 `json:"feedback_rate_pct"`
}

// TrendPoint is one period of the satisfaction time series, oldest first.
type TrendPoint struct {
	Label               string  `json:"label"`
	SatisfactionRatePct float64 `json:"satisfaction_rate_pct"`
	FeedbackRatePct     float64 `json:"feedback_rate_pct"`
}

// ChannelStats is the per-channel satisfaction breakdown, always computed
// locally.
type ChannelStats struct {
	Channel             string  `json:"channel"`
	Total               int     `json:"total"`
	FeedbackCount       int     `json:"feedback_count"`
	Satisfied           int     `json:"satisfied"`
	Unsatisfied         int     `json:"unsatisfied"`
	FeedbackRatePct     float64 `json:"feedback_rate_pct"`
	SatisfactionRatePct float64 `json:"satisfaction_rate_pct"`
}

// By-intent status label thresholds.
const (
	intentExcellentPct  = 80
	intentAcceptablePct = 60
)

// By-intent status labels.
const (
	IntentStatusExcellent  = "Excellent"
	IntentStatusAcceptable = "Acceptable"
	IntentStatusNeedsWork  = "Needs work"
)

// ComputeFeedbackStats derives the flat satisfaction summary over the
// whole collection.
func ComputeFeedbackStats(interactions []domain.Interaction) FeedbackStats {
	var feedback, satisfied, unsatisfied int
	for _, it := range interactions {
		if !it.HasFeedback() {
			continue
		}
		feedback++
		if it.IsSatisfied() {
			satisfied++
		} else {
			unsatisfied++
		}
	}
	return FeedbackStats{
		FeedbackCount:       feedback,
		Satisfied:           satisfied,
		Unsatisfied:         unsatisfied,
		SatisfactionRatePct: ratePct(satisfied, feedback),
		FeedbackRatePct:     ratePct(feedback, len(interactions)),
	}
}

// SatisfactionTrend builds the time-ordered satisfaction series. Upstream
// rows arrive newest first and win when present: the window newest rows
// are reversed into chronological order. Without rows the series degrades
// to a flat one, repeating the collection-wide aggregate across
// fallbackPeriods synthetic periods. The flat fallback deliberately does
// not reconstruct history.
func SatisfactionTrend(interactions []domain.Interaction, rows []domain.SatisfactionStatsRow, window, fallbackPeriods int) []TrendPoint {
	if window <= 0 {
		window = 14
	}
	if len(rows) > 0 {
		if len(rows) > window {
			rows = rows[:window]
		}
		points := make([]TrendPoint, 0, len(rows))
		for i := len(rows) - 1; i >= 0; i-- {
			points = append(points, TrendPoint{
				Label:               rows[i].Date,
				SatisfactionRatePct: clamp(rows[i].SatisfactionRatePct, 0, 100),
				FeedbackRatePct:     clamp(rows[i].FeedbackCollectionRatePct, 0, 100),
			})
		}
		return points
	}

	if fallbackPeriods <= 0 {
		fallbackPeriods = 4
	}
	stats := ComputeFeedbackStats(interactions)
	points := make([]TrendPoint, 0, fallbackPeriods)
	for i := 0; i < fallbackPeriods; i++ {
		points = append(points, TrendPoint{
			Label:               fmt.Sprintf("W%d", i+1),
			SatisfactionRatePct: stats.SatisfactionRatePct,
			FeedbackRatePct:     stats.FeedbackRatePct,
		})
	}
	return points
}

// SatisfactionByIntent prefers upstream rows verbatim. Without them it
// groups feedback-bearing interactions by intent, labels each row, and
// sorts ascending by satisfaction rate so the worst-performing intents
// surface first.
func SatisfactionByIntent(interactions []domain.Interaction, rows []domain.SatisfactionByIntentRow) []domain.SatisfactionByIntentRow {
	if len(rows) > 0 {
		return rows
	}

	acc := make(map[string]*domain.SatisfactionByIntentRow)
	var order []string
	for _, it := range interactions {
		if !it.HasFeedback() {
			continue
		}
		key := it.IntentKey()
		row, ok := acc[key]
		if !ok {
			row = &domain.SatisfactionByIntentRow{Intent: key}
			acc[key] = row
			order = append(order, key)
		}
		row.TotalWithFeedback++
		if it.IsSatisfied() {
			row.Satisfied++
		} else {
			row.Unsatisfied++
		}
	}

	out := make([]domain.SatisfactionByIntentRow, 0, len(order))
	for _, key := range order {
		row := *acc[key]
		row.SatisfactionRatePct = ratePct(row.Satisfied, row.TotalWithFeedback)
		row.Status = intentStatus(row.SatisfactionRatePct)
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SatisfactionRatePct < out[j].SatisfactionRatePct
	})
	return out
}

// ChannelBreakdown groups interactions by channel, ordered by volume
// descending with first-seen order on ties.
func ChannelBreakdown(interactions []domain.Interaction) []ChannelStats {
	acc := make(map[string]*ChannelStats)
	var order []string
	for _, it := range interactions {
		stats, ok := acc[it.Channel]
		if !ok {
			stats = &ChannelStats{Channel: it.Channel}
			acc[it.Channel] = stats
			order = append(order, it.Channel)
		}
		stats.Total++
		if it.HasFeedback() {
			stats.FeedbackCount++
			if it.IsSatisfied() {
				stats.Satisfied++
			} else {
				stats.Unsatisfied++
			}
		}
	}

	out := make([]ChannelStats, 0, len(order))
	for _, ch := range order {
		stats := *acc[ch]
		stats.FeedbackRatePct = ratePct(stats.FeedbackCount, stats.Total)
		stats.SatisfactionRatePct = ratePct(stats.Satisfied, stats.FeedbackCount)
		out = append(out, stats)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}

func intentStatus(rate float64) string {
	switch {
	case rate >= intentExcellentPct:
		return IntentStatusExcellent
	case rate >= intentAcceptablePct:
		return IntentStatusAcceptable
	default:
		return IntentStatusNeedsWork
	}
}
