package analytics

import (
	"sort"

	"github.com/convopulse/convopulse/internal/domain"
)

// GroupKey selects the segmentation dimension.
type GroupKey string

const (
	// GroupByIntent partitions interactions by detected intent. Records
	// without an intent land in the unknown_intent group.
	GroupByIntent GroupKey = "intent"
	// GroupByAgent partitions interactions by assigned agent. Records with
	// no assigned agent are excluded entirely.
	GroupByAgent GroupKey = "agent"
)

// Valid reports whether the key names a supported dimension.
func (k GroupKey) Valid() bool {
	return k == GroupByIntent || k == GroupByAgent
}

// SegmentPerformance holds the derived metrics for one group of
// interactions sharing a classification key.
type SegmentPerformance struct {
	SegmentName         string               `json:"segment_name"`
	InteractionsHandled int                  `json:"interactions_handled"`
	ResolutionRate      float64              `json:"resolution_rate"`
	AvgResolutionTime   float64              `json:"avg_resolution_time"`
	SatisfiedRatePct    float64              `json:"satisfied_rate_pct"`
	FeedbackRatePct     float64              `json:"feedback_rate_pct"`
	TopHandoffReasons   []HandoffReasonCount `json:"top_handoff_reasons"`
}

// HandoffReasonCount is one entry of a segment's escalation histogram.
type HandoffReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

const topReasonLimit = 3

// ComputeSegmentPerformance partitions interactions by the given key and
// derives per-group performance metrics. Groups come back in first-seen
// order; use SortByResolutionRate for leaderboard presentation.
func ComputeSegmentPerformance(interactions []domain.Interaction, key GroupKey) []SegmentPerformance {
	groups := make(map[string][]domain.Interaction)
	var order []string

	for _, it := range interactions {
		name, ok := segmentKey(it, key)
		if !ok {
			continue
		}
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], it)
	}

	out := make([]SegmentPerformance, 0, len(order))
	for _, name := range order {
		out = append(out, segmentStats(name, groups[name]))
	}
	return out
}

// SortByResolutionRate returns a copy of the segments ordered by
// resolution rate descending, preserving input order on ties.
func SortByResolutionRate(segments []SegmentPerformance) []SegmentPerformance {
	sorted := make([]SegmentPerformance, len(segments))
	copy(sorted, segments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ResolutionRate > sorted[j].ResolutionRate
	})
	return sorted
}

func segmentKey(it domain.Interaction, key GroupKey) (string, bool) {
	switch key {
	case GroupByAgent:
		if it.AssignedAgent == "" {
			return "", false
		}
		return it.AssignedAgent, true
	default:
		return it.IntentKey(), true
	}
}

func segmentStats(name string, items []domain.Interaction) SegmentPerformance {
	var resolved, feedback, satisfied int
	var resolutionSum float64
	var resolutionN int

	reasonCounts := make(map[string]int)
	reasonFirstSeen := make(map[string]int)

	for _, it := range items {
		if it.Resolved() {
			resolved++
		}
		if it.ResolutionTimeSeconds != nil {
			resolutionSum += finite(*it.ResolutionTimeSeconds)
			resolutionN++
		}
		if it.HasFeedback() {
			feedback++
			if it.IsSatisfied() {
				satisfied++
			}
		}
		if it.IsHandoff && it.HandoffReason != "" {
			if _, seen := reasonCounts[it.HandoffReason]; !seen {
				reasonFirstSeen[it.HandoffReason] = len(reasonFirstSeen)
			}
			reasonCounts[it.HandoffReason]++
		}
	}

	avgResolution := 0.0
	if resolutionN > 0 {
		avgResolution = resolutionSum / float64(resolutionN)
	}

	return SegmentPerformance{
		SegmentName:         name,
		InteractionsHandled: len(items),
		ResolutionRate:      ratePct(resolved, len(items)),
		AvgResolutionTime:   avgResolution,
		SatisfiedRatePct:    ratePct(satisfied, feedback),
		FeedbackRatePct:     ratePct(feedback, len(items)),
		TopHandoffReasons:   topReasons(reasonCounts, reasonFirstSeen),
	}
}

// topReasons ranks the escalation histogram by count descending. Ties go
// to the reason encountered first.
func topReasons(counts map[string]int, firstSeen map[string]int) []HandoffReasonCount {
	reasons := make([]HandoffReasonCount, 0, len(counts))
	for reason, count := range counts {
		reasons = append(reasons, HandoffReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(reasons, func(i, j int) bool {
		if reasons[i].Count != reasons[j].Count {
			return reasons[i].Count > reasons[j].Count
		}
		return firstSeen[reasons[i].Reason] < firstSeen[reasons[j].Reason]
	})
	if len(reasons) > topReasonLimit {
		reasons = reasons[:topReasonLimit]
	}
	return reasons
}
