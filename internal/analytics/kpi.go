package analytics

import "github.com/convopulse/convopulse/internal/domain"

// DashboardMetrics holds the system-wide KPIs for the overview section.
type DashboardMetrics struct {
	TotalInteractions    int         `json:"total_interactions"`
	SuccessRate          float64     `json:"success_rate"`
	HandoffRate          float64     `json:"handoff_rate"`
	AvgResponseTime      float64     `json:"avg_response_time"`
	CustomerSatisfaction float64     `json:"customer_satisfaction"`
	ActiveIssues         IssueCounts `json:"active_issues"`
}

// IssueCounts buckets open interactions by urgency.
type IssueCounts struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// Total returns the number of open interactions across all urgency levels.
func (c IssueCounts) Total() int {
	return c.Low + c.Medium + c.High + c.Critical
}

// ComputeDashboardMetrics derives the overview KPIs from an interaction
// snapshot. When a summary from the upstream store is supplied, its values
// win field by field; anything it lacks is computed locally. The
// satisfaction KPI and the active-issue buckets have no upstream
// counterpart and are always local.
func ComputeDashboardMetrics(interactions []domain.Interaction, summary *domain.StatisticsSummary) DashboardMetrics {
	var completedLocal, handoffsLocal int
	var execSum float64
	var feedbackCount, satisfiedCount int
	var issues IssueCounts

	for _, it := range interactions {
		if it.Status == domain.StatusCompleted {
			completedLocal++
		}
		if it.IsHandoff {
			handoffsLocal++
		}
		if it.ExecutionTimeMS != nil {
			execSum += finite(*it.ExecutionTimeMS)
		}
		if it.HasFeedback() {
			feedbackCount++
			if it.IsSatisfied() {
				satisfiedCount++
			}
		}
		if it.IsOpen() {
			switch it.Urgency {
			case domain.UrgencyLow:
				issues.Low++
			case domain.UrgencyMedium:
				issues.Medium++
			case domain.UrgencyHigh:
				issues.High++
			case domain.UrgencyCritical:
				issues.Critical++
			}
		}
	}

	avgLocal := 0.0
	if len(interactions) > 0 {
		avgLocal = execSum / float64(len(interactions))
	}

	var (
		total     = len(interactions)
		completed = completedLocal
		handoffs  = handoffsLocal
		avgExec   = avgLocal
	)
	if summary != nil {
		total = coalesce(summary.TotalInteractions, total)
		completed = coalesce(summary.CompletedInteractions, completed)
		handoffs = coalesce(summary.TotalHandoffs, handoffs)
		avgExec = coalesce(summary.AvgExecutionTime, avgExec)
	}

	return DashboardMetrics{
		TotalInteractions:    total,
		SuccessRate:          ratePct(completed, total),
		HandoffRate:          ratePct(handoffs, total),
		AvgResponseTime:      finite(avgExec),
		CustomerSatisfaction: ratePct(satisfiedCount, feedbackCount),
		ActiveIssues:         issues,
	}
}
