package domain

// StatisticsSummary mirrors the upstream statistics-summary endpoint. All
// fields are pointers: the aggregator prefers an externally supplied value
// field by field and falls back to local computation when one is absent.
type StatisticsSummary struct {
	TotalInteractions     *int     `json:"total_interactions"`
	CompletedInteractions *int     `json:"completed_interactions"`
	FailedInteractions    *int     `json:"failed_interactions"`
	TotalHandoffs         *int     `json:"total_handoffs"`
	AvgConfidence         *float64 `json:"avg_confidence"`
	AvgExecutionTime      *float64 `json:"avg_execution_time"`
	AvgSatisfaction       *float64 `json:"avg_satisfaction"`
	UniqueCustomers       *int     `json:"unique_customers"`
	ChannelsUsed          *int     `json:"channels_used"`

	FeedbacksCollected        *int     `json:"feedbacks_collected"`
	SatisfiedCount            *int     `json:"satisfied_count"`
	UnsatisfiedCount          *int     `json:"unsatisfied_count"`
	SatisfactionRatePct       *float64 `json:"satisfaction_rate_pct"`
	FeedbackCollectionRatePct *float64 `json:"feedback_collection_rate_pct"`

	CriticalIssues     *int `json:"critical_issues"`
	HighPriorityIssues *int `json:"high_priority_issues"`
}

// SatisfactionStatsRow is one time-bucketed row of the upstream
// satisfaction-trend endpoint, newest first.
type SatisfactionStatsRow struct {
	Date                      string  `json:"date"`
	TotalInteractions         int     `json:"total_interactions"`
	FeedbacksCollected        int     `json:"feedbacks_collected"`
	SatisfiedCount            int     `json:"satisfied_count"`
	UnsatisfiedCount          int     `json:"unsatisfied_count"`
	SatisfactionRatePct       float64 `json:"satisfaction_rate_pct"`
	FeedbackCollectionRatePct float64 `json:"feedback_collection_rate_pct"`
}

// SatisfactionByIntentRow is one row of the upstream satisfaction-by-intent
// endpoint, or of the locally computed fallback.
type SatisfactionByIntentRow struct {
	Intent              string  `json:"intent"`
	TotalWithFeedback   int     `json:"total_with_feedback"`
	Satisfied           int     `json:"satisfied"`
	Unsatisfied         int     `json:"unsatisfied"`
	SatisfactionRatePct float64 `json:"satisfaction_rate_pct"`
	Status              string  `json:"status,omitempty"`
}
