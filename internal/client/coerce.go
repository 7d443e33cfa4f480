package client

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/convopulse/convopulse/internal/domain"
)

// flexFloat decodes a JSON number, a numeric string, or null. Wrong types
// and non-finite values coerce to 0 instead of failing the row.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	*f = 0
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			*f = flexFloat(v)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return nil
	}
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		*f = flexFloat(v)
	}
	return nil
}

// optFloat decodes like flexFloat but remembers whether a usable value
// was present at all, for the field-level merge downstream.
type optFloat struct {
	Value float64
	Set   bool
}

func (o *optFloat) UnmarshalJSON(b []byte) error {
	o.Value, o.Set = 0, false
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	var f flexFloat
	if err := f.UnmarshalJSON(b); err != nil {
		return nil
	}
	o.Value, o.Set = float64(f), true
	return nil
}

func (o optFloat) floatPtr() *float64 {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

func (o optFloat) intPtr() *int {
	if !o.Set {
		return nil
	}
	v := int(o.Value)
	return &v
}

// flexString decodes a JSON string, tolerating numbers and wrong types by
// defaulting to the empty string.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	*s = ""
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err == nil {
			*s = flexString(v)
		}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = flexString(n.String())
	}
	return nil
}

// rawSummary is the statistics-summary response before normalization.
type rawSummary struct {
	TotalInteractions     optFloat `json:"total_interactions"`
	CompletedInteractions optFloat `json:"completed_interactions"`
	FailedInteractions    optFloat `json:"failed_interactions"`
	TotalHandoffs         optFloat `json:"total_handoffs"`
	AvgConfidence         optFloat `json:"avg_confidence"`
	AvgExecutionTime      optFloat `json:"avg_execution_time"`
	AvgSatisfaction       optFloat `json:"avg_satisfaction"`
	UniqueCustomers       optFloat `json:"unique_customers"`
	ChannelsUsed          optFloat `json:"channels_used"`

	FeedbacksCollected        optFloat `json:"feedbacks_collected"`
	SatisfiedCount            optFloat `json:"satisfied_count"`
	UnsatisfiedCount          optFloat `json:"unsatisfied_count"`
	SatisfactionRatePct       optFloat `json:"satisfaction_rate_pct"`
	FeedbackCollectionRatePct optFloat `json:"feedback_collection_rate_pct"`

	CriticalIssues     optFloat `json:"critical_issues"`
	HighPriorityIssues optFloat `json:"high_priority_issues"`
}

func (r rawSummary) normalize() *domain.StatisticsSummary {
	return &domain.StatisticsSummary{
		TotalInteractions:     r.TotalInteractions.intPtr(),
		CompletedInteractions: r.CompletedInteractions.intPtr(),
		FailedInteractions:    r.FailedInteractions.intPtr(),
		TotalHandoffs:         r.TotalHandoffs.intPtr(),
		AvgConfidence:         r.AvgConfidence.floatPtr(),
		AvgExecutionTime:      r.AvgExecutionTime.floatPtr(),
		AvgSatisfaction:       r.AvgSatisfaction.floatPtr(),
		UniqueCustomers:       r.UniqueCustomers.intPtr(),
		ChannelsUsed:          r.ChannelsUsed.intPtr(),

		FeedbacksCollected:        r.FeedbacksCollected.intPtr(),
		SatisfiedCount:            r.SatisfiedCount.intPtr(),
		UnsatisfiedCount:          r.UnsatisfiedCount.intPtr(),
		SatisfactionRatePct:       r.SatisfactionRatePct.floatPtr(),
		FeedbackCollectionRatePct: r.FeedbackCollectionRatePct.floatPtr(),

		CriticalIssues:     r.CriticalIssues.intPtr(),
		HighPriorityIssues: r.HighPriorityIssues.intPtr(),
	}
}

// rawTrendRow is one satisfaction-daily row before normalization.
type rawTrendRow struct {
	Date                      flexString `json:"date"`
	TotalInteractions         flexFloat  `json:"total_interactions"`
	FeedbacksCollected        flexFloat  `json:"feedbacks_collected"`
	SatisfiedCount            flexFloat  `json:"satisfied_count"`
	UnsatisfiedCount          flexFloat  `json:"unsatisfied_count"`
	SatisfactionRatePct       flexFloat  `json:"satisfaction_rate_pct"`
	FeedbackCollectionRatePct flexFloat  `json:"feedback_collection_rate_pct"`
}

func (r rawTrendRow) normalize() domain.SatisfactionStatsRow {
	return domain.SatisfactionStatsRow{
		Date:                      string(r.Date),
		TotalInteractions:         int(r.TotalInteractions),
		FeedbacksCollected:        int(r.FeedbacksCollected),
		SatisfiedCount:            int(r.SatisfiedCount),
		UnsatisfiedCount:          int(r.UnsatisfiedCount),
		SatisfactionRatePct:       float64(r.SatisfactionRatePct),
		FeedbackCollectionRatePct: float64(r.FeedbackCollectionRatePct),
	}
}

// rawIntentRow is one satisfaction-by-intent row before normalization.
type rawIntentRow struct {
	Intent              flexString `json:"intent"`
	TotalWithFeedback   flexFloat  `json:"total_with_feedback"`
	Satisfied           flexFloat  `json:"satisfied"`
	Unsatisfied         flexFloat  `json:"unsatisfied"`
	SatisfactionRatePct flexFloat  `json:"satisfaction_rate_pct"`
	Status              flexString `json:"status"`
}

func (r rawIntentRow) normalize() domain.SatisfactionByIntentRow {
	return domain.SatisfactionByIntentRow{
		Intent:              string(r.Intent),
		TotalWithFeedback:   int(r.TotalWithFeedback),
		Satisfied:           int(r.Satisfied),
		Unsatisfied:         int(r.Unsatisfied),
		SatisfactionRatePct: float64(r.SatisfactionRatePct),
		Status:              string(r.Status),
	}
}
