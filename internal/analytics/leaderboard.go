package analytics

import (
	"sort"
	"time"

	"github.com/convopulse/convopulse/internal/domain"
)

// DefaultLeaderboardSize bounds the leaderboard when the caller passes no
// explicit limit.
const DefaultLeaderboardSize = 15

// Composite score components. No feedback ranks between satisfied and
// unsatisfied; the satisfaction component dominates the resolution one.
const (
	satisfiedComponent   = 2
	noFeedbackComponent  = 1
	unsatisfiedComponent = 0
	resolvedComponent    = 2
	satisfactionWeight   = 10
)

// LeaderboardEntry is one ranked interaction.
type LeaderboardEntry struct {
	InteractionID  string `json:"interaction_id"`
	Intent         string `json:"intent"`
	Channel        string `json:"channel"`
	AssignedAgent  string `json:"assigned_agent,omitempty"`
	CompositeScore int    `json:"composite_score"`
	Resolved       bool   `json:"resolved"`
	Satisfied      *int   `json:"satisfaction_score"`
	CreatedAt      string `json:"created_at"`
}

// CompositeScore ranks an interaction for best-first ordering:
// satisfaction outcome weighted ten-fold over resolution outcome.
func CompositeScore(it domain.Interaction) int {
	sat := noFeedbackComponent
	if it.IsSatisfied() {
		sat = satisfiedComponent
	} else if it.IsUnsatisfied() {
		sat = unsatisfiedComponent
	}
	score := sat * satisfactionWeight
	if it.Resolved() {
		score += resolvedComponent
	}
	return score
}

// ComputeLeaderboard orders interactions best-first by composite score,
// breaking ties by recency (newest first), and truncates to limit.
func ComputeLeaderboard(interactions []domain.Interaction, limit int) []LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	ranked := make([]domain.Interaction, len(interactions))
	copy(ranked, interactions)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := CompositeScore(ranked[i]), CompositeScore(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].CreatedAt.After(ranked[j].CreatedAt)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]LeaderboardEntry, 0, len(ranked))
	for _, it := range ranked {
		out = append(out, LeaderboardEntry{
			InteractionID:  it.InteractionID,
			Intent:         it.IntentKey(),
			Channel:        it.Channel,
			AssignedAgent:  it.AssignedAgent,
			CompositeScore: CompositeScore(it),
			Resolved:       it.Resolved(),
			Satisfied:      it.SatisfactionScore,
			CreatedAt:      it.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}
