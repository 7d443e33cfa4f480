// mockstore serves a generated interaction dataset over the interaction
// store API surface, for local development without the real platform.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/convopulse/convopulse/internal/analytics"
	"github.com/convopulse/convopulse/internal/domain"
)

// Sample data
var (
	intents = []string{
		"billing_issue", "order_status", "refund_request", "account_access",
		"product_question", "delivery_problem", "cancel_subscription", "technical_support",
	}
	channels       = []string{domain.ChannelChat, domain.ChannelPhone, domain.ChannelEmail, domain.ChannelSMS}
	urgencies      = []string{domain.UrgencyLow, domain.UrgencyMedium, domain.UrgencyHigh, domain.UrgencyCritical}
	emotions       = []string{domain.EmotionPositive, domain.EmotionNeutral, domain.EmotionNegative, domain.EmotionFrustrated}
	agents         = []string{"", "", "agent_smith", "agent_jones", "agent_lee"}
	handoffReasons = []string{
		"customer requested human", "low confidence", "policy exception",
		"repeated failure", "escalation threshold reached",
	}
)

func main() {
	port := flag.Int("port", 8000, "listen port")
	count := flag.Int("count", 200, "number of interactions to generate")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	log.Println("ConvoPulse Mock Interaction Store")
	log.Println("=================================")

	rng := rand.New(rand.NewSource(*seed))
	interactions := generate(rng, *count)
	log.Printf("✓ Generated %d interactions", len(interactions))

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/api/interactions", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if offset > len(interactions) {
			offset = len(interactions)
		}
		end := offset + limit
		if limit <= 0 || end > len(interactions) {
			end = len(interactions)
		}
		c.JSON(http.StatusOK, gin.H{"items": interactions[offset:end]})
	})

	r.GET("/api/views/statistics/summary", func(c *gin.Context) {
		c.JSON(http.StatusOK, summarize(interactions))
	})

	r.GET("/api/views/satisfaction/daily", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "14"))
		c.JSON(http.StatusOK, gin.H{"items": dailyRows(interactions, limit)})
	})

	r.GET("/api/views/satisfaction/by-intent", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": analytics.SatisfactionByIntent(interactions, nil)})
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func generate(rng *rand.Rand, n int) []domain.Interaction {
	out := make([]domain.Interaction, 0, n)
	now := time.Now().UTC()

	for i := 0; i < n; i++ {
		created := now.Add(-time.Duration(rng.Intn(14*24)) * time.Hour)
		success := rng.Float64() < 0.7
		status := domain.StatusCompleted
		if !success && rng.Float64() < 0.5 {
			status = domain.StatusFailed
		}
		execMS := 300 + rng.Float64()*4000

		it := domain.Interaction{
			InteractionID:   uuid.New().String(),
			SessionID:       uuid.New().String(),
			CustomerID:      fmt.Sprintf("cust_%03d", rng.Intn(80)),
			Channel:         channels[rng.Intn(len(channels))],
			Intent:          intents[rng.Intn(len(intents))],
			Urgency:         urgencies[rng.Intn(len(urgencies))],
			Emotion:         emotions[rng.Intn(len(emotions))],
			Confidence:      0.4 + rng.Float64()*0.6,
			CustomerMessage: "I need help with my issue",
			BotResponse:     "Let me look into that for you",
			ActionTaken:     "lookup_account",
			Success:         &success,
			Status:          status,
			ExecutionTimeMS: &execMS,
			AssignedAgent:   agents[rng.Intn(len(agents))],
			CreatedAt:       created,
		}

		if rng.Float64() < 0.2 {
			it.IsHandoff = true
			it.HandoffReason = handoffReasons[rng.Intn(len(handoffReasons))]
		}
		if rng.Float64() < 0.5 {
			score := domain.FeedbackSatisfied
			if rng.Float64() < 0.3 {
				score = domain.FeedbackUnsatisfied
			}
			it.SatisfactionScore = &score
			stars := 1 + rng.Intn(5)
			it.CustomerSatisfaction = &stars
		}
		if success {
			resolved := created.Add(time.Duration(5+rng.Intn(110)) * time.Minute)
			secs := resolved.Sub(created).Seconds()
			it.ResolvedAt = &resolved
			it.ResolutionTimeSeconds = &secs
		}

		out = append(out, it)
	}
	return out
}

func summarize(interactions []domain.Interaction) gin.H {
	m := analytics.ComputeDashboardMetrics(interactions, nil)
	stats := analytics.ComputeFeedbackStats(interactions)

	resolved := 0
	handoffs := 0
	for _, it := range interactions {
		if it.Resolved() {
			resolved++
		}
		if it.IsHandoff {
			handoffs++
		}
	}

	return gin.H{
		"total_interactions":           m.TotalInteractions,
		"completed_interactions":       resolved,
		"total_handoffs":               handoffs,
		"satisfied_count":              stats.Satisfied,
		"unsatisfied_count":            stats.Unsatisfied,
		"feedbacks_collected":          stats.FeedbackCount,
		"satisfaction_rate_pct":        stats.SatisfactionRatePct,
		"feedback_collection_rate_pct": stats.FeedbackRatePct,
		"critical_issues":              m.ActiveIssues.Critical,
		"high_priority_issues":         m.ActiveIssues.High,
	}
}

func dailyRows(interactions []domain.Interaction, limit int) []domain.SatisfactionStatsRow {
	byDay := map[string]*domain.SatisfactionStatsRow{}
	for _, it := range interactions {
		day := it.CreatedAt.Format("2006-01-02")
		row, ok := byDay[day]
		if !ok {
			row = &domain.SatisfactionStatsRow{Date: day}
			byDay[day] = row
		}
		row.TotalInteractions++
		if it.HasFeedback() {
			row.FeedbacksCollected++
			if it.IsSatisfied() {
				row.SatisfiedCount++
			} else {
				row.UnsatisfiedCount++
			}
		}
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	// Newest first, matching the platform view
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}

	rows := make([]domain.SatisfactionStatsRow, 0, len(days))
	for _, day := range days {
		row := byDay[day]
		if row.FeedbacksCollected > 0 {
			row.SatisfactionRatePct = float64(row.SatisfiedCount) / float64(row.FeedbacksCollected) * 100
		}
		if row.TotalInteractions > 0 {
			row.FeedbackCollectionRatePct = float64(row.FeedbacksCollected) / float64(row.TotalInteractions) * 100
		}
		rows = append(rows, *row)
	}
	return rows
}
