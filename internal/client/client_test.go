package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:         srv.URL,
		Timeout:         2 * time.Second,
		RetryMaxElapsed: 100 * time.Millisecond,
	}, zap.NewNop())
}

func TestListInteractionsFlatEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interactions", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"items":[
			{"interaction_id":"int-1","status":"completed","satisfaction_score":1},
			{"interaction_id":"int-2","status":"pending","satisfaction_score":null}
		]}`))
	})

	interactions, err := c.ListInteractions(context.Background(), 100, 0)

	require.NoError(t, err)
	require.Len(t, interactions, 2)
	assert.Equal(t, "int-1", interactions[0].InteractionID)
	require.NotNil(t, interactions[0].SatisfactionScore)
	assert.Equal(t, 1, *interactions[0].SatisfactionScore)
	assert.Nil(t, interactions[1].SatisfactionScore)
}

func TestListInteractionsNestedEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"items":[{"interaction_id":"int-9","status":"completed"}]}}`))
	})

	interactions, err := c.ListInteractions(context.Background(), 50, 0)

	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.Equal(t, "int-9", interactions[0].InteractionID)
}

func TestListInteractionsSkipsMalformedItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"interaction_id":"good","status":"completed"},
			"not an object"
		]}`))
	})

	interactions, err := c.ListInteractions(context.Background(), 10, 0)

	require.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.Equal(t, "good", interactions[0].InteractionID)
}

func TestStatisticsSummaryCoercion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/views/statistics/summary", r.URL.Path)
		// Numbers as strings, a wrong-typed field, and an absent one.
		w.Write([]byte(`{
			"total_interactions":"250",
			"completed_interactions":200,
			"avg_execution_time":"842.5",
			"total_handoffs":{"bogus":true}
		}`))
	})

	summary, err := c.StatisticsSummary(context.Background())

	require.NoError(t, err)
	require.NotNil(t, summary.TotalInteractions)
	assert.Equal(t, 250, *summary.TotalInteractions)
	require.NotNil(t, summary.CompletedInteractions)
	assert.Equal(t, 200, *summary.CompletedInteractions)
	require.NotNil(t, summary.AvgExecutionTime)
	assert.InDelta(t, 842.5, *summary.AvgExecutionTime, 0.001)
	// Wrong type decodes as present-but-zero, not a failure.
	require.NotNil(t, summary.TotalHandoffs)
	assert.Equal(t, 0, *summary.TotalHandoffs)
	assert.Nil(t, summary.FeedbacksCollected)
}

func TestSatisfactionDailyNormalization(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/views/satisfaction/daily", r.URL.Path)
		w.Write([]byte(`{"items":[
			{"date":"2026-08-27","total_interactions":40,"feedbacks_collected":"25","satisfied_count":20,"unsatisfied_count":5,"satisfaction_rate_pct":80.0,"feedback_collection_rate_pct":"62.5"}
		]}`))
	})

	rows, err := c.SatisfactionDaily(context.Background(), 30)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-08-27", rows[0].Date)
	assert.Equal(t, 25, rows[0].FeedbacksCollected)
	assert.InDelta(t, 62.5, rows[0].FeedbackCollectionRatePct, 0.001)
}

func TestSatisfactionByIntent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"intent":"billing","total_with_feedback":10,"satisfied":9,"unsatisfied":1,"satisfaction_rate_pct":90.0,"status":"Excellent"}
		]}`))
	})

	rows, err := c.SatisfactionByIntent(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "billing", rows[0].Intent)
	assert.Equal(t, "Excellent", rows[0].Status)
}

func TestGetJSONClientErrorIsNotRetried(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.StatisticsSummary(context.Background())

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGetJSONServerErrorEventuallyFails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.SatisfactionByIntent(context.Background())

	require.Error(t, err)
}
