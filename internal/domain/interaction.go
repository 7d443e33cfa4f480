package domain

import "time"

// Channel values for an interaction.
const (
	ChannelChat  = "chat"
	ChannelPhone = "phone"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Urgency levels.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// Interaction status values. Completed and failed are terminal; everything
// else counts as an open issue.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Detected emotion values.
const (
	EmotionPositive   = "positive"
	EmotionNeutral    = "neutral"
	EmotionNegative   = "negative"
	EmotionFrustrated = "frustrated"
	EmotionSatisfied  = "satisfied"
)

// Conversation message speakers.
const (
	SpeakerCustomer = "customer"
	SpeakerBot      = "bot"
	SpeakerAgent    = "agent"
)

// Binary post-interaction feedback values. Anything else in
// satisfaction_score means no feedback was given.
const (
	FeedbackSatisfied   = 1
	FeedbackUnsatisfied = 2
)

// UnknownIntent is the sentinel group for interactions without an intent.
const UnknownIntent = "unknown_intent"

// ConversationMessage is a single turn in an interaction's history.
type ConversationMessage struct {
	Speaker         string                 `json:"speaker"`
	MessageText     string                 `json:"message_text"`
	Timestamp       time.Time              `json:"timestamp"`
	DetectedEmotion string                 `json:"detected_emotion,omitempty"`
	DetectedIntent  string                 `json:"detected_intent,omitempty"`
	Confidence      *float64               `json:"confidence,omitempty"`
	MessageID       string                 `json:"message_id,omitempty"`
	TurnNumber      *int                   `json:"turn_number,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// Interaction is one recorded customer-service session, bot- or
// agent-handled. Optional fields are pointers so that "absent" stays
// distinguishable from a zero value; the aggregation engine's contracts
// depend on that distinction.
type Interaction struct {
	InteractionID string `json:"interaction_id"`
	SessionID     string `json:"session_id"`
	CustomerID    string `json:"customer_id,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	Channel    string  `json:"channel"`
	Intent     string  `json:"intent"`
	Urgency    string  `json:"urgency"`
	Emotion    string  `json:"emotion"`
	Confidence float64 `json:"confidence"`

	CustomerMessage     string                `json:"customer_message"`
	BotResponse         string                `json:"bot_response"`
	ConversationHistory []ConversationMessage `json:"conversation_history"`

	ActionTaken string `json:"action_taken"`
	ActionType  string `json:"action_type,omitempty"`

	// Success, when present, is authoritative for "resolved". When absent,
	// status == completed is the fallback definition.
	Success         *bool    `json:"success"`
	Status          string   `json:"status"`
	ExecutionTimeMS *float64 `json:"execution_time_ms,omitempty"`

	IsHandoff         bool   `json:"is_handoff"`
	HandoffReason     string `json:"handoff_reason,omitempty"`
	HandoffQueue      string `json:"handoff_queue,omitempty"`
	HandoffDepartment string `json:"handoff_department,omitempty"`
	AssignedAgent     string `json:"assigned_agent,omitempty"`
	TicketStatus      string `json:"ticket_status,omitempty"`
	Priority          string `json:"priority,omitempty"`

	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             *time.Time `json:"updated_at,omitempty"`
	ResolvedAt            *time.Time `json:"resolved_at,omitempty"`
	ResolutionTimeSeconds *float64   `json:"resolution_time_seconds,omitempty"`

	// CustomerSatisfaction is the legacy 1-5 scale, used only by the
	// quality scorer. SatisfactionScore is the canonical binary signal.
	CustomerSatisfaction *int `json:"customer_satisfaction,omitempty"`
	SatisfactionScore    *int `json:"satisfaction_score"`

	FeedbackComment string                 `json:"feedback_comment,omitempty"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

// Resolved reports whether the interaction reached a successful, closed
// outcome. The success boolean wins when present; otherwise a completed
// status counts.
func (i Interaction) Resolved() bool {
	if i.Success != nil {
		return *i.Success
	}
	return i.Status == StatusCompleted
}

// HasFeedback reports whether the customer left a valid binary
// satisfaction score. Values outside {1, 2} count as no feedback.
func (i Interaction) HasFeedback() bool {
	return i.SatisfactionScore != nil &&
		(*i.SatisfactionScore == FeedbackSatisfied || *i.SatisfactionScore == FeedbackUnsatisfied)
}

// IsSatisfied reports whether the customer left positive feedback.
func (i Interaction) IsSatisfied() bool {
	return i.SatisfactionScore != nil && *i.SatisfactionScore == FeedbackSatisfied
}

// IsUnsatisfied reports whether the customer left negative feedback.
func (i Interaction) IsUnsatisfied() bool {
	return i.SatisfactionScore != nil && *i.SatisfactionScore == FeedbackUnsatisfied
}

// IsOpen reports whether the interaction still counts as an active issue.
func (i Interaction) IsOpen() bool {
	return i.Status != StatusCompleted && i.Status != StatusFailed
}

// IntentKey returns the grouping key for intent-based segmentation,
// normalizing an empty intent to the unknown_intent sentinel.
func (i Interaction) IntentKey() string {
	if i.Intent == "" {
		return UnknownIntent
	}
	return i.Intent
}
