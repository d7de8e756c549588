package chat

import "time"

// Role identifies who authored a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Outcome classifies what a bot turn did. Hosts key notifications off it.
type Outcome string

const (
	OutcomeNone         Outcome = "none"
	OutcomeVendor       Outcome = "vendor"
	OutcomeVendorLead   Outcome = "vendor_lead"
	OutcomeConsumer     Outcome = "consumer"
	OutcomeConsumerLead Outcome = "consumer_lead"
	OutcomeBrand        Outcome = "brand"
)

// Message is a single transcript entry. Transcripts are append-only.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Outcome   Outcome   `json:"outcome,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
