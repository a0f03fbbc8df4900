package audit

import (
	"time"

	"github.com/google/uuid"

	id "certgate/pkg/domain"
)

// Event records one delivery outcome. Keep it transport-agnostic so stores
// and sinks can fan out.
type Event struct {
	ID               uuid.UUID        `json:"id"`
	Timestamp        time.Time        `json:"timestamp"`
	DeliveryID       id.DeliveryID    `json:"delivery_id"`
	CertificateID    id.CertificateID `json:"certificate_id"`
	Action           string           `json:"action"`
	ChannelRequested string           `json:"channel_requested"`
	ChannelUsed      string           `json:"channel_used,omitempty"`
	Outcome          string           `json:"outcome"`
	FallbackApplied  bool             `json:"fallback_applied"`
}

// Actions emitted by the delivery orchestrator.
const (
	ActionDeliveryCompleted = "delivery_completed"
	ActionDeliveryCancelled = "delivery_cancelled"
	ActionDeliveryFailed    = "delivery_failed"
)
