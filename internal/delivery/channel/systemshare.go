package channel

import (
	"context"
	"log/slog"

	"certgate/internal/delivery/models"
)

// SystemShare invokes the OS-level share sheet through a ShareSink. It is the
// most capable and most portable channel, which is why the orchestrator slots
// it ahead of everything except the explicitly requested channel.
type SystemShare struct {
	sink   ShareSink
	logger *slog.Logger
}

func NewSystemShare(sink ShareSink, logger *slog.Logger) *SystemShare {
	return &SystemShare{sink: sink, logger: logger}
}

func (s *SystemShare) Kind() models.ChannelKind {
	return models.ChannelSystemShare
}

func (s *SystemShare) IsAvailable(ctx context.Context) bool {
	return s.sink != nil
}

func (s *SystemShare) Deliver(ctx context.Context, payload models.Payload) models.Outcome {
	if s.sink == nil {
		return models.OutcomeChannelUnavailable
	}

	action, err := s.sink.Share(ctx, ShareContent{
		Title: payload.Subject,
		Text:  payload.Text,
		URL:   payload.URL,
	})
	if err != nil {
		logOutcome(s.logger, s.Kind(), models.OutcomeChannelError, err)
		return models.OutcomeChannelError
	}
	if action == ShareDismissed {
		// Dismissal is an explicit user decision, not a channel failure.
		logOutcome(s.logger, s.Kind(), models.OutcomeUserCancelled, nil)
		return models.OutcomeUserCancelled
	}
	logOutcome(s.logger, s.Kind(), models.OutcomeDelivered, nil)
	return models.OutcomeDelivered
}
