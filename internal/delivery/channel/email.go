package channel

import (
	"context"
	"log/slog"
	"net/url"

	"certgate/internal/certificate/render"
	"certgate/internal/delivery/models"
)

// Email opens a mail-compose deep link with the payload as subject and body.
// A document, when present, is embedded as body text rather than attached;
// mailto cannot carry attachments.
type Email struct {
	launcher Launcher
	logger   *slog.Logger
}

func NewEmail(launcher Launcher, logger *slog.Logger) *Email {
	return &Email{launcher: launcher, logger: logger}
}

func (e *Email) Kind() models.ChannelKind {
	return models.ChannelEmail
}

// ComposeLink builds the mailto URL for a payload. A plain-text document
// replaces the share text as the body; a styled document is left out, since
// raw markup pasted into a mail body is unreadable — the share text already
// carries the same fields.
func (e *Email) ComposeLink(payload models.Payload) string {
	body := payload.Text
	if payload.Document != nil && payload.Document.Kind == render.KindPlainText {
		body = payload.Document.Content
	}
	return "mailto:?subject=" + url.QueryEscape(payload.Subject) +
		"&body=" + url.QueryEscape(body)
}

func (e *Email) IsAvailable(ctx context.Context) bool {
	if e.launcher == nil {
		return false
	}
	ok, err := e.launcher.CanOpen(ctx, "mailto:?subject=&body=")
	if err != nil {
		logOutcome(e.logger, e.Kind(), models.OutcomeChannelUnavailable, err)
		return false
	}
	return ok
}

func (e *Email) Deliver(ctx context.Context, payload models.Payload) models.Outcome {
	if e.launcher == nil {
		return models.OutcomeChannelUnavailable
	}

	link := e.ComposeLink(payload)
	ok, err := e.launcher.CanOpen(ctx, link)
	if err != nil || !ok {
		logOutcome(e.logger, e.Kind(), models.OutcomeChannelUnavailable, err)
		return models.OutcomeChannelUnavailable
	}
	if err := e.launcher.Open(ctx, link); err != nil {
		logOutcome(e.logger, e.Kind(), models.OutcomeChannelError, err)
		return models.OutcomeChannelError
	}
	logOutcome(e.logger, e.Kind(), models.OutcomeDelivered, nil)
	return models.OutcomeDelivered
}
