package channel

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"certgate/internal/certificate/render"
	"certgate/internal/delivery/models"
	"certgate/pkg/platform/circuit"
)

// mailSender is the slice of the SendGrid client the adapter uses; tests
// substitute a recording implementation.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// DirectEmail sends the document by email server-side via SendGrid, instead
// of handing off to a local mail client. It only joins a delivery when the
// request names a recipient; without one it reports unavailable so the chain
// moves on.
type DirectEmail struct {
	client    mailSender
	fromName  string
	fromEmail string
	breaker   *circuit.Breaker
	logger    *slog.Logger
}

// NewDirectEmail builds the adapter. Returns nil when no API key is
// configured so callers can skip registration entirely.
func NewDirectEmail(apiKey, fromName, fromEmail string, logger *slog.Logger) *DirectEmail {
	if apiKey == "" {
		return nil
	}
	return &DirectEmail{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
		breaker: circuit.New("sendgrid",
			circuit.WithFailureThreshold(3),
			circuit.WithCooldown(30*time.Second),
		),
		logger: logger,
	}
}

func (d *DirectEmail) Kind() models.ChannelKind {
	return models.ChannelDirectEmail
}

// IsAvailable reports false while the breaker is open so repeated SendGrid
// outages push deliveries straight to the fallback chain. Once the breaker's
// cooldown elapses it turns half-open and the channel rejoins the chain for a
// trial delivery; a success closes the breaker, a failure restarts the
// cooldown.
func (d *DirectEmail) IsAvailable(ctx context.Context) bool {
	return d.client != nil && (d.breaker == nil || !d.breaker.IsOpen())
}

func (d *DirectEmail) Deliver(ctx context.Context, payload models.Payload) models.Outcome {
	if d.client == nil || payload.Recipient == "" {
		return models.OutcomeChannelUnavailable
	}

	from := mail.NewEmail(d.fromName, d.fromEmail)
	to := mail.NewEmail("", payload.Recipient)
	html := ""
	if payload.Document != nil && payload.Document.Kind == render.KindStyledMarkup {
		html = payload.Document.Content
	}
	message := mail.NewSingleEmail(from, payload.Subject, to, payload.Text, html)

	resp, err := d.client.SendWithContext(ctx, message)
	if err != nil {
		d.recordFailure()
		logOutcome(d.logger, d.Kind(), models.OutcomeChannelError, err)
		return models.OutcomeChannelError
	}
	if resp.StatusCode >= http.StatusBadRequest {
		d.recordFailure()
		logOutcome(d.logger, d.Kind(), models.OutcomeChannelError, nil)
		return models.OutcomeChannelError
	}
	if d.breaker != nil {
		d.breaker.RecordSuccess()
	}
	logOutcome(d.logger, d.Kind(), models.OutcomeDelivered, nil)
	return models.OutcomeDelivered
}

func (d *DirectEmail) recordFailure() {
	if d.breaker == nil {
		return
	}
	if _, change := d.breaker.RecordFailure(); change.Opened && d.logger != nil {
		d.logger.Warn("direct email circuit opened", "breaker", d.breaker.Name())
	}
}
