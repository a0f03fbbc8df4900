// Package orchestrator drives one delivery end to end: render the document,
// build the payload, then walk the channel chain until a channel delivers,
// the user cancels, or every channel is exhausted.
package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"certgate/internal/audit"
	"certgate/internal/certificate/render"
	"certgate/internal/certificate/verify"
	"certgate/internal/delivery/channel"
	"certgate/internal/delivery/metrics"
	"certgate/internal/delivery/models"
	id "certgate/pkg/domain"
	dErrors "certgate/pkg/domain-errors"
)

const defaultProbeTimeout = 3 * time.Second

// Orchestrator owns the fallback chain. The chain is fixed: the requested
// channel first, then the system share sheet, then the clipboard. The
// clipboard adapter is always available, so a fully exhausted chain signals
// an orchestration defect rather than an expected state.
type Orchestrator struct {
	renderer     *render.Renderer
	resolver     *verify.Resolver
	adapters     map[models.ChannelKind]channel.Adapter
	probeTimeout time.Duration
	audit        *audit.Publisher
	metrics      *metrics.Metrics
	logger       *slog.Logger
	tracer       trace.Tracer
}

type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithAudit(publisher *audit.Publisher) Option {
	return func(o *Orchestrator) {
		o.audit = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithProbeTimeout bounds each availability probe. A probe that exceeds the
// bound counts as unavailable and the chain moves on.
func WithProbeTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.probeTimeout = d
		}
	}
}

func New(renderer *render.Renderer, resolver *verify.Resolver, adapters []channel.Adapter, opts ...Option) (*Orchestrator, error) {
	if renderer == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "renderer is required")
	}
	if resolver == nil {
		resolver = verify.NewResolver("")
	}

	o := &Orchestrator{
		renderer:     renderer,
		resolver:     resolver,
		adapters:     make(map[models.ChannelKind]channel.Adapter, len(adapters)),
		probeTimeout: defaultProbeTimeout,
		logger:       slog.Default(),
		tracer:       otel.Tracer("certgate/delivery"),
	}
	for _, a := range adapters {
		if a != nil {
			o.adapters[a.Kind()] = a
		}
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Deliver runs one delivery. The returned Result is always meaningful when
// err is nil: it reports success, user cancellation, or chain exhaustion.
// Errors are reserved for malformed requests and a cancelled caller context.
func (o *Orchestrator) Deliver(ctx context.Context, req models.Request) (models.Result, error) {
	ctx, span := o.tracer.Start(ctx, "delivery.Deliver", trace.WithAttributes(
		attribute.String("certificate.id", req.Certificate.ID.String()),
		attribute.String("delivery.target", string(req.Target)),
	))
	defer span.End()

	payload, document, err := o.buildPayload(ctx, req)
	if err != nil {
		return models.Result{}, err
	}

	deliveryID := id.NewDeliveryID()
	logger := o.logger.With(
		"delivery_id", deliveryID,
		"certificate_id", req.Certificate.ID,
		"target", req.Target,
	)

	for _, kind := range o.chain(req.Target) {
		if err := ctx.Err(); err != nil {
			return models.Result{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "delivery aborted")
		}

		adapter, ok := o.adapters[kind]
		if !ok {
			logger.Debug("channel not configured", "channel", kind)
			continue
		}

		if !o.probe(ctx, adapter) {
			logger.Info("channel unavailable", "channel", kind)
			if o.metrics != nil {
				o.metrics.IncrementProbeUnavailable(string(kind))
			}
			continue
		}

		outcome := adapter.Deliver(ctx, payload)
		if o.metrics != nil {
			o.metrics.IncrementDeliveries(string(kind), string(outcome))
		}

		switch outcome {
		case models.OutcomeDelivered:
			fallback := kind != req.Target
			if fallback && o.metrics != nil {
				o.metrics.IncrementFallbacks()
			}
			logger.Info("delivery completed", "channel", kind, "fallback", fallback)
			o.emit(ctx, deliveryID, req, audit.ActionDeliveryCompleted, kind, outcome, fallback)
			return models.Result{
				Succeeded:       true,
				ChannelUsed:     kind,
				FallbackApplied: fallback,
				Document:        document,
			}, nil

		case models.OutcomeUserCancelled:
			// The user declined on this channel. Pushing the same payload at
			// the next channel would override an explicit choice, so the
			// chain stops here.
			logger.Info("delivery cancelled by user", "channel", kind)
			o.emit(ctx, deliveryID, req, audit.ActionDeliveryCancelled, kind, outcome, false)
			return models.Result{Cancelled: true, Document: document}, nil

		default:
			logger.Warn("channel attempt failed", "channel", kind, "outcome", outcome)
		}
	}

	logger.Error("all delivery channels failed")
	o.emit(ctx, deliveryID, req, audit.ActionDeliveryFailed, "", models.OutcomeChannelError, false)
	return models.Result{
		ErrorKind: models.ErrorAllChannelsFailed,
		Document:  document,
	}, nil
}

// buildPayload renders the documents and assembles the channel payload. The
// plain-text rendition always backs Payload.Text so every channel has a
// verbatim body to splice; the styled document rides along only when asked for.
func (o *Orchestrator) buildPayload(ctx context.Context, req models.Request) (models.Payload, render.Document, error) {
	plain, err := o.renderer.Render(ctx, req.Certificate, render.KindPlainText)
	if err != nil {
		return models.Payload{}, render.Document{}, err
	}

	document := plain
	payload := models.Payload{
		Text:      plain.Content,
		URL:       o.resolver.URL(o.resolver.Code(req.Certificate)),
		Recipient: req.Recipient,
		Subject:   "Certificate Verification - " + req.Certificate.Title,
	}
	if req.DocumentKind == render.KindStyledMarkup {
		styled, err := o.renderer.Render(ctx, req.Certificate, render.KindStyledMarkup)
		if err != nil {
			return models.Payload{}, render.Document{}, err
		}
		document = styled
		payload.Document = &styled
	}
	return payload, document, nil
}

// chain returns the ordered channels to attempt, deduplicated. The share
// sheet and the clipboard always terminate the chain.
func (o *Orchestrator) chain(target models.ChannelKind) []models.ChannelKind {
	out := []models.ChannelKind{target}
	for _, fallback := range []models.ChannelKind{models.ChannelSystemShare, models.ChannelClipboard} {
		if fallback != target {
			out = append(out, fallback)
		}
	}
	return out
}

func (o *Orchestrator) probe(ctx context.Context, adapter channel.Adapter) bool {
	probeCtx, cancel := context.WithTimeout(ctx, o.probeTimeout)
	defer cancel()
	return adapter.IsAvailable(probeCtx)
}

func (o *Orchestrator) emit(ctx context.Context, deliveryID id.DeliveryID, req models.Request, action string, used models.ChannelKind, outcome models.Outcome, fallback bool) {
	if o.audit == nil {
		return
	}
	event := audit.Event{
		DeliveryID:       deliveryID,
		CertificateID:    req.Certificate.ID,
		Action:           action,
		ChannelRequested: string(req.Target),
		ChannelUsed:      string(used),
		Outcome:          string(outcome),
		FallbackApplied:  fallback,
	}
	if err := o.audit.Emit(ctx, event); err != nil {
		o.logger.Error("audit emit failed", "delivery_id", deliveryID, "error", err)
	}
}
