package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"certgate/internal/audit"
	certmodels "certgate/internal/certificate/models"
	"certgate/internal/certificate/render"
	"certgate/internal/delivery/models"
	id "certgate/pkg/domain"
	dErrors "certgate/pkg/domain-errors"
	"certgate/pkg/platform/httputil"
	"certgate/pkg/platform/middleware/metadata"
	"certgate/pkg/requestcontext"
)

// CertificateGetter loads the certificate being delivered.
type CertificateGetter interface {
	Get(ctx context.Context, certID id.CertificateID) (*certmodels.CertificateRecord, error)
}

// Deliverer runs one delivery through the channel chain.
type Deliverer interface {
	Deliver(ctx context.Context, req models.Request) (models.Result, error)
}

// AuditReader lists past delivery outcomes for a certificate.
type AuditReader interface {
	ListByCertificate(ctx context.Context, certID id.CertificateID) ([]audit.Event, error)
}

// Handler wires delivery endpoints to the orchestrator.
type Handler struct {
	certificates CertificateGetter
	deliverer    Deliverer
	auditLog     AuditReader
	logger       *slog.Logger
}

func New(certificates CertificateGetter, deliverer Deliverer, auditLog AuditReader, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		certificates: certificates,
		deliverer:    deliverer,
		auditLog:     auditLog,
		logger:       logger,
	}
}

// Register mounts delivery endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/certificates/{certificateID}/deliveries", h.HandleDeliver)
	r.Get("/certificates/{certificateID}/deliveries", h.HandleHistory)
}

// DeliverRequest selects the channel and document shape for one delivery.
type DeliverRequest struct {
	Channel      string `json:"channel"`
	DocumentKind string `json:"document_kind"`
	Recipient    string `json:"recipient"`
}

// HandleDeliver handles POST /certificates/{certificateID}/deliveries.
// The response is 200 with the terminal result even when the chain was
// exhausted; only malformed requests and missing certificates are errors.
func (h *Handler) HandleDeliver(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	certID, err := id.ParseCertificateID(chi.URLParam(r, "certificateID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid certificate id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[DeliverRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	target, err := models.ParseChannelKind(req.Channel)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	kind, err := render.ParseKind(req.DocumentKind)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.certificates.Get(ctx, certID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.deliverer.Deliver(ctx, models.Request{
		Certificate:  *rec,
		Target:       target,
		DocumentKind: kind,
		Recipient:    req.Recipient,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "delivery failed",
			"request_id", requestID,
			"certificate_id", certID,
			"channel", target,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "delivery finished",
		"request_id", requestID,
		"certificate_id", certID,
		"client_ip", metadata.GetClientIP(ctx),
		"channel_requested", target,
		"channel_used", result.ChannelUsed,
		"succeeded", result.Succeeded,
		"cancelled", result.Cancelled,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleHistory handles GET /certificates/{certificateID}/deliveries.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	certID, err := id.ParseCertificateID(chi.URLParam(r, "certificateID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid certificate id"))
		return
	}

	events, err := h.auditLog.ListByCertificate(ctx, certID)
	if err != nil {
		h.logger.ErrorContext(ctx, "delivery history failed",
			"request_id", requestcontext.RequestID(ctx),
			"certificate_id", certID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load delivery history"))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"deliveries": events,
		"count":      len(events),
	})
}
