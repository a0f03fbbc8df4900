package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"certgate/internal/certificate/models"
	"certgate/internal/certificate/render"
	"certgate/internal/certificate/service"
	"certgate/internal/certificate/verify"
	id "certgate/pkg/domain"
	dErrors "certgate/pkg/domain-errors"
	"certgate/pkg/platform/httputil"
	"certgate/pkg/requestcontext"
)

// Service defines the certificate operations the handler needs.
type Service interface {
	Create(ctx context.Context, raw models.RawCertificate) (*models.CertificateRecord, error)
	Get(ctx context.Context, certID id.CertificateID) (*models.CertificateRecord, error)
	List(ctx context.Context, studentName, filter string) ([]*models.CertificateRecord, error)
	Document(ctx context.Context, certID id.CertificateID, kind render.Kind) (render.Document, error)
	Verify(ctx context.Context, code string) (*models.CertificateRecord, error)
	Stats(ctx context.Context, studentName string) (*service.Stats, error)
}

// Handler wires certificate endpoints to the certificate service.
type Handler struct {
	service  Service
	resolver *verify.Resolver
	logger   *slog.Logger
}

// New constructs a certificate handler with its dependencies.
func New(service Service, resolver *verify.Resolver, logger *slog.Logger) *Handler {
	if resolver == nil {
		resolver = verify.NewResolver("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, resolver: resolver, logger: logger}
}

// Register mounts certificate endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/certificates", h.HandleList)
	r.Post("/certificates", h.HandleCreate)
	r.Get("/certificates/stats", h.HandleStats)
	r.Post("/certificates/verify", h.HandleVerify)
	r.Get("/certificates/{certificateID}", h.HandleGet)
	r.Get("/certificates/{certificateID}/document", h.HandleDocument)
}

// HandleList handles GET /certificates requests. The optional "student" and
// "filter" query parameters scope the listing; filter accepts "All", a
// four-digit year, or "Awards".
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.service.List(ctx, r.URL.Query().Get("student"), r.URL.Query().Get("filter"))
	if err != nil {
		h.logger.ErrorContext(ctx, "certificate list failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	views := make([]CertificateView, 0, len(records))
	for _, rec := range records {
		views = append(views, viewFromRecord(rec, h.resolver))
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Certificates: views, Count: len(views)})
}

// HandleCreate handles POST /certificates requests. The body is accepted in
// the backend's loose shape and normalized before storage.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	raw, ok := httputil.DecodeAndPrepare[models.RawCertificate](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.Create(ctx, raw)
	if err != nil {
		h.logger.ErrorContext(ctx, "certificate create failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "certificate created",
		"request_id", requestID,
		"certificate_id", rec.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, viewFromRecord(rec, h.resolver))
}

// HandleGet handles GET /certificates/{certificateID} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	certID, err := id.ParseCertificateID(chi.URLParam(r, "certificateID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid certificate id"))
		return
	}

	rec, err := h.service.Get(ctx, certID)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "certificate get failed",
				"request_id", requestcontext.RequestID(ctx),
				"certificate_id", certID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, viewFromRecord(rec, h.resolver))
}

// HandleDocument handles GET /certificates/{certificateID}/document requests.
// The "kind" query parameter selects the representation; default plain text.
func (h *Handler) HandleDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	certID, err := id.ParseCertificateID(chi.URLParam(r, "certificateID"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid certificate id"))
		return
	}
	kind, err := render.ParseKind(r.URL.Query().Get("kind"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	doc, err := h.service.Document(ctx, certID, kind)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleVerify handles POST /certificates/verify requests. An unknown code is
// a valid negative verdict, not an error; the endpoint answers 200 either way.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.Verify(ctx, req.Code)
	if err != nil {
		var de *dErrors.Error
		if errors.As(err, &de) && de.Code == dErrors.CodeNotFound {
			httputil.WriteJSON(w, http.StatusOK, VerifyResponse{Valid: false})
			return
		}
		h.logger.ErrorContext(ctx, "certificate verification failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	view := viewFromRecord(rec, h.resolver)
	httputil.WriteJSON(w, http.StatusOK, VerifyResponse{Valid: true, Certificate: &view})
}

// HandleStats handles GET /certificates/stats requests.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.service.Stats(ctx, r.URL.Query().Get("student"))
	if err != nil {
		h.logger.ErrorContext(ctx, "certificate stats failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}
