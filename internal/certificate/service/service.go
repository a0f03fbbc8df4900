// Package service orchestrates certificate reads, registration, verification,
// and document preview for the transport layer.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	certmetrics "certgate/internal/certificate/metrics"
	"certgate/internal/certificate/models"
	"certgate/internal/certificate/render"
	"certgate/internal/certificate/store"
	"certgate/internal/certificate/verify"
	id "certgate/pkg/domain"
	dErrors "certgate/pkg/domain-errors"
	"certgate/pkg/platform/sentinel"
)

type Service struct {
	store    store.Store
	renderer *render.Renderer
	resolver *verify.Resolver
	logger   *slog.Logger
	metrics  *certmetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *certmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(st store.Store, renderer *render.Renderer, resolver *verify.Resolver, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("certificate store is required")
	}
	if resolver == nil {
		resolver = verify.NewResolver("")
	}
	if renderer == nil {
		renderer = render.NewRenderer(resolver)
	}

	svc := &Service{
		store:    st,
		renderer: renderer,
		resolver: resolver,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Create normalizes a raw backend certificate and registers it.
func (s *Service) Create(ctx context.Context, raw models.RawCertificate) (*models.CertificateRecord, error) {
	rec := models.Normalize(raw)
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.Insert(ctx, &rec); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "certificate id already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store certificate")
	}

	if s.metrics != nil {
		s.metrics.IncrementCertificatesCreated()
	}
	s.logger.Info("certificate registered", "id", rec.ID, "student", rec.StudentName)
	return &rec, nil
}

// Get returns one certificate by ID.
func (s *Service) Get(ctx context.Context, certID id.CertificateID) (*models.CertificateRecord, error) {
	if certID.IsNil() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "certificate id is required")
	}
	rec, err := s.store.FindByID(ctx, certID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "certificate not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}
	return rec, nil
}

// List returns certificates, optionally scoped to a student and narrowed by a
// presentation filter ("All", a year like "2025", or "Awards").
func (s *Service) List(ctx context.Context, studentName, filter string) ([]*models.CertificateRecord, error) {
	records, err := s.store.List(ctx, studentName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list certificates")
	}
	return filterRecords(records, filter), nil
}

// awardKeywords mirrors the mobile client's "Awards" tab filter.
var awardKeywords = []string{"medal", "award", "achievement"}

func filterRecords(records []*models.CertificateRecord, filter string) []*models.CertificateRecord {
	filter = strings.TrimSpace(filter)
	if filter == "" || strings.EqualFold(filter, "All") {
		return records
	}

	out := make([]*models.CertificateRecord, 0, len(records))
	for _, rec := range records {
		if matchesFilter(rec, filter) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesFilter(rec *models.CertificateRecord, filter string) bool {
	if strings.EqualFold(filter, "Awards") {
		title := strings.ToLower(rec.Title)
		category := strings.ToLower(rec.Category)
		for _, kw := range awardKeywords {
			if strings.Contains(title, kw) || strings.Contains(category, kw) {
				return true
			}
		}
		return false
	}
	// Year filters match on the raw issue date string.
	if len(filter) == 4 {
		return strings.Contains(rec.IssueDate, filter)
	}
	return true
}

// Document renders a preview document for a stored certificate.
func (s *Service) Document(ctx context.Context, certID id.CertificateID, kind render.Kind) (render.Document, error) {
	rec, err := s.Get(ctx, certID)
	if err != nil {
		return render.Document{}, err
	}
	doc, err := s.renderer.Render(ctx, *rec, kind)
	if err != nil {
		return render.Document{}, err
	}
	if s.metrics != nil {
		s.metrics.IncrementDocumentsRendered(string(doc.Kind))
	}
	return doc, nil
}

// Verify resolves a verification code back to its certificate. Codes match in
// three ways: an assigned code, a synthesized "VERIFY-<id>" code, or a bare
// certificate ID (the legacy client sent IDs as codes).
func (s *Service) Verify(ctx context.Context, code string) (*models.CertificateRecord, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "verification code is required")
	}

	rec, err := s.store.FindByVerificationCode(ctx, code)
	if err == nil {
		s.countVerification("valid")
		return rec, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify certificate")
	}

	lookupID := strings.TrimPrefix(code, "VERIFY-")
	rec, err = s.store.FindByID(ctx, id.CertificateID(lookupID))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.countVerification("invalid")
			return nil, dErrors.New(dErrors.CodeNotFound, "certificate not found for code")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify certificate")
	}

	// A "VERIFY-" code only matches when it is the record's resolved code;
	// a bare ID always matches because the legacy client sent IDs as codes.
	if resolved := s.resolver.Code(*rec); resolved != code && lookupID != code {
		s.countVerification("invalid")
		return nil, dErrors.New(dErrors.CodeNotFound, "certificate not found for code")
	}

	s.countVerification("valid")
	return rec, nil
}

func (s *Service) countVerification(result string) {
	if s.metrics != nil {
		s.metrics.IncrementVerifications(result)
	}
}

// Stats summarizes certificates for the dashboard's counters.
type Stats struct {
	Total      int            `json:"total"`
	Issued     int            `json:"issued"`
	Pending    int            `json:"pending"`
	ByCategory map[string]int `json:"by_category"`
}

// Stats aggregates counts, optionally scoped to one student.
func (s *Service) Stats(ctx context.Context, studentName string) (*Stats, error) {
	records, err := s.store.List(ctx, studentName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificates for stats")
	}

	stats := &Stats{ByCategory: make(map[string]int)}
	for _, rec := range records {
		stats.Total++
		if rec.Status.IsIssued() {
			stats.Issued++
		}
		if rec.Status == models.StatusPending {
			stats.Pending++
		}
		stats.ByCategory[rec.Category]++
	}
	return stats, nil
}
