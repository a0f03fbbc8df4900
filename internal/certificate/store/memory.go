package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"certgate/internal/certificate/models"
	id "certgate/pkg/domain"
	"certgate/pkg/platform/sentinel"
)

// InMemory holds certificate records in process memory. It backs tests and
// deployments without Postgres configured.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.CertificateID]models.CertificateRecord
}

// NewInMemory creates an empty in-memory certificate store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.CertificateID]models.CertificateRecord)}
}

func (s *InMemory) Insert(ctx context.Context, cert *models.CertificateRecord) error {
	if err := cert.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[cert.ID]; exists {
		return sentinel.ErrConflict
	}
	s.records[cert.ID] = *cert
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, certID id.CertificateID) (*models.CertificateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[certID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copy := rec
	return &copy, nil
}

func (s *InMemory) FindByVerificationCode(ctx context.Context, code string) (*models.CertificateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.VerificationCode != "" && rec.VerificationCode == code {
			copy := rec
			return &copy, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) List(ctx context.Context, studentName string) ([]*models.CertificateRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.CertificateRecord, 0, len(s.records))
	for _, rec := range s.records {
		if studentName != "" && !strings.EqualFold(rec.StudentName, studentName) {
			continue
		}
		copy := rec
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
