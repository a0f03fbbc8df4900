package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"certgate/internal/certificate/models"
	id "certgate/pkg/domain"
	"certgate/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) newCertificate(certID, student string) *models.CertificateRecord {
	return &models.CertificateRecord{
		ID:          id.CertificateID(certID),
		StudentName: student,
		Title:       "Black Belt",
		Category:    "Belt Promotion",
		IssueDate:   "2026-01-20",
		Status:      models.StatusActive,
	}
}

func (s *MemoryStoreSuite) TestInsertAndFind() {
	s.Run("inserts and finds by ID", func() {
		cert := s.newCertificate("CERT-001", "Rahul Kumar")
		s.Require().NoError(s.store.Insert(s.ctx, cert))

		found, err := s.store.FindByID(s.ctx, cert.ID)
		s.Require().NoError(err)
		s.Equal(cert.StudentName, found.StudentName)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.CertificateID("CERT-NOPE"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("rejects duplicate ID", func() {
		cert := s.newCertificate("CERT-DUP", "Rahul Kumar")
		s.Require().NoError(s.store.Insert(s.ctx, cert))
		s.Require().ErrorIs(s.store.Insert(s.ctx, cert), sentinel.ErrConflict)
	})

	s.Run("rejects record without ID", func() {
		cert := s.newCertificate("", "Rahul Kumar")
		s.Require().Error(s.store.Insert(s.ctx, cert))
	})
}

func (s *MemoryStoreSuite) TestFindByVerificationCode() {
	cert := s.newCertificate("CERT-001", "Rahul Kumar")
	cert.VerificationCode = "QR-998877"
	s.Require().NoError(s.store.Insert(s.ctx, cert))

	s.Run("finds by assigned code", func() {
		found, err := s.store.FindByVerificationCode(s.ctx, "QR-998877")
		s.Require().NoError(err)
		s.Equal(cert.ID, found.ID)
	})

	s.Run("does not match empty code", func() {
		other := s.newCertificate("CERT-002", "Arjun Sharma")
		s.Require().NoError(s.store.Insert(s.ctx, other))

		_, err := s.store.FindByVerificationCode(s.ctx, "")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestList() {
	s.Require().NoError(s.store.Insert(s.ctx, s.newCertificate("CERT-002", "Arjun Sharma")))
	s.Require().NoError(s.store.Insert(s.ctx, s.newCertificate("CERT-001", "Rahul Kumar")))
	s.Require().NoError(s.store.Insert(s.ctx, s.newCertificate("CERT-003", "Rahul Kumar")))

	s.Run("lists all ordered by ID", func() {
		all, err := s.store.List(s.ctx, "")
		s.Require().NoError(err)
		s.Require().Len(all, 3)
		s.Equal(id.CertificateID("CERT-001"), all[0].ID)
		s.Equal(id.CertificateID("CERT-003"), all[2].ID)
	})

	s.Run("filters by student case-insensitively", func() {
		mine, err := s.store.List(s.ctx, "rahul kumar")
		s.Require().NoError(err)
		s.Len(mine, 2)
	})
}

// TestReturnsCopies guards against callers mutating stored state through
// returned pointers.
func (s *MemoryStoreSuite) TestReturnsCopies() {
	cert := s.newCertificate("CERT-001", "Rahul Kumar")
	s.Require().NoError(s.store.Insert(s.ctx, cert))

	found, err := s.store.FindByID(s.ctx, cert.ID)
	s.Require().NoError(err)
	found.StudentName = "Mutated"

	again, err := s.store.FindByID(s.ctx, cert.ID)
	s.Require().NoError(err)
	s.Equal("Rahul Kumar", again.StudentName)
}
