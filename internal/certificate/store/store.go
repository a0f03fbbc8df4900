// Package store persists normalized certificate records.
//
// Implementations return pkg/platform/sentinel errors for infrastructure
// facts (ErrNotFound, ErrConflict); the service layer translates them into
// domain errors.
package store

import (
	"context"

	"certgate/internal/certificate/models"
	id "certgate/pkg/domain"
)

// Store is the certificate persistence port.
type Store interface {
	// Insert adds a record. Returns sentinel.ErrConflict if the ID exists.
	Insert(ctx context.Context, cert *models.CertificateRecord) error

	// FindByID returns the record or sentinel.ErrNotFound.
	FindByID(ctx context.Context, certID id.CertificateID) (*models.CertificateRecord, error)

	// FindByVerificationCode returns the record carrying the assigned code,
	// or sentinel.ErrNotFound. Synthesized codes resolve through the service,
	// not here.
	FindByVerificationCode(ctx context.Context, code string) (*models.CertificateRecord, error)

	// List returns records ordered by ID, optionally filtered to one student
	// (case-insensitive exact match). Empty studentName returns everything.
	List(ctx context.Context, studentName string) ([]*models.CertificateRecord, error)
}
