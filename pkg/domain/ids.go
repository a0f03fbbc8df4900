package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CertificateID is the opaque identifier the academy backend assigns to a
// certificate (e.g. "CERT-4125362"). It is treated as an opaque string, not a
// UUID, because issuance predates this service.
type CertificateID string

// ParseCertificateID validates a raw certificate identifier.
func ParseCertificateID(s string) (CertificateID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("certificate id is empty")
	}
	return CertificateID(s), nil
}

func (id CertificateID) String() string {
	return string(id)
}

// IsNil returns true if the certificate ID is empty.
func (id CertificateID) IsNil() bool {
	return id == ""
}

// DeliveryID identifies a single user-initiated delivery attempt.
type DeliveryID uuid.UUID

// NewDeliveryID returns a fresh delivery identifier.
func NewDeliveryID() DeliveryID {
	return DeliveryID(uuid.New())
}

// ParseDeliveryID validates a raw delivery identifier.
func ParseDeliveryID(s string) (DeliveryID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return DeliveryID{}, fmt.Errorf("invalid delivery id: %w", err)
	}
	return DeliveryID(u), nil
}

func (id DeliveryID) String() string {
	return uuid.UUID(id).String()
}

// IsNil returns true if the delivery ID is the zero UUID.
func (id DeliveryID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}
