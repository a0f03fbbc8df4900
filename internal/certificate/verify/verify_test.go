package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"certgate/internal/certificate/models"
	id "certgate/pkg/domain"
)

func TestResolver_Code(t *testing.T) {
	r := NewResolver("")

	t.Run("synthesizes deterministic code when absent", func(t *testing.T) {
		cert := models.CertificateRecord{ID: id.CertificateID("CERT-001")}
		assert.Equal(t, "VERIFY-CERT-001", r.Code(cert))
		assert.Equal(t, "VERIFY-CERT-001", r.Code(cert), "must be stable across calls")
	})

	t.Run("returns assigned code unchanged", func(t *testing.T) {
		cert := models.CertificateRecord{
			ID:               id.CertificateID("CERT-001"),
			VerificationCode: "QR-998877",
		}
		assert.Equal(t, "QR-998877", r.Code(cert))
	})

	t.Run("whitespace-only code counts as absent", func(t *testing.T) {
		cert := models.CertificateRecord{
			ID:               id.CertificateID("CERT-002"),
			VerificationCode: "   ",
		}
		assert.Equal(t, "VERIFY-CERT-002", r.Code(cert))
	})
}

func TestResolver_URL(t *testing.T) {
	t.Run("builds verification URL on default base", func(t *testing.T) {
		r := NewResolver("")
		assert.Equal(t, "https://taekwondo-academy.com/verify/VERIFY-CERT-001", r.URL("VERIFY-CERT-001"))
	})

	t.Run("escapes the code for the path segment", func(t *testing.T) {
		r := NewResolver("https://example.test")
		assert.Equal(t, "https://example.test/verify/CODE%2FWITH%2FSLASH", r.URL("CODE/WITH/SLASH"))
	})

	t.Run("trims trailing slash from base", func(t *testing.T) {
		r := NewResolver("https://example.test/")
		assert.Equal(t, "https://example.test/verify/abc", r.URL("abc"))
	})
}
