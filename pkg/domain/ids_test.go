package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCertificateID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseCertificateID("")
		require.Error(t, err)
	})

	t.Run("rejects whitespace-only string", func(t *testing.T) {
		_, err := ParseCertificateID("   ")
		require.Error(t, err)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		id, err := ParseCertificateID("  CERT-4125362  ")
		require.NoError(t, err)
		assert.Equal(t, CertificateID("CERT-4125362"), id)
	})

	t.Run("accepts non-UUID backend identifiers", func(t *testing.T) {
		id, err := ParseCertificateID("CERT-2024-001")
		require.NoError(t, err)
		assert.Equal(t, "CERT-2024-001", id.String())
		assert.False(t, id.IsNil())
	})

	t.Run("zero value is nil", func(t *testing.T) {
		var id CertificateID
		assert.True(t, id.IsNil())
	})
}

func TestDeliveryID(t *testing.T) {
	t.Run("new IDs are unique and non-nil", func(t *testing.T) {
		a := NewDeliveryID()
		b := NewDeliveryID()
		assert.False(t, a.IsNil())
		assert.NotEqual(t, a, b)
	})

	t.Run("round-trips through string form", func(t *testing.T) {
		a := NewDeliveryID()
		parsed, err := ParseDeliveryID(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		_, err := ParseDeliveryID("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("nil UUID is nil", func(t *testing.T) {
		assert.True(t, DeliveryID(uuid.Nil).IsNil())
	})
}
