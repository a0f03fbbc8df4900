// Package verify resolves certificate verification codes and builds the
// public verification URLs embedded in every shared document.
package verify

import (
	"net/url"
	"strings"

	"certgate/internal/certificate/models"
)

// DefaultBaseURL is the academy's public verification host.
const DefaultBaseURL = "https://taekwondo-academy.com"

// codePrefix marks codes synthesized from the certificate ID, so a verifier
// can tell a derived code from one assigned at issuance.
const codePrefix = "VERIFY-"

// Resolver derives verification codes and URLs. Both operations are pure and
// total; the same certificate always resolves to the same code.
type Resolver struct {
	baseURL string
}

// NewResolver builds a resolver rooted at baseURL, defaulting to the academy
// host when empty.
func NewResolver(baseURL string) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// Code returns the certificate's assigned verification code, or synthesizes a
// deterministic one from the ID when absent. Determinism matters: every
// rendered document for a given certificate must embed the same code.
func (r *Resolver) Code(cert models.CertificateRecord) string {
	if code := strings.TrimSpace(cert.VerificationCode); code != "" {
		return code
	}
	return codePrefix + cert.ID.String()
}

// URL returns the public verification URL for a code, escaping it for the
// path segment.
func (r *Resolver) URL(code string) string {
	return r.baseURL + "/verify/" + url.PathEscape(code)
}
