// Package render turns a certificate record into shareable documents: a
// plain-text summary and a self-contained styled-markup (HTML) page.
//
// Rendering is pure: no caching, no side effects, and byte-identical output
// for identical input. The single documented exception is the issue-date
// fallback — an unparsable date renders as the request time (see FormatIssueDate).
package render

import (
	"context"
	"strings"

	"certgate/internal/certificate/models"
	"certgate/internal/certificate/verify"
	dErrors "certgate/pkg/domain-errors"
)

// Issuer is the academy name stamped on every document.
const Issuer = "Combat Warrior Institute"

// Kind selects a document representation.
type Kind string

const (
	KindPlainText    Kind = "plain_text"
	KindStyledMarkup Kind = "styled_markup"
)

// ParseKind normalizes the kind aliases accepted on the wire. Empty input
// defaults to plain text, matching the mobile client's share flows.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain_text", "text", "txt":
		return KindPlainText, nil
	case "styled_markup", "markup", "html":
		return KindStyledMarkup, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown document kind: "+s)
	}
}

// Ext returns the file extension for the kind.
func (k Kind) Ext() string {
	if k == KindStyledMarkup {
		return "html"
	}
	return "txt"
}

// Document is a rendered representation of one certificate. It is owned by
// the caller and never cached across calls.
type Document struct {
	Kind              Kind   `json:"kind"`
	Content           string `json:"content"`
	SuggestedFileName string `json:"suggested_file_name"`
}

// Renderer builds documents from certificate records.
type Renderer struct {
	resolver *verify.Resolver
}

// NewRenderer builds a renderer using the given verification resolver.
func NewRenderer(resolver *verify.Resolver) *Renderer {
	if resolver == nil {
		resolver = verify.NewResolver("")
	}
	return &Renderer{resolver: resolver}
}

// Render produces the requested document kind for a certificate.
// The only failure mode is a certificate missing its ID; every other missing
// field degrades to a documented default.
func (r *Renderer) Render(ctx context.Context, cert models.CertificateRecord, kind Kind) (Document, error) {
	if cert.ID.IsNil() {
		return Document{}, dErrors.New(dErrors.CodeBadRequest, "certificate id is required")
	}

	var content string
	switch kind {
	case KindStyledMarkup:
		content = r.renderMarkup(ctx, cert)
	default:
		kind = KindPlainText
		content = r.renderPlainText(ctx, cert)
	}

	return Document{
		Kind:              kind,
		Content:           content,
		SuggestedFileName: SuggestedFileName(cert, kind),
	}, nil
}
