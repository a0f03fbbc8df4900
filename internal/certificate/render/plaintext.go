package render

import (
	"context"
	"fmt"
	"strings"

	"certgate/internal/certificate/models"
)

// renderPlainText produces the human-readable summary block. Field order and
// labels are part of the contract: downstream channels splice this text
// verbatim into share payloads.
func (r *Renderer) renderPlainText(ctx context.Context, cert models.CertificateRecord) string {
	code := r.resolver.Code(cert)

	var b strings.Builder
	b.WriteString("CERTIFICATE VERIFICATION DOCUMENT\n\n")
	fmt.Fprintf(&b, "Student Name: %s\n", cert.StudentName)
	fmt.Fprintf(&b, "Title: %s\n", cert.Title)
	fmt.Fprintf(&b, "Category: %s\n", cert.Category)
	fmt.Fprintf(&b, "Issue Date: %s\n", FormatIssueDate(ctx, cert.IssueDate))
	fmt.Fprintf(&b, "Certificate ID: %s\n", cert.ID)
	fmt.Fprintf(&b, "Verification Code: %s\n", code)
	fmt.Fprintf(&b, "Verification URL: %s\n", r.resolver.URL(code))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Status: %s\n", cert.DisplayStatus())
	fmt.Fprintf(&b, "Instructor: %s\n", cert.Instructor())
	fmt.Fprintf(&b, "Issued by: %s\n", Issuer)
	b.WriteString("\n")
	fmt.Fprintf(&b, "This certificate has been issued by %s and can be verified online using the link above.\n", Issuer)
	return b.String()
}
