package render

import (
	"fmt"
	"strings"

	"certgate/internal/certificate/models"
)

// SuggestedFileName derives a safe download name:
// "Certificate_<id>_<Student_Name>.<ext>". Spaces become underscores and
// anything that could act as a path separator or shell metacharacter is
// stripped.
func SuggestedFileName(cert models.CertificateRecord, kind Kind) string {
	return fmt.Sprintf("Certificate_%s_%s.%s",
		sanitizeFileNamePart(cert.ID.String()),
		sanitizeFileNamePart(cert.StudentName),
		kind.Ext(),
	)
}

func sanitizeFileNamePart(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
