package render

import (
	"context"
	"html/template"
	"strings"

	"certgate/internal/certificate/attrs"
	"certgate/internal/certificate/models"
)

// markupTemplate is the printable certificate page. Everything is inlined —
// styles, colors, the icon token — because delivery may happen offline and the
// document must render standalone in any generic viewer.
var markupTemplate = template.Must(template.New("certificate").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Certificate - {{.StudentName}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: 'Times New Roman', serif; background: #f5f5f5; padding: 16px; }
.certificate { max-width: 520px; margin: 0 auto; background: #FFF8DC; border: 4px solid #8B4513; border-radius: 12px; padding: 32px; }
.inner { border: 3px solid #DAA520; border-radius: 8px; padding: 24px; text-align: center; }
.issuer { font-size: 22px; font-weight: bold; color: #8B4513; letter-spacing: 1px; }
.heading { font-size: 16px; color: #555; margin-top: 8px; text-transform: uppercase; }
.accent { width: 120px; height: 6px; margin: 16px auto; border-radius: 3px; background: {{.Color}}; }
.student { font-size: 28px; font-weight: bold; color: #222; margin: 16px 0 4px; }
.title { font-size: 20px; color: {{.Color}}; font-weight: bold; margin-bottom: 4px; }
.category { font-size: 14px; color: #666; }
.meta { margin-top: 24px; font-size: 13px; color: #444; text-align: left; }
.meta div { margin: 4px 0; }
.meta span { font-weight: bold; }
.verify { margin-top: 20px; font-size: 12px; color: #666; word-break: break-all; }
.footer { margin-top: 20px; font-size: 12px; color: #8B4513; }
</style>
</head>
<body>
<div class="certificate" data-icon="{{.Icon}}">
  <div class="inner">
    <div class="issuer">{{.Issuer}}</div>
    <div class="heading">Certificate of Achievement</div>
    <div class="accent"></div>
    <div class="student">{{.StudentName}}</div>
    <div class="title">{{.Title}}</div>
    <div class="category">{{.Category}}</div>
    <div class="meta">
      <div><span>Issue Date:</span> {{.IssueDate}}</div>
      <div><span>Certificate ID:</span> {{.ID}}</div>
      <div><span>Status:</span> {{.Status}}</div>
      <div><span>Instructor:</span> {{.Instructor}}</div>
      <div><span>Verification Code:</span> {{.Code}}</div>
    </div>
    <div class="verify">Verify at {{.VerifyURL}}</div>
    <div class="footer">Issued by {{.Issuer}}</div>
  </div>
</div>
</body>
</html>
`))

type markupData struct {
	Issuer      string
	StudentName string
	Title       string
	Category    string
	IssueDate   string
	ID          string
	Status      string
	Instructor  string
	Code        string
	VerifyURL   string
	Color       template.CSS
	Icon        string
}

// renderMarkup produces the styled, self-contained HTML document.
func (r *Renderer) renderMarkup(ctx context.Context, cert models.CertificateRecord) string {
	derived := attrs.Derive(cert.Title, cert.Category)
	code := r.resolver.Code(cert)

	var b strings.Builder
	// The template is static and the data struct is total, so execution
	// cannot fail at runtime; the error return satisfies html/template.
	_ = markupTemplate.Execute(&b, markupData{
		Issuer:      Issuer,
		StudentName: cert.StudentName,
		Title:       cert.Title,
		Category:    cert.Category,
		IssueDate:   FormatIssueDate(ctx, cert.IssueDate),
		ID:          cert.ID.String(),
		Status:      string(cert.DisplayStatus()),
		Instructor:  cert.Instructor(),
		Code:        code,
		VerifyURL:   r.resolver.URL(code),
		Color:       template.CSS(derived.Color),
		Icon:        derived.Icon,
	})
	return b.String()
}
