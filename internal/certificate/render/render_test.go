package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"certgate/internal/certificate/attrs"
	"certgate/internal/certificate/models"
	"certgate/internal/certificate/verify"
	id "certgate/pkg/domain"
	dErrors "certgate/pkg/domain-errors"
	"certgate/pkg/requestcontext"
)

type RendererSuite struct {
	suite.Suite
	renderer *Renderer
	ctx      context.Context
}

func (s *RendererSuite) SetupTest() {
	s.renderer = NewRenderer(verify.NewResolver(""))
	// Pin the clock so the unparsable-date fallback is deterministic.
	s.ctx = requestcontext.WithTime(context.Background(),
		time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC))
}

func TestRendererSuite(t *testing.T) {
	suite.Run(t, new(RendererSuite))
}

func (s *RendererSuite) blackBelt() models.CertificateRecord {
	return models.CertificateRecord{
		ID:          id.CertificateID("CERT-001"),
		StudentName: "Rahul Kumar",
		Title:       "Black Belt",
		Category:    "Belt Promotion",
		IssueDate:   "2026-01-20",
		Status:      models.StatusActive,
	}
}

func (s *RendererSuite) TestPlainText_ContractFields() {
	doc, err := s.renderer.Render(s.ctx, s.blackBelt(), KindPlainText)
	s.Require().NoError(err)

	s.Equal(KindPlainText, doc.Kind)
	s.Contains(doc.Content, "Student Name: Rahul Kumar")
	s.Contains(doc.Content, "Title: Black Belt")
	s.Contains(doc.Content, "Category: Belt Promotion")
	s.Contains(doc.Content, "Issue Date: Jan 20, 2026")
	s.Contains(doc.Content, "Certificate ID: CERT-001")
	s.Contains(doc.Content, "Verification Code: VERIFY-CERT-001")
	s.Contains(doc.Content, "Verification URL: https://taekwondo-academy.com/verify/VERIFY-CERT-001")
}

// TestPlainText_FieldOrder locks the label ordering: downstream channels
// splice this text verbatim into share payloads.
func (s *RendererSuite) TestPlainText_FieldOrder() {
	doc, err := s.renderer.Render(s.ctx, s.blackBelt(), KindPlainText)
	s.Require().NoError(err)

	labels := []string{
		"Student Name:",
		"Title:",
		"Category:",
		"Issue Date:",
		"Certificate ID:",
		"Verification Code:",
		"Verification URL:",
	}
	last := -1
	for _, label := range labels {
		idx := strings.Index(doc.Content, label)
		s.Require().Greater(idx, last, "label %q out of order", label)
		last = idx
	}
}

func (s *RendererSuite) TestPlainText_Defaults() {
	cert := s.blackBelt()
	cert.InstructorName = ""
	cert.Status = ""

	doc, err := s.renderer.Render(s.ctx, cert, KindPlainText)
	s.Require().NoError(err)

	s.Contains(doc.Content, "Instructor: Academy Director")
	s.Contains(doc.Content, "Status: Active")
}

func (s *RendererSuite) TestRender_Idempotent() {
	cert := s.blackBelt()
	first, err := s.renderer.Render(s.ctx, cert, KindPlainText)
	s.Require().NoError(err)
	second, err := s.renderer.Render(s.ctx, cert, KindPlainText)
	s.Require().NoError(err)
	s.Equal(first, second, "repeated renders must be byte-identical")

	firstMarkup, err := s.renderer.Render(s.ctx, cert, KindStyledMarkup)
	s.Require().NoError(err)
	secondMarkup, err := s.renderer.Render(s.ctx, cert, KindStyledMarkup)
	s.Require().NoError(err)
	s.Equal(firstMarkup, secondMarkup)
}

func (s *RendererSuite) TestRender_MissingID() {
	cert := s.blackBelt()
	cert.ID = ""

	_, err := s.renderer.Render(s.ctx, cert, KindPlainText)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *RendererSuite) TestRender_UnparsableDateFallsBackToRequestTime() {
	cert := s.blackBelt()
	cert.IssueDate = "sometime last spring"

	doc, err := s.renderer.Render(s.ctx, cert, KindPlainText)
	s.Require().NoError(err)
	s.Contains(doc.Content, "Issue Date: Mar 15, 2026")
}

func (s *RendererSuite) TestMarkup_SelfContained() {
	doc, err := s.renderer.Render(s.ctx, s.blackBelt(), KindStyledMarkup)
	s.Require().NoError(err)

	s.Equal(KindStyledMarkup, doc.Kind)
	s.Contains(doc.Content, "<style>")
	s.Contains(doc.Content, "Rahul Kumar")
	s.Contains(doc.Content, "CERT-001")
	s.Contains(doc.Content, "VERIFY-CERT-001")
	s.Contains(doc.Content, attrs.ColorBlackBelt, "derived color must be inlined")
	s.Contains(doc.Content, `data-icon="belt"`)
	s.NotContains(doc.Content, "src=", "document must not reference external resources")
	s.NotContains(doc.Content, "href=", "document must not reference external stylesheets")
}

func (s *RendererSuite) TestMarkup_EscapesUserContent() {
	cert := s.blackBelt()
	cert.StudentName = `<script>alert("x")</script>`

	doc, err := s.renderer.Render(s.ctx, cert, KindStyledMarkup)
	s.Require().NoError(err)
	s.NotContains(doc.Content, "<script>alert")
}

func (s *RendererSuite) TestSuggestedFileName() {
	s.Run("plain text", func() {
		doc, err := s.renderer.Render(s.ctx, s.blackBelt(), KindPlainText)
		s.Require().NoError(err)
		s.Equal("Certificate_CERT-001_Rahul_Kumar.txt", doc.SuggestedFileName)
	})

	s.Run("styled markup", func() {
		doc, err := s.renderer.Render(s.ctx, s.blackBelt(), KindStyledMarkup)
		s.Require().NoError(err)
		s.Equal("Certificate_CERT-001_Rahul_Kumar.html", doc.SuggestedFileName)
	})

	s.Run("strips path separators", func() {
		cert := s.blackBelt()
		cert.StudentName = "../etc/passwd Kumar"
		name := SuggestedFileName(cert, KindPlainText)
		s.NotContains(name, "/")
		s.NotContains(name, "..")
		s.Equal("Certificate_CERT-001_etcpasswd_Kumar.txt", name)
	})
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "", want: KindPlainText},
		{in: "plain_text", want: KindPlainText},
		{in: "txt", want: KindPlainText},
		{in: "html", want: KindStyledMarkup},
		{in: "styled_markup", want: KindStyledMarkup},
		{in: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run("kind "+tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
