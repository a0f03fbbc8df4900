package handler

import (
	"certgate/internal/certificate/attrs"
	"certgate/internal/certificate/models"
	"certgate/internal/certificate/verify"
)

// CertificateView is the wire shape of one certificate, enriched with the
// derived display attributes and the resolved verification link so clients
// never re-derive them.
type CertificateView struct {
	ID               string `json:"id"`
	StudentName      string `json:"student_name"`
	Title            string `json:"title"`
	Category         string `json:"category"`
	IssueDate        string `json:"issue_date,omitempty"`
	Status           string `json:"status"`
	InstructorName   string `json:"instructor_name"`
	Color            string `json:"color"`
	Icon             string `json:"icon"`
	VerificationCode string `json:"verification_code"`
	VerificationURL  string `json:"verification_url"`
}

func viewFromRecord(rec *models.CertificateRecord, resolver *verify.Resolver) CertificateView {
	derived := attrs.Derive(rec.Title, rec.Category)
	code := resolver.Code(*rec)
	return CertificateView{
		ID:               rec.ID.String(),
		StudentName:      rec.StudentName,
		Title:            rec.Title,
		Category:         rec.Category,
		IssueDate:        rec.IssueDate,
		Status:           string(rec.DisplayStatus()),
		InstructorName:   rec.Instructor(),
		Color:            derived.Color,
		Icon:             derived.Icon,
		VerificationCode: code,
		VerificationURL:  resolver.URL(code),
	}
}

// VerifyRequest carries the code submitted for verification.
type VerifyRequest struct {
	Code string `json:"code"`
}

// VerifyResponse reports the verification verdict. Certificate is present
// only on a valid code.
type VerifyResponse struct {
	Valid       bool             `json:"valid"`
	Certificate *CertificateView `json:"certificate,omitempty"`
}

// ListResponse wraps the certificate collection.
type ListResponse struct {
	Certificates []CertificateView `json:"certificates"`
	Count        int               `json:"count"`
}
