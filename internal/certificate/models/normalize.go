package models

import (
	"strings"

	id "certgate/pkg/domain"
)

// RawCertificate is the loose shape the academy backend returns. Several
// generations of the admin panel populated different field names for the same
// concept, so every field here is optional and normalization picks the first
// populated alternative.
type RawCertificate struct {
	ID              string `json:"id"`
	CertificateID   string `json:"certificateId"`
	Title           string `json:"title"`
	AchievementType string `json:"achievementType"`
	CertificateName string `json:"certificateName"`
	StudentName     string `json:"studentName"`
	Student         string `json:"student"`
	Category        string `json:"category"`
	BeltLevel       string `json:"beltLevel"`
	Type            string `json:"type"`
	IssuedDate      string `json:"issuedDate"`
	IssueDate       string `json:"issueDate"`
	CreatedAt       string `json:"createdAt"`
	Status          string `json:"status"`
	Verification    string `json:"verificationCode"`
	QRCode          string `json:"qrCode"`
	Instructor      string `json:"instructor"`
	IssuedBy        string `json:"issuedBy"`
}

// Normalize collapses a raw backend certificate into the strict record shape.
// This is the single defensive boundary; nothing downstream re-checks shapes.
func Normalize(raw RawCertificate) CertificateRecord {
	return CertificateRecord{
		ID:               id.CertificateID(strings.TrimSpace(firstNonEmpty(raw.ID, raw.CertificateID))),
		StudentName:      strings.TrimSpace(firstNonEmpty(raw.StudentName, raw.Student)),
		Title:            strings.TrimSpace(firstNonEmpty(raw.Title, raw.AchievementType, raw.CertificateName, "Certificate")),
		Category:         strings.TrimSpace(firstNonEmpty(raw.Category, raw.BeltLevel, raw.Type, "Achievement")),
		IssueDate:        strings.TrimSpace(firstNonEmpty(raw.IssuedDate, raw.IssueDate, raw.CreatedAt)),
		Status:           NormalizeStatus(raw.Status),
		VerificationCode: strings.TrimSpace(firstNonEmpty(raw.Verification, raw.QRCode)),
		InstructorName:   strings.TrimSpace(firstNonEmpty(raw.Instructor, raw.IssuedBy)),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
