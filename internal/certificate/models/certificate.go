package models

import (
	"strings"

	id "certgate/pkg/domain"
	dErrors "certgate/pkg/domain-errors"
)

// DefaultInstructor is substituted when the backend omits the instructor name.
const DefaultInstructor = "Academy Director"

// CertificateRecord is the strict, normalized shape of a certificate.
//
// Invariants:
//   - ID is non-empty
//   - StudentName is non-empty after normalization
//   - Status is one of the Status constants
//   - The record is immutable once built; rendering never mutates it
//
// IssueDate keeps the backend's raw date string. The academy backend has
// shipped several date formats over the years, so parsing happens at render
// time where an unparsable value degrades to the render date instead of
// failing the whole record.
type CertificateRecord struct {
	ID               id.CertificateID `json:"id"`
	StudentName      string           `json:"student_name"`
	Title            string           `json:"title"`
	Category         string           `json:"category"`
	IssueDate        string           `json:"issue_date"`
	Status           Status           `json:"status"`
	VerificationCode string           `json:"verification_code"`
	InstructorName   string           `json:"instructor_name"`
}

// Validate enforces the basic shape contract. Missing optional fields are not
// errors; they degrade to documented defaults at render time.
func (c *CertificateRecord) Validate() error {
	if c.ID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "certificate id is required")
	}
	if strings.TrimSpace(c.StudentName) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "student name is required")
	}
	return nil
}

// Instructor returns the instructor display name, defaulted when absent.
func (c *CertificateRecord) Instructor() string {
	if s := strings.TrimSpace(c.InstructorName); s != "" {
		return s
	}
	return DefaultInstructor
}

// DisplayStatus returns the status for presentation, defaulted when absent.
func (c *CertificateRecord) DisplayStatus() Status {
	if c.Status == "" {
		return StatusActive
	}
	return c.Status
}
