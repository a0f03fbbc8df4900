package store

import (
	"context"

	"certgate/internal/certificate/models"
)

// SeedSampleCertificates loads the sample records the mobile client ships as
// its offline fallback. Used when no Postgres DSN is configured so the service
// starts with browsable data.
func SeedSampleCertificates(s Store) {
	ctx := context.Background()
	for _, raw := range []models.RawCertificate{
		{
			ID:          "CERT-4125362",
			Title:       "red belt",
			StudentName: "Golu Vishwakarma",
			Type:        "red belt",
			IssueDate:   "2025-01-23",
			Status:      "Active",
			Instructor:  "Academy Director",
		},
		{
			ID:          "CERT-2024-001",
			Title:       "Black Belt",
			StudentName: "Rahul Kumar",
			Category:    "Belt Promotion",
			IssueDate:   "2025-01-22",
			Status:      "Issued",
		},
		{
			ID:           "CERT-CRFT123",
			Title:        "Gold Medal - State Championship",
			StudentName:  "Arjun Sharma",
			Category:     "Award",
			IssueDate:    "2025-01-20",
			Status:       "Active",
			Verification: "QR-CRFT123",
		},
	} {
		rec := models.Normalize(raw)
		_ = s.Insert(ctx, &rec)
	}
}
