package render

import (
	"context"
	"time"

	"certgate/pkg/requestcontext"
)

// displayLayout is the contract format for issue dates: "Mon D, YYYY".
const displayLayout = "Jan 2, 2006"

// issueDateLayouts lists the formats the backend has emitted over time, most
// common first.
var issueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
	"02-01-2006",
}

// FormatIssueDate renders a raw issue date as "Mon D, YYYY".
//
// An unparsable or empty date formats as the request time instead of failing.
// This silently loses the original value and is kept deliberately: the mobile
// client always behaved this way and product never established that invalid
// dates should be rejected. Flagged for clarification before treating as final.
func FormatIssueDate(ctx context.Context, raw string) string {
	for _, layout := range issueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayLayout)
		}
	}
	return requestcontext.Now(ctx).Format(displayLayout)
}
