package models

import "strings"

// Status is the normalized certificate lifecycle state.
type Status string

const (
	StatusIssued  Status = "Issued"
	StatusActive  Status = "Active"
	StatusPending Status = "Pending"
	StatusDraft   Status = "Draft"
)

// NormalizeStatus maps the heterogeneous values the backend has emitted over
// time ("issued", "ACTIVE", "pending", legacy boolean-ish flags rendered as
// strings) onto the closed Status enum. Unknown values default to Active,
// matching how the mobile client treated anything it could not classify.
func NormalizeStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "issued":
		return StatusIssued
	case "active", "true", "valid", "":
		return StatusActive
	case "pending":
		return StatusPending
	case "draft", "false", "inactive":
		return StatusDraft
	default:
		return StatusActive
	}
}

// IsIssued reports whether the certificate counts as issued for stats.
func (s Status) IsIssued() bool {
	return s == StatusIssued || s == StatusActive
}
