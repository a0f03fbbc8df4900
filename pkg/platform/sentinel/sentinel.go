package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and channel bindings return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: certificate does not exist in the store
// - ErrConflict: certificate with the same ID already stored
// - ErrUnavailable: backing store, broker, or channel binding temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
