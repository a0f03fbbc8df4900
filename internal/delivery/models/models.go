// Package models defines the delivery request/result vocabulary shared by the
// channel adapters, the orchestrator, and the transport layer.
package models

import (
	"certgate/internal/certificate/models"
	"certgate/internal/certificate/render"
	dErrors "certgate/pkg/domain-errors"
)

// ChannelKind names an external facility capable of receiving a share payload.
type ChannelKind string

const (
	ChannelChatApp     ChannelKind = "chat_app"
	ChannelEmail       ChannelKind = "email"
	ChannelDirectEmail ChannelKind = "direct_email"
	ChannelSystemShare ChannelKind = "system_share"
	ChannelClipboard   ChannelKind = "clipboard"
)

// ParseChannelKind validates a channel name from the wire.
func ParseChannelKind(s string) (ChannelKind, error) {
	switch ChannelKind(s) {
	case ChannelChatApp, ChannelEmail, ChannelDirectEmail, ChannelSystemShare, ChannelClipboard:
		return ChannelKind(s), nil
	case "":
		// No explicit target: the share sheet is the most capable and most
		// portable channel, so it is the default choice.
		return ChannelSystemShare, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "unknown channel: "+s)
	}
}

// Outcome is the closed result enum for one adapter attempt. Adapters convert
// every internal failure into one of these; they never leak errors upward, so
// the orchestrator's fallback logic stays exhaustive.
type Outcome string

const (
	OutcomeDelivered          Outcome = "delivered"
	OutcomeUserCancelled      Outcome = "user_cancelled"
	OutcomeChannelUnavailable Outcome = "channel_unavailable"
	OutcomeChannelError       Outcome = "channel_error"
)

// ErrorKind classifies a terminal delivery failure.
type ErrorKind string

const (
	// ErrorAllChannelsFailed means every adapter, including the clipboard,
	// failed. Should be unreachable when the clipboard binding is healthy.
	ErrorAllChannelsFailed ErrorKind = "all_channels_failed"
)

// Payload is what an adapter hands to its channel.
type Payload struct {
	// Text is the plain-text summary; every channel can splice it verbatim.
	Text string
	// URL is the public verification link, for channels that share links.
	URL string
	// Document is the rendered document, when the caller asked for one
	// beyond the text summary.
	Document *render.Document
	// Recipient is an optional email address for direct-send channels.
	Recipient string
	// Subject is used by compose-style channels.
	Subject string
}

// Request describes one user-initiated delivery.
type Request struct {
	Certificate  models.CertificateRecord
	Target       ChannelKind
	DocumentKind render.Kind
	// Recipient feeds Payload.Recipient for the direct-email channel.
	Recipient string
}

// Result reports the terminal state of one delivery.
type Result struct {
	Succeeded       bool        `json:"succeeded"`
	Cancelled       bool        `json:"cancelled"`
	ChannelUsed     ChannelKind `json:"channel_used,omitempty"`
	FallbackApplied bool        `json:"fallback_applied"`
	ErrorKind       ErrorKind   `json:"error_kind,omitempty"`
	// Document is returned for in-app preview alongside the outcome.
	Document render.Document `json:"document"`
}
