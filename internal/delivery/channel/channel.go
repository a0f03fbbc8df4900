// Package channel implements one adapter per external delivery channel.
//
// Adapters share a two-call contract: IsAvailable is a best-effort (and on
// some platforms optimistic) probe, and Deliver hands the payload off,
// reporting a closed Outcome. Failures never escape as errors; each adapter
// converts them to outcomes so the orchestrator's fallback chain cannot be
// short-circuited by a panic-prone channel.
//
// The OS facilities a mobile shell would provide are modeled as small ports
// (Launcher, ShareSink, Pasteboard) injected at construction, which is also
// what makes the fallback chain testable with call-counting doubles.
package channel

import (
	"context"
	"log/slog"

	"certgate/internal/delivery/models"
)

// Adapter is the common channel contract.
type Adapter interface {
	Kind() models.ChannelKind

	// IsAvailable reports whether the channel can plausibly accept a payload
	// right now. Callers bound the probe with a context deadline; exceeding
	// it counts as unavailable.
	IsAvailable(ctx context.Context) bool

	// Deliver hands the payload to the channel and reports the outcome.
	Deliver(ctx context.Context, payload models.Payload) models.Outcome
}

// Launcher opens deep links (chat app, mail compose). A mobile shell backs
// this with the platform linking API; servers and tests inject their own.
type Launcher interface {
	// CanOpen reports whether the URL scheme is invokable. May be optimistic:
	// some platforms cannot reliably answer "is app X installed".
	CanOpen(ctx context.Context, url string) (bool, error)

	// Open invokes the deep link.
	Open(ctx context.Context, url string) error
}

// ShareAction is what the share sheet reports back.
type ShareAction int

const (
	// ShareCompleted means the user picked a target and the payload left.
	ShareCompleted ShareAction = iota
	// ShareDismissed means the user closed the sheet without sharing.
	ShareDismissed
)

// ShareSink receives a system-share payload.
type ShareSink interface {
	Share(ctx context.Context, content ShareContent) (ShareAction, error)
}

// ShareContent is the share-sheet payload.
type ShareContent struct {
	Title string
	Text  string
	URL   string
}

// Pasteboard is the clipboard write port.
type Pasteboard interface {
	Write(ctx context.Context, text string) error
}

func logOutcome(logger *slog.Logger, kind models.ChannelKind, outcome models.Outcome, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn("channel delivery degraded", "channel", kind, "outcome", outcome, "error", err)
		return
	}
	logger.Debug("channel delivery", "channel", kind, "outcome", outcome)
}
