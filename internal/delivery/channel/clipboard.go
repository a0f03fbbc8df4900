package channel

import (
	"context"
	"log/slog"
	"sync"

	"certgate/internal/delivery/models"
)

// Clipboard copies the payload text verbatim. It is the universal terminal
// fallback: it never reports unavailable, and it reports delivered whenever
// the write succeeds.
type Clipboard struct {
	pasteboard Pasteboard
	logger     *slog.Logger
}

func NewClipboard(pasteboard Pasteboard, logger *slog.Logger) *Clipboard {
	if pasteboard == nil {
		pasteboard = NewInMemoryPasteboard()
	}
	return &Clipboard{pasteboard: pasteboard, logger: logger}
}

func (c *Clipboard) Kind() models.ChannelKind {
	return models.ChannelClipboard
}

// IsAvailable always reports true; the clipboard cannot be absent.
func (c *Clipboard) IsAvailable(ctx context.Context) bool {
	return true
}

func (c *Clipboard) Deliver(ctx context.Context, payload models.Payload) models.Outcome {
	text := payload.Text
	if payload.Document != nil {
		text = payload.Document.Content
	}
	if err := c.pasteboard.Write(ctx, text); err != nil {
		logOutcome(c.logger, c.Kind(), models.OutcomeChannelError, err)
		return models.OutcomeChannelError
	}
	logOutcome(c.logger, c.Kind(), models.OutcomeDelivered, nil)
	return models.OutcomeDelivered
}

// InMemoryPasteboard is the in-process Pasteboard binding. Its writes cannot
// fail, which is what makes the clipboard chain link terminal.
type InMemoryPasteboard struct {
	mu   sync.RWMutex
	last string
}

func NewInMemoryPasteboard() *InMemoryPasteboard {
	return &InMemoryPasteboard{}
}

func (p *InMemoryPasteboard) Write(ctx context.Context, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = text
	return nil
}

// Read returns the last written text.
func (p *InMemoryPasteboard) Read() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}
