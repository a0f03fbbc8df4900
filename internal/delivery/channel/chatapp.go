package channel

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"certgate/internal/delivery/models"
)

// ChatApp shares the plain-text payload through a chat application deep link.
// Text only: attachment support is platform-dependent and not assumed.
type ChatApp struct {
	scheme   string
	launcher Launcher
	logger   *slog.Logger
}

// NewChatApp builds the adapter for the given deep-link scheme ("whatsapp",
// "telegram", ...).
func NewChatApp(scheme string, launcher Launcher, logger *slog.Logger) *ChatApp {
	if scheme == "" {
		scheme = "whatsapp"
	}
	return &ChatApp{scheme: scheme, launcher: launcher, logger: logger}
}

func (c *ChatApp) Kind() models.ChannelKind {
	return models.ChannelChatApp
}

// DeepLinks returns the URL variants to try in order: the native scheme
// first, then an https fallback that resolves through the app's web bridge.
func (c *ChatApp) DeepLinks(text string) []string {
	escaped := url.QueryEscape(text)
	links := []string{fmt.Sprintf("%s://send?text=%s", c.scheme, escaped)}
	if c.scheme == "whatsapp" {
		links = append(links, "https://wa.me/?text="+escaped)
	} else {
		links = append(links, fmt.Sprintf("https://%s.com/send?text=%s", c.scheme, escaped))
	}
	return links
}

func (c *ChatApp) IsAvailable(ctx context.Context) bool {
	if c.launcher == nil {
		return false
	}
	ok, err := c.launcher.CanOpen(ctx, c.DeepLinks("")[0])
	if err != nil {
		logOutcome(c.logger, c.Kind(), models.OutcomeChannelUnavailable, err)
		return false
	}
	return ok
}

func (c *ChatApp) Deliver(ctx context.Context, payload models.Payload) models.Outcome {
	if c.launcher == nil {
		return models.OutcomeChannelUnavailable
	}

	for _, link := range c.DeepLinks(payload.Text) {
		ok, err := c.launcher.CanOpen(ctx, link)
		if err != nil || !ok {
			continue
		}
		if err := c.launcher.Open(ctx, link); err != nil {
			logOutcome(c.logger, c.Kind(), models.OutcomeChannelError, err)
			return models.OutcomeChannelError
		}
		logOutcome(c.logger, c.Kind(), models.OutcomeDelivered, nil)
		return models.OutcomeDelivered
	}
	return models.OutcomeChannelUnavailable
}
