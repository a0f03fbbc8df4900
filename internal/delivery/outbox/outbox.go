// Package outbox provides the production ShareSink: share payloads are
// published to a Kafka topic where downstream relays (push notification
// workers, chat bridges) pick them up.
package outbox

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"certgate/internal/delivery/channel"
)

// KafkaShareSink publishes share content to a topic. Publishing counts as a
// completed share; there is no sheet for a user to dismiss.
type KafkaShareSink struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

type Option func(*KafkaShareSink)

func WithLogger(logger *slog.Logger) Option {
	return func(s *KafkaShareSink) {
		s.logger = logger
	}
}

func NewKafkaShareSink(client *kgo.Client, topic string, opts ...Option) *KafkaShareSink {
	s := &KafkaShareSink{
		client: client,
		topic:  topic,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type shareMessage struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url,omitempty"`
}

func (s *KafkaShareSink) Share(ctx context.Context, content channel.ShareContent) (channel.ShareAction, error) {
	payload, err := json.Marshal(shareMessage{
		Title: content.Title,
		Text:  content.Text,
		URL:   content.URL,
	})
	if err != nil {
		return channel.ShareDismissed, err
	}

	record := &kgo.Record{Topic: s.topic, Value: payload}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		s.logger.Error("share outbox publish failed", "topic", s.topic, "error", err)
		return channel.ShareDismissed, err
	}

	s.logger.Debug("share outbox published", "topic", s.topic)
	return channel.ShareCompleted, nil
}
