package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Publisher captures structured delivery audit events. Events always land in
// the local store; when a Kafka client is configured they are additionally
// produced to the audit topic for downstream consumers. Broker failures are
// logged and never fail the delivery that emitted the event.
type Publisher struct {
	store  Store
	kafka  *kgo.Client
	topic  string
	logger *slog.Logger
}

type Option func(*Publisher)

// WithKafka mirrors events onto a Kafka topic.
func WithKafka(client *kgo.Client, topic string) Option {
	return func(p *Publisher) {
		p.kafka = client
		p.topic = topic
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit records an event. The local append is synchronous; the Kafka produce
// is fire-and-forget with errors surfaced through the logger.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := p.store.Append(ctx, event); err != nil {
		return err
	}

	if p.kafka != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			p.logger.Error("audit event marshal failed", "event_id", event.ID, "error", err)
			return nil
		}
		record := &kgo.Record{
			Topic: p.topic,
			Key:   []byte(event.CertificateID),
			Value: payload,
		}
		p.kafka.Produce(ctx, record, func(_ *kgo.Record, err error) {
			if err != nil {
				p.logger.Error("audit event produce failed", "event_id", event.ID, "error", err)
			}
		})
	}
	return nil
}
