package audit

import (
	"context"
	"sync"

	id "certgate/pkg/domain"
)

// Store is the append-only audit sink.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByCertificate(ctx context.Context, certID id.CertificateID) ([]Event, error)
}

// InMemoryStore keeps events in process memory. It intentionally favors
// clarity over performance; durable history is the Kafka consumer's job.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByCertificate(_ context.Context, certID id.CertificateID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, e := range s.events {
		if e.CertificateID == certID {
			out = append(out, e)
		}
	}
	return out, nil
}
