package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"certgate/internal/certificate/models"
	id "certgate/pkg/domain"
)

const cacheKeyPrefix = "certgate:cert:"

// Cached is a read-through Redis cache in front of another Store. Only
// normalized records are cached — never rendered documents, which are
// recomputed on every call by design.
//
// Cache failures are logged and the inner store serves; Redis being down must
// not take certificate reads down with it.
type Cached struct {
	inner  Store
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps inner with a Redis record cache.
func NewCached(inner Store, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cached{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (c *Cached) Insert(ctx context.Context, cert *models.CertificateRecord) error {
	if err := c.inner.Insert(ctx, cert); err != nil {
		return err
	}
	// Drop any stale entry rather than priming; reads repopulate.
	if err := c.client.Del(ctx, cacheKeyPrefix+cert.ID.String()).Err(); err != nil {
		c.logger.Warn("certificate cache invalidation failed", "id", cert.ID, "error", err)
	}
	return nil
}

func (c *Cached) FindByID(ctx context.Context, certID id.CertificateID) (*models.CertificateRecord, error) {
	key := cacheKeyPrefix + certID.String()

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var rec models.CertificateRecord
		if err := json.Unmarshal(payload, &rec); err == nil {
			return &rec, nil
		}
		// Corrupt entry: fall through to the inner store and rewrite.
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("certificate cache read failed", "id", certID, "error", err)
	}

	rec, err := c.inner.FindByID(ctx, certID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(rec); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("certificate cache write failed", "id", certID, "error", err)
		}
	}
	return rec, nil
}

func (c *Cached) FindByVerificationCode(ctx context.Context, code string) (*models.CertificateRecord, error) {
	return c.inner.FindByVerificationCode(ctx, code)
}

func (c *Cached) List(ctx context.Context, studentName string) ([]*models.CertificateRecord, error) {
	return c.inner.List(ctx, studentName)
}
