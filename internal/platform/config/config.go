package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration for the certificate service.
type Server struct {
	Addr string

	// VerifyBaseURL is the public base for certificate verification links,
	// e.g. "https://taekwondo-academy.com".
	VerifyBaseURL string

	// ProbeTimeout bounds any single channel availability probe so a hung
	// platform call degrades to channel-unavailable instead of blocking.
	ProbeTimeout time.Duration

	PostgresDSN string
	Redis       RedisConfig
	Kafka       KafkaConfig
	SendGrid    SendGridConfig
}

// RedisConfig controls the optional certificate record cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RecordTTL    time.Duration
}

// KafkaConfig controls the share outbox and audit event stream.
type KafkaConfig struct {
	Brokers    string
	ShareTopic string
	AuditTopic string
}

// SendGridConfig controls the optional direct-email delivery channel.
type SendGridConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:          envOr("CERTGATE_ADDR", ":8080"),
		VerifyBaseURL: envOr("CERTGATE_VERIFY_BASE_URL", "https://taekwondo-academy.com"),
		ProbeTimeout:  envDurationOr("CERTGATE_PROBE_TIMEOUT", 3*time.Second),
		PostgresDSN:   os.Getenv("CERTGATE_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("CERTGATE_REDIS_URL"),
			PoolSize:     envIntOr("CERTGATE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("CERTGATE_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDurationOr("CERTGATE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("CERTGATE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("CERTGATE_REDIS_WRITE_TIMEOUT", 3*time.Second),
			RecordTTL:    envDurationOr("CERTGATE_REDIS_RECORD_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers:    os.Getenv("CERTGATE_KAFKA_BROKERS"),
			ShareTopic: envOr("CERTGATE_KAFKA_SHARE_TOPIC", "certgate.share-outbox"),
			AuditTopic: envOr("CERTGATE_KAFKA_AUDIT_TOPIC", "certgate.delivery-audit"),
		},
		SendGrid: SendGridConfig{
			APIKey:    os.Getenv("CERTGATE_SENDGRID_API_KEY"),
			FromName:  envOr("CERTGATE_SENDGRID_FROM_NAME", "Combat Warrior Institute"),
			FromEmail: envOr("CERTGATE_SENDGRID_FROM_EMAIL", "certificates@taekwondo-academy.com"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
