// Command server runs the certificate document and delivery API.
//
// Wiring is environment-driven: without a Postgres DSN the service runs on an
// in-memory store seeded with sample data, and optional Redis, Kafka, and
// SendGrid configuration enable the record cache, the share outbox with the
// audit stream, and the direct-email channel.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"certgate/internal/audit"
	certhandler "certgate/internal/certificate/handler"
	certmetrics "certgate/internal/certificate/metrics"
	"certgate/internal/certificate/render"
	"certgate/internal/certificate/service"
	"certgate/internal/certificate/store"
	"certgate/internal/certificate/verify"
	"certgate/internal/delivery/channel"
	deliveryhandler "certgate/internal/delivery/handler"
	deliverymetrics "certgate/internal/delivery/metrics"
	"certgate/internal/delivery/orchestrator"
	"certgate/internal/delivery/outbox"
	"certgate/internal/platform/config"
	"certgate/internal/platform/httpserver"
	"certgate/internal/platform/logger"
	"certgate/internal/platform/postgres"
	platformredis "certgate/internal/platform/redis"
	httptransport "certgate/internal/transport/http"
	pkgstrings "certgate/pkg/platform/strings"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Certificate storage: Postgres when configured, otherwise seeded memory.
	var certStore store.Store
	db, err := postgres.Open(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
		certStore = store.NewPostgres(db)
		log.Info("using postgres certificate store")
	} else {
		mem := store.NewInMemory()
		store.SeedSampleCertificates(mem)
		certStore = mem
		log.Info("using in-memory certificate store with sample data")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		certStore = store.NewCached(certStore, redisClient, cfg.Redis.RecordTTL, log)
		log.Info("certificate record cache enabled")
	}

	resolver := verify.NewResolver(cfg.VerifyBaseURL)
	renderer := render.NewRenderer(resolver)

	certService, err := service.New(certStore, renderer, resolver,
		service.WithLogger(log),
		service.WithMetrics(certmetrics.New()),
	)
	if err != nil {
		log.Error("certificate service init failed", "error", err)
		os.Exit(1)
	}

	// Delivery side: audit trail, channel adapters, orchestrator.
	auditStore := audit.NewInMemoryStore()
	auditOpts := []audit.Option{audit.WithLogger(log)}

	var kafkaClient *kgo.Client
	if cfg.Kafka.Brokers != "" {
		brokers := pkgstrings.DedupeAndTrim(strings.Split(cfg.Kafka.Brokers, ","))
		kafkaClient, err = kgo.NewClient(kgo.SeedBrokers(brokers...))
		if err != nil {
			log.Error("kafka connection failed", "error", err)
			os.Exit(1)
		}
		defer kafkaClient.Close()
		auditOpts = append(auditOpts, audit.WithKafka(kafkaClient, cfg.Kafka.AuditTopic))
		log.Info("kafka audit stream enabled", "topic", cfg.Kafka.AuditTopic)
	}
	auditPublisher := audit.NewPublisher(auditStore, auditOpts...)

	var shareSink channel.ShareSink
	if kafkaClient != nil {
		shareSink = outbox.NewKafkaShareSink(kafkaClient, cfg.Kafka.ShareTopic, outbox.WithLogger(log))
		log.Info("kafka share outbox enabled", "topic", cfg.Kafka.ShareTopic)
	}

	adapters := []channel.Adapter{
		channel.NewSystemShare(shareSink, log),
		channel.NewClipboard(channel.NewInMemoryPasteboard(), log),
	}
	if direct := channel.NewDirectEmail(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail, log); direct != nil {
		adapters = append(adapters, direct)
		log.Info("direct email channel enabled")
	}

	orch, err := orchestrator.New(renderer, resolver, adapters,
		orchestrator.WithLogger(log),
		orchestrator.WithAudit(auditPublisher),
		orchestrator.WithMetrics(deliverymetrics.New()),
		orchestrator.WithProbeTimeout(cfg.ProbeTimeout),
	)
	if err != nil {
		log.Error("orchestrator init failed", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(log,
		certhandler.New(certService, resolver, log),
		deliveryhandler.New(certService, orch, auditStore, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
