// Package app assembles the service: configuration, storage tiers,
// gateway and platform clients, webhook processing mode and the HTTP edge.
package app

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"disputedesk/config"
	controller "disputedesk/internal/controller/http"
	"disputedesk/internal/controller/http/handlers"
	"disputedesk/internal/domain/defense"
	"disputedesk/internal/domain/dispute"
	"disputedesk/internal/domain/match"
	"disputedesk/internal/external/kafka"
	"disputedesk/internal/external/opensearch"
	"disputedesk/internal/external/pagarme"
	"disputedesk/internal/external/shopify"
	defense_repo "disputedesk/internal/repo/defense"
	"disputedesk/internal/store"
	"disputedesk/internal/webhook"
	"disputedesk/pkg/health"
	"disputedesk/pkg/logger"
	"disputedesk/pkg/postgres"
	"disputedesk/pkg/signature"
)

//go:embed migrations/*.sql
var MIGRATION_FS embed.FS

const shutdownTimeout = 10 * time.Second

func Run(cfg config.Config) error {
	logger.Setup(logger.Options{Level: cfg.LogLevel, Console: cfg.LogFormat == "console"})
	log := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
	if err != nil {
		return fmt.Errorf("app - Run - postgres.New: %w", err)
	}
	defer pg.Close()

	if err := ApplyMigrations(cfg.PgURL, MIGRATION_FS); err != nil {
		return fmt.Errorf("app - Run - ApplyMigrations: %w", err)
	}

	checkers := []health.Checker{health.NewPostgresChecker(pg.Pool)}

	var (
		disputeStore dispute.Store
		minioClient  *minio.Client
	)
	if cfg.MinioEndpoint != "" {
		minioClient, err = minio.New(cfg.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
			Secure: cfg.MinioUseSSL,
		})
		if err != nil {
			return fmt.Errorf("app - Run - minio.New: %w", err)
		}

		blob := store.NewBlob(minioClient, cfg.MinioBucket, cfg.StoreObjectKey)
		if err := blob.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("app - Run - blob.EnsureBucket: %w", err)
		}
		disputeStore = store.NewDurable(blob, cfg.StoreCapacity, log)
		checkers = append(checkers, health.NewObjectStoreChecker(minioClient, cfg.MinioBucket))
	} else {
		log.Warn("object store not configured, dispute records live in memory only")
		disputeStore = store.NewMemory(cfg.StoreCapacity)
	}

	var (
		sink   dispute.EventSink = dispute.NoopSink{}
		events handlers.EventsLister
	)
	if len(cfg.OpensearchUrls) > 0 {
		osSink, err := opensearch.NewSink(ctx, cfg.OpensearchUrls, cfg.OpensearchIndexDisputeEvents)
		if err != nil {
			return fmt.Errorf("app - Run - opensearch.NewSink: %w", err)
		}
		sink = osSink
		events = osSink
	}

	shopifyClient := shopify.New(cfg.ShopifyBaseURL, cfg.ShopifyToken, cfg.ShopifyAPIVersion,
		&http.Client{Timeout: cfg.ShopifyTimeout})
	resolver := match.NewResolver(shopifyClient, cfg.AmountTolerancePct, cfg.MatchTimeout)

	disputeService := dispute.NewService(disputeStore, sink, resolver, cfg.AmountTolerancePct, log)

	var submitter defense.GatewaySubmitter
	if cfg.PagarmeBaseURL != "" {
		pagarmeClient := pagarme.New(cfg.PagarmeBaseURL, cfg.PagarmeAPIKey,
			&http.Client{Timeout: cfg.PagarmeTimeout})
		disputeService.WithChargeFetcher(pagarmeClient)
		submitter = pagarmeClient
	}

	defenseRepo := defense_repo.NewPgDefenseRepo(pg)
	defenseService := defense.NewService(defenseRepo, submitter, disputeService, log)
	disputeService.WithDefenseProjector(defenseService)

	var processor webhook.Processor = webhook.NewSyncProcessor(disputeService)
	if webhook.Mode(cfg.WebhookMode) == webhook.ModeKafka {
		disputesPub := kafka.NewPublisher(log, cfg.KafkaBrokers, cfg.KafkaDisputesTopic)
		fulfillmentsPub := kafka.NewPublisher(log, cfg.KafkaBrokers, cfg.KafkaFulfillmentsTopic)
		defer disputesPub.Close()
		defer fulfillmentsPub.Close()

		processor = webhook.NewAsyncProcessor(disputesPub, fulfillmentsPub)
		checkers = append(checkers, health.NewKafkaChecker(cfg.KafkaBrokers))

		StartWorkers(ctx, log, cfg, disputeService)
	}

	gatewayProfile := signature.Profile{
		Header:   cfg.GatewaySignatureHeader,
		Encoding: signature.EncodingHex,
		Secret:   []byte(cfg.GatewayWebhookSecret),
	}
	platformProfile := signature.Profile{
		Header:   cfg.PlatformSignatureHeader,
		Encoding: signature.EncodingBase64,
		Secret:   []byte(cfg.PlatformWebhookSecret),
	}

	webhookHandler := handlers.NewWebhookHandler(gatewayProfile, platformProfile,
		cfg.PlatformTopicHeader, processor, log)
	disputeHandler := handlers.NewDisputeHandler(disputeService, events)
	defenseHandler := handlers.NewDefenseHandler(defenseService)

	router := controller.NewRouter(webhookHandler, disputeHandler, defenseHandler,
		health.NewRegistry(checkers...))

	engine := gin.New()
	engine.Use(gin.Recovery())
	router.SetUp(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening", "addr", srv.Addr, "webhook_mode", cfg.WebhookMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("app - Run - srv.ListenAndServe: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
