package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"

	"github.com/ecommerce-platform/orders/internal/application"
	"github.com/ecommerce-platform/orders/internal/cache"
	"github.com/ecommerce-platform/orders/internal/config"
	"github.com/ecommerce-platform/orders/internal/kafka"
	"github.com/ecommerce-platform/orders/internal/logger"
	"github.com/ecommerce-platform/orders/internal/migrate"
	"github.com/ecommerce-platform/orders/internal/presentation"
	"github.com/ecommerce-platform/orders/internal/repository"
)

func main() {
	logger.Init()
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// DB pool
	pool, err := pgxpool.New(ctx, cfg.DBString)
	if err != nil {
		logger.Error("pgxpool new failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	// DB may still be coming up alongside us
	backoff := retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		logger.Error("db ping failed", "err", err)
		os.Exit(1)
	}
	logger.Info("db connected")

	if err := migrate.Up(cfg.DBString); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	var orderCache application.OrderCache
	if cfg.RedisAddr != "" {
		c, err := cache.New(cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			logger.Error("redis connect failed", "err", err)
			os.Exit(1)
		}
		defer c.Close()
		orderCache = c
	}

	// Kafka producer for outbound OrderModified events
	prod := kafka.NewProducer(cfg.KafkaBrokers, cfg.OutboundTopic)
	defer prod.Close()

	// Wiring
	repo := repository.NewOrderRepository(pool)
	svc := application.NewOrdersService(repo, orderCache, prod)

	// Kafka consumer for inbound warehouse/delivery events
	kafka.StartConsumer(ctx, svc, kafka.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.EventsTopic,
		GroupID: cfg.KafkaGroupID,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	h := presentation.NewOrdersHandler(svc, pool.Ping)
	h.Register(r)

	addr := ":" + cfg.HTTPPort
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting http", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("http server crashed", "err", err)
		os.Exit(1)
	}
}
