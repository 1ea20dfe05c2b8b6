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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Golden-Bit/myrent-SDK/grpcapp"
	"github.com/Golden-Bit/myrent-SDK/internal/application/pricing"
	"github.com/Golden-Bit/myrent-SDK/internal/application/service"
	"github.com/Golden-Bit/myrent-SDK/internal/config"
	"github.com/Golden-Bit/myrent-SDK/internal/domain/ports"
	"github.com/Golden-Bit/myrent-SDK/internal/infrastructures/catalog"
	cachememory "github.com/Golden-Bit/myrent-SDK/internal/infrastructures/db/memory"
	cacheredis "github.com/Golden-Bit/myrent-SDK/internal/infrastructures/db/redis"
	"github.com/Golden-Bit/myrent-SDK/internal/infrastructures/myrent"
	myrentclient "github.com/Golden-Bit/myrent-SDK/internal/infrastructures/myrent/http/client"
	"github.com/Golden-Bit/myrent-SDK/internal/infrastructures/tracing"
	"github.com/Golden-Bit/myrent-SDK/internal/metrics"
	"github.com/Golden-Bit/myrent-SDK/internal/transport/http/router"
)

const serviceName = "quote-api"

// version is set at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	tp, err := tracing.InitTracer(serviceName, version, cfg.Jaeger)
	if err != nil {
		log.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("failed to shutdown tracer provider", zap.Error(err))
		}
	}()

	log.Info("quote-api starting",
		zap.String("env", cfg.Env),
		zap.String("http_addr", cfg.HTTP.Address()),
		zap.String("datasource", cfg.DataSource),
	)

	quoting := metrics.NewQuoting(prometheus.DefaultRegisterer)

	rules := pricing.DefaultRules()
	rules.AvailabilityBuckets = cfg.Pricing.AvailabilityBuckets
	rules.AvailableBuckets = cfg.Pricing.AvailableBuckets

	localCatalog, err := catalog.Load(cfg.Catalog.Path, rules)
	if err != nil {
		log.Fatal("failed to load vehicle catalog", zap.Error(err), zap.String("path", cfg.Catalog.Path))
	}

	sources := service.NewSources(cfg.DataSource).Register(service.SourceLocal, localCatalog)

	var lister ports.VehicleLister
	if cfg.MyRent.Enabled() {
		client := myrentclient.NewClient(myrentclient.Config{
			BaseURL:     cfg.MyRent.BaseURL,
			UserID:      cfg.MyRent.UserID,
			Password:    cfg.MyRent.Password,
			CompanyCode: cfg.MyRent.CompanyCode,
			Timeout:     cfg.MyRent.Timeout,
			MaxRetries:  cfg.MyRent.MaxRetries,
			Backoff:     cfg.MyRent.Backoff,
		}, nil, log)
		upstream := myrent.NewSource(client, cfg.MyRent.VATPct, cfg.Listing.DefaultAge)
		sources.Register(service.SourceMyRent, upstream)

		cache, closeCache := setupListingCache(cfg, log)
		defer closeCache()

		lister = service.NewVehicleLister(log, upstream, cache, cfg.Listing.CacheTTL, service.ProbeGrid{
			StartOffsetsDays: cfg.Listing.StartOffsetsDays,
			DurationsDays:    cfg.Listing.DurationsDays,
			HourUTC:          cfg.Listing.ProbeHourUTC,
		}, cfg.Listing.DefaultAge, quoting)

		log.Info("myrent upstream enabled", zap.String("base_url", cfg.MyRent.BaseURL), zap.String("listing_cache", cfg.Listing.CacheBackend))
	} else {
		sources.Register(service.SourceMyRent, nil)
	}

	quotationService := service.NewQuotationService(log, sources, quoting)
	catalogService := service.NewCatalogService(log, sources, localCatalog, lister)

	server := &http.Server{
		Addr: cfg.HTTP.Address(),
		Handler: router.New(router.Deps{
			Log:      log,
			Version:  version,
			APIKey:   cfg.Auth.APIKey,
			Quoter:   quotationService,
			Catalog:  catalogService,
			Gatherer: prometheus.DefaultGatherer,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	admin := grpcapp.New(log, cfg.GRPC.Host, cfg.GRPC.Port)

	errCh := make(chan error, 2)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	go func() {
		errCh <- admin.Run()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
		}
	}

	admin.SetServing(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	admin.Stop()
}

// setupListingCache picks the listing cache backend. The returned func
// releases its connections.
func setupListingCache(cfg *config.Config, log *zap.Logger) (ports.ListingCache, func()) {
	if cfg.Listing.CacheBackend != config.CacheBackendRedis {
		return cachememory.NewListingCache(), func() {}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis not reachable yet, listing cache will retry per request", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
	}

	return cacheredis.NewListingCache(redisClient), func() {
		if err := redisClient.Close(); err != nil {
			log.Warn("failed to close redis client", zap.Error(err))
		}
	}
}

func setupLogger(level string) *zap.Logger {
	zapLevel := parseLogLevel(level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func parseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
