package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/weiawesome/wes-io-live/id-service/internal/config"
	"github.com/weiawesome/wes-io-live/id-service/internal/generator"
	idgrpc "github.com/weiawesome/wes-io-live/id-service/internal/grpc"
	"github.com/weiawesome/wes-io-live/id-service/internal/handler"
	"github.com/weiawesome/wes-io-live/id-service/internal/metrics"
	"github.com/weiawesome/wes-io-live/id-service/internal/middleware"
	"github.com/weiawesome/wes-io-live/id-service/internal/service"
	pkglog "github.com/weiawesome/wes-io-live/pkg/log"
	"github.com/weiawesome/wes-io-live/pkg/objectid"
)

const limiterIdleTTL = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "id-service",
	})
	logger := pkglog.L()

	logger.Info().Msg("starting id-service")

	// Initialize ObjectID generator
	policy, format, err := cfg.ObjectIDOptions()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid objectid config")
	}
	oidCore := newObjectIDCore(policy)
	oidCore.State().EnsureInitialized()
	if seedErr := oidCore.State().SeedErr(); seedErr != nil {
		logger.Warn().Err(seedErr).Msg("entropy unavailable, objectid salt seeded from clock and pid")
	}
	oidGen, err := generator.NewObjectIDGenerator(oidCore, cfg.ObjectID.DefaultType, format)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create objectid generator")
	}
	logger.Info().
		Str(pkglog.FieldPolicy, policy.String()).
		Str(pkglog.FieldIDFormat, format.String()).
		Int(pkglog.FieldIDType, cfg.ObjectID.DefaultType).
		Str("salt", fmt.Sprintf("%08x", oidCore.State().Salt())).
		Msg("objectid generator initialized")

	// Initialize NanoID generator
	nanoidGen, err := generator.NewNanoIDGenerator(cfg.NanoID.Size, cfg.NanoID.Alphabet)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create nanoid generator")
	}
	logger.Info().Int("size", cfg.NanoID.Size).Msg("nanoid generator initialized")

	// Initialize CUID2 generator
	cuid2Gen, err := generator.NewCUID2Generator(cfg.CUID2.Length)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create cuid2 generator")
	}
	logger.Info().Int("length", cfg.CUID2.Length).Msg("cuid2 generator initialized")

	registry := generator.NewRegistry()
	registry.Register(generator.KindObjectID, oidGen)
	registry.Register(generator.KindUUID, generator.NewUUIDGenerator())
	registry.Register(generator.KindULID, generator.NewULIDGenerator())
	registry.Register(generator.KindKSUID, generator.NewKSUIDGenerator())
	registry.Register(generator.KindNanoID, nanoidGen)
	registry.Register(generator.KindCUID2, cuid2Gen)

	// Metrics
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(promReg)

	idService := service.NewIDService(registry, cfg.Batch.Max, m)

	// Start gRPC server
	grpcAddr := fmt.Sprintf("%s:%d", cfg.GRPC.Host, cfg.GRPC.Port)
	grpcServer, err := idgrpc.StartGRPCServer(grpcAddr, idService, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start grpc server")
	}

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(promReg)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := r.Group("")
	if cfg.RateLimit.RPS > 0 {
		limiter := middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, limiterIdleTTL)
		go sweepLimiter(ctx, limiter)
		api.Use(middleware.RateLimit(limiter))
	}
	handler.NewHandler(idService).RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", addr).Int("batch_max", cfg.Batch.Max).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start http server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down id-service")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}
	grpcServer.GracefulStop()
	logger.Info().Msg("id-service stopped")
}

// newObjectIDCore shares the process-wide State, so served ids and request
// ids in the logs draw from one salt and one counter.
func newObjectIDCore(policy objectid.TimestampPolicy) *objectid.Generator {
	return objectid.NewGenerator(
		objectid.WithState(objectid.Default().State()),
		objectid.WithTimestampPolicy(policy),
	)
}

func sweepLimiter(ctx context.Context, limiter *middleware.IPRateLimiter) {
	ticker := time.NewTicker(limiterIdleTTL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := limiter.Cleanup(); n > 0 {
				l := pkglog.L()
				l.Debug().Int("evicted", n).Msg("rate limiter swept")
			}
		}
	}
}
