package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/inputguard/pkg/clientip"
	"github.com/dmitrymomot/inputguard/pkg/config"
	"github.com/dmitrymomot/inputguard/pkg/httpserver"
	"github.com/dmitrymomot/inputguard/pkg/logger"
	"github.com/dmitrymomot/inputguard/pkg/requestid"
	"github.com/dmitrymomot/inputguard/pkg/sanitizer"
	"github.com/dmitrymomot/inputguard/pkg/scrubber"
	"github.com/dmitrymomot/inputguard/pkg/telemetry"
)

const serviceName = "inputguard"

type appConfig struct {
	Env           string        `env:"APP_ENV" envDefault:"development"`
	LogLevel      string        `env:"LOG_LEVEL"`
	StatsInterval time.Duration `env:"CACHE_STATS_INTERVAL" envDefault:"1m"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		appCfg  appConfig
		sanCfg  sanitizer.Config
		scrCfg  scrubber.Config
		httpCfg httpserver.Config
		telCfg  telemetry.Config
	)
	if err := errors.Join(
		config.Load(&appCfg),
		config.Load(&sanCfg),
		config.Load(&scrCfg),
		config.Load(&httpCfg),
		config.Load(&telCfg),
	); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(appCfg.Env, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	if appCfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevel(logger.ParseLevel(appCfg.LogLevel, slog.LevelInfo)))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	tel, err := telemetry.Setup(ctx, telCfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Error("telemetry shutdown failed", logger.Error(err))
		}
	}()

	san := sanitizer.NewFromConfig(sanCfg, sanitizer.WithLogger(log))

	metrics, err := scrubber.NewMetrics(tel.Meter(serviceName), san)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	router := newRouter(routerDeps{
		sanitizer: san,
		scrubber: scrubber.MiddlewareFromConfig(scrCfg, san,
			scrubber.WithLogger(log),
			scrubber.WithMetrics(metrics),
			scrubber.WithTracer(tel.Tracer(serviceName)),
		),
		metricsHandler: tel.MetricsHandler(),
		logger:         log,
	})

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(ctx, otelhttp.NewHandler(router, serviceName,
			otelhttp.WithTracerProvider(tel.TracerProvider()),
			otelhttp.WithMeterProvider(tel.MeterProvider()),
		))
	})
	g.Go(func() error {
		reportCacheStats(ctx, log, san, appCfg.StatsInterval)
		return nil
	})

	return g.Wait()
}

// reportCacheStats logs sanitizer cache counters every interval until ctx is done.
func reportCacheStats(ctx context.Context, log *slog.Logger, s *sanitizer.Sanitizer, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st := s.CacheStats()
			log.DebugContext(ctx, "sanitizer cache stats",
				logger.Component("sanitizer"),
				logger.CacheStats(st.Size, st.MaxSize, st.HitRate),
			)
		}
	}
}
