package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/catalog"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/config"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/database"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/handler"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/logging"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/middleware"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/repository"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/router"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	cat, err := catalog.Load(cfg.Booking.EquipmentFile)
	if err != nil {
		log.Fatalf("load equipment catalog: %v", err)
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	}

	engine := booking.NewEngine(engineOptions(cfg, logger, rdb, repository.NewReservationStore(db, cfg.Booking.Location), cat))

	cacheCfg := config.LoadCacheConfig()
	var onCatalogChange func(ctx context.Context) error
	if rdb != nil {
		onCatalogChange = func(ctx context.Context) error {
			return middleware.InvalidateCache(ctx, rdb, cacheCfg.Prefix)
		}
	}

	users := repository.NewUserRepo(db)
	reservations := handler.NewReservationHandler(engine, cat)
	optional := map[string]handler.Check{}
	if rdb != nil {
		optional["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestLogger(logger))
	router.Register(e, router.Deps{
		JWTSecret:     cfg.JWTSecret,
		Auth:          handler.NewAuthHandler(cfg, users, repository.NewTokenRepo(db)),
		Reservations:  reservations,
		Admin:         handler.NewAdminHandler(reservations, users, onCatalogChange),
		Announcements: handler.NewAnnouncementHandler(repository.NewAnnouncementBoard(rdb, cfg.Booking.AnnouncementKey)),
		Ready:         handler.Ready(map[string]handler.Check{"mysql": db.PingContext}, optional),
		RateLimit:     middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Cache:         middleware.NewRedisCache(cacheCfg, rdb),
	})

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", "addr", addr, "env", cfg.Env, "timezone", cfg.Booking.Location.String())
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}

// engineOptions picks Redis-backed counters and locks when Redis is up and
// in-process ones otherwise.
func engineOptions(cfg config.Config, logger *slog.Logger, rdb *redis.Client, store booking.Store, cat booking.Catalog) booking.Options {
	b := cfg.Booking
	opts := booking.Options{
		Store:          store,
		Catalog:        cat,
		Policy:         b.Policy,
		Location:       b.Location,
		Logger:         logger,
		ReadAttempts:   b.ReadAttempts,
		ReadRetryDelay: b.ReadRetryDelay,
		Counter:        booking.NewMemoryCounter(b.UsageThreshold),
	}
	if rdb != nil {
		opts.Counter = repository.NewUsageCounter(rdb, b.UsagePrefix, b.UsageThreshold)
		if b.DistributedLock {
			opts.Locker = repository.NewRedisLocker(rdb, b.LockTTL, b.LockWait)
		}
	} else if b.DistributedLock {
		logger.Warn("distributed lock requested without redis, using in-process lock")
	}
	if cfg.AMQPURL != "" {
		opts.Publisher = service.NewEventPublisher(cfg.AMQPURL, logger)
	}
	return opts
}

// requestLogger logs one line per request and hands handlers a logger
// carrying the request id.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logValues := echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	})
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withLogger := func(c echo.Context) error {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ctx := logging.ContextWithLogger(c.Request().Context(), logger.With("request_id", rid))
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
		return logValues(withLogger)
	}
}
