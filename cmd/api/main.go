package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alicebob/miniredis/v2"
	"github.com/nimasrn/resto-manager/internal/config"
	"github.com/nimasrn/resto-manager/internal/handlers"
	"github.com/nimasrn/resto-manager/internal/notify"
	"github.com/nimasrn/resto-manager/internal/offline"
	"github.com/nimasrn/resto-manager/internal/repository"
	"github.com/nimasrn/resto-manager/internal/services"
	xhttp "github.com/nimasrn/resto-manager/pkg/http"
	"github.com/nimasrn/resto-manager/pkg/logger"
	"github.com/nimasrn/resto-manager/pkg/prom"
	"github.com/nimasrn/resto-manager/pkg/redis"
	"github.com/nimasrn/resto-manager/pkg/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	defer logger.Sync()

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	cfg := config.Get()
	logger.Info("starting resto-manager api", "version", version, "commit", commit, "date", date)

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("invalid timezone", "error", err)
		return
	}

	if cfg.AppDebugMetricsAddr != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, cfg.AppEnv, cfg.PromNamespace); err != nil {
			logger.Error("failed creating metrics", "error", err)
			return
		}
		go prom.ListenAndServer(cfg.AppDebugMetricsAddr, cfg.AppDebugMetricsURI)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := store.New(store.Config{
		DSN:   cfg.StoreDSN,
		Debug: cfg.StoreDebug,
	})
	defer db.Close()
	if err := db.Init(ctx); err != nil {
		logger.Error("failed opening store", "error", err)
		return
	}

	redisAddr := cfg.RedisAddr
	if redisAddr == "" {
		// no redis configured: keep the asset cache in process
		mr, err := miniredis.Run()
		if err != nil {
			logger.Error("failed starting embedded redis", "error", err)
			return
		}
		defer mr.Close()
		redisAddr = mr.Addr()
		logger.Info("using embedded redis for the asset cache", "addr", redisAddr)
	}
	redisAdap, err := redis.NewRedisAdapter("default", cfg.RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{redisAddr},
		ClientName: "default",
		DB:         cfg.RedisDatabase,
		Username:   cfg.RedisUsername,
		Password:   cfg.RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}
	defer redis.CloseRedis("default")

	// repositories
	reservationRepo := repository.NewReservationRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// notifications
	telegram := notify.NewClient(notify.Config{
		APIURL:  cfg.TelegramAPIURL,
		Timeout: cfg.TelegramTimeout,
	}, settingsRepo, notify.DialProbe{
		Addr:    cfg.NetworkProbeAddr,
		Timeout: cfg.NetworkProbeAfter,
	})
	dispatcher := notify.NewDispatcher(telegram, cfg.NotifyWorkers, cfg.NotifyBufferSize, loc)
	go func() {
		if err := dispatcher.Start(); err != nil {
			logger.Info("notification dispatcher stopped", "reason", err)
		}
	}()
	defer dispatcher.Stop()

	// services
	reservationService := services.NewReservationService(reservationRepo, dispatcher)
	expenseService := services.NewExpenseService(expenseRepo, dispatcher)
	settingsService := services.NewSettingsService(settingsRepo, telegram)

	// transport
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.RecoverMiddleware)
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.CORSMiddleware(cfg.HttpCORSOrigin))
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(cfg.HttpRequestTimeout))
	s.Router = xhttp.CreateDefaultRouter()

	g := s.Router.Group("/api/v1")
	handlers.RegisterReservationRoutes(g, handlers.NewReservationHandler(reservationService, loc))
	handlers.RegisterExpenseRoutes(g, handlers.NewExpenseHandler(expenseService))
	handlers.RegisterSettingsRoutes(g, handlers.NewSettingsHandler(settingsService))
	checks := map[string]handlers.HealthCheck{
		"store": db.Ping,
		"redis": redisAdap.Ping,
	}

	if cfg.OfflineEnabled {
		w, assets, err := startOfflineCache(ctx, cfg, redisAdap)
		if err != nil {
			logger.Error("failed starting offline cache", "error", err)
			return
		}
		s.Router.NotFound = assets
		checks["offline"] = w.Check
	}
	handlers.RegisterHealthRoutes(g, handlers.NewHealthHandler(checks))

	go func() {
		if err := s.ListenAndServe(cfg.HttpListenAddr); err != nil {
			logger.Error("error in running http-server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	s.Shutdown()
}

// startOfflineCache installs the asset cache and returns the handler serving
// every non-API request. A failed install is logged and leaves the server in
// pass-through mode; the next start retries it.
func startOfflineCache(ctx context.Context, cfg *config.Config, rdb redis.RedisAdapter) (*offline.Worker, xhttp.RequestHandler, error) {
	fetcher, err := offline.NewUpstreamFetcher(cfg.OfflineOriginURL, cfg.OfflineFetchTimeout)
	if err != nil {
		return nil, nil, err
	}
	w, err := offline.NewWorker(offline.Options{
		CacheName:       cfg.OfflineCacheName,
		OriginURL:       cfg.OfflineOriginURL,
		Manifest:        cfg.Manifest(),
		Fallback:        cfg.OfflineFallback,
		ExcludedSchemes: cfg.ExcludedSchemes(),
	}, offline.NewRedisStorage(rdb), fetcher)
	if err != nil {
		return nil, nil, err
	}
	if err := w.Start(ctx); err != nil {
		logger.Warn("offline cache not installed, serving from network only", "error", err)
	} else {
		logger.Info("offline cache active", "cache", w.CacheName())
	}
	return w, offline.Handler(w, fetcher), nil
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
