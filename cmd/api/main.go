package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/acolin/asso-ledger/internal/blobstore"
	"github.com/acolin/asso-ledger/internal/classifier"
	"github.com/acolin/asso-ledger/internal/config"
	"github.com/acolin/asso-ledger/internal/handlers"
	"github.com/acolin/asso-ledger/internal/ratelimit"
	"github.com/acolin/asso-ledger/internal/repository"
	"github.com/acolin/asso-ledger/internal/services"
	"github.com/acolin/asso-ledger/pkg/logger"
	"github.com/acolin/asso-ledger/pkg/pg"
	"github.com/acolin/asso-ledger/pkg/prom"
	"github.com/acolin/asso-ledger/pkg/redis"
	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}
	cfg := config.Get()

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.TimeoutMiddleware(time.Second * 10))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     cfg.PostgresReadUser,
		Host:     cfg.PostgresReadHost,
		Port:     cfg.PostgresReadPort,
		Password: cfg.PostgresReadPassword,
		Database: cfg.PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     cfg.PostgresWriteUser,
		Host:     cfg.PostgresWriteHost,
		Port:     cfg.PostgresWritePort,
		Password: cfg.PostgresWritePassword,
		Database: cfg.PostgresWriteDatabase,
	}

	db, err := pg.CreateReadWrite(readConf, writeConf, cfg.AppEnv == "dev")
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewAdapter("default", cfg.RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{cfg.RedisAddr},
		ClientName: "default",
		DB:         cfg.RedisDatabase,
		Username:   cfg.RedisUsername,
		Password:   cfg.RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	if cfg.AppDebugMetricsAddr != "" {
		if err := prom.Create(cfg.AppName, cfg.AppEnv, cfg.PromNamespace); err != nil {
			logger.Error("failed registering metrics", "error", err)
			return
		}
		go prom.ListenAndServer(cfg.AppDebugMetricsAddr, cfg.AppDebugMetricsURI)
	}

	store, err := blobstore.NewLocal(cfg.BlobDir, cfg.BlobSecret, cfg.BlobURLTTL, cfg.BlobBaseURL)
	if err != nil {
		logger.Error("failed opening blob store", "error", err)
		return
	}

	entryRepo := repository.NewEntryRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// services
	entryService := services.NewEntryService(entryRepo, artistRepo, projectRepo, classifier.New())
	transferService := services.NewTransferService(transferRepo, entryRepo, artistRepo, projectRepo)
	artistService := services.NewArtistService(artistRepo, entryRepo)
	projectService := services.NewProjectService(projectRepo, entryRepo)
	authService := services.NewAuthService(profileRepo, inviteRepo, cfg.JWTSecret, cfg.SessionTTL, cfg.InviteTTL, cfg.BcryptCost)
	reportService := services.NewReportService(entryRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo, entryRepo, store, int64(cfg.MaxInvoiceMiB)<<20)
	healthService := services.NewHealthService(db, redisAdap)

	limiter := ratelimit.New(redisAdap, cfg.RateLimitWindow, int64(cfg.RateLimitMaxWrite))

	// v1 handlers
	entryHandler := handlers.NewEntryHandler(entryService)
	transferHandler := handlers.NewTransferHandler(transferService)
	referenceHandler := handlers.NewReferenceHandler(artistService, projectService)
	authHandler := handlers.NewAuthHandler(authService)
	reportHandler := handlers.NewReportHandler(reportService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterAuthRoutes(g, authHandler, limiter)
	handlers.RegisterEntryRoutes(g, entryHandler, authService, limiter)
	handlers.RegisterTransferRoutes(g, transferHandler, authService, limiter)
	handlers.RegisterReferenceRoutes(g, referenceHandler, authService, limiter)
	handlers.RegisterInvoiceRoutes(g, invoiceHandler, authService, limiter)
	handlers.RegisterReportRoutes(g, reportHandler, authService)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("ledger api listening", "addr", cfg.HttpListenAddr, "version", version, "commit", commit, "built", date)
		if err := s.ListenAndServe(cfg.HttpListenAddr); err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
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
