package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/Erkhan01/football-league/config"
	"github.com/Erkhan01/football-league/db"
	"github.com/Erkhan01/football-league/fixtures"
	"github.com/Erkhan01/football-league/handlers"
	"github.com/Erkhan01/football-league/live"
	"github.com/Erkhan01/football-league/repositories"
	"github.com/Erkhan01/football-league/routes"
	"github.com/Erkhan01/football-league/services"
	"github.com/Erkhan01/football-league/storage"
)

// Интервал планировщика автозавершения турниров.
const schedulerInterval = 30 * time.Second

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Хранилище эмблем (Cloudflare R2). Опционально: без настроек R2
	// сервис работает, загрузка эмблем возвращает 503.
	var crestUploader storage.FileUploader
	if cfg.R2AccountID != "" {
		crestUploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("R2 storage not configured, crest uploads disabled")
	}

	// WebSocket Hub живой ленты матчей
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	// Репозитории
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	updateRepo := repositories.NewPostgresMatchUpdateRepository(dbConn)
	matchStatsRepo := repositories.NewPostgresMatchStatsRepository(dbConn)
	playerStatsRepo := repositories.NewPostgresPlayerStatsRepository(dbConn)
	performanceRepo := repositories.NewPostgresPerformanceRepository(dbConn)
	txRunner := repositories.NewTxRunner(dbConn)
	logger.Info("repositories initialized")

	// Сервисы
	tournamentService := services.NewTournamentService(tournamentRepo, matchRepo, logger)
	teamService := services.NewTeamService(teamRepo, tournamentRepo, crestUploader, logger)
	playerService := services.NewPlayerService(playerRepo, playerStatsRepo, teamRepo)
	fixtureService := services.NewFixtureService(
		tournamentRepo,
		teamRepo,
		matchRepo,
		fixtures.NewRoundRobinGenerator(),
		txRunner,
		logger,
	)
	standingsService := services.NewStandingsService(tournamentRepo, teamRepo, matchRepo)
	suspensionService := services.NewSuspensionService(playerRepo, playerStatsRepo, performanceRepo, matchRepo, logger)
	liveService := services.NewLiveMatchService(
		matchRepo,
		matchStatsRepo,
		updateRepo,
		teamRepo,
		playerRepo,
		performanceRepo,
		suspensionService,
		txRunner,
		wsHub,
		services.NewRand(),
		logger,
	)
	logger.Info("services initialized")

	// Планировщик автозавершения турниров с истёкшей датой окончания
	go func() {
		ticker := time.NewTicker(schedulerInterval)
		defer ticker.Stop()
		logger.Info("tournament auto-completion scheduler started", slog.Duration("interval", schedulerInterval))

		if err := tournamentService.AutoCompleteFinishedTournaments(context.Background()); err != nil {
			logger.Error("scheduler: initial run failed", slog.Any("error", err))
		}

		for range ticker.C {
			if err := tournamentService.AutoCompleteFinishedTournaments(context.Background()); err != nil {
				logger.Error("scheduler: periodic run failed", slog.Any("error", err))
			}
		}
	}()

	// HTTP-обработчики и маршруты
	router := routes.SetupRoutes(routes.Handlers{
		Tournament: handlers.NewTournamentHandler(tournamentService, fixtureService, standingsService),
		Team:       handlers.NewTeamHandler(teamService, standingsService),
		Player:     handlers.NewPlayerHandler(playerService, standingsService),
		Live:       handlers.NewLiveMatchHandler(liveService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, liveService, logger),
	})
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shut down gracefully")
	}
}
