package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/tournament-bracket/brackets"
	"github.com/Dosada05/tournament-bracket/config"
	"github.com/Dosada05/tournament-bracket/data"
	"github.com/Dosada05/tournament-bracket/db"
	"github.com/Dosada05/tournament-bracket/handlers"
	"github.com/Dosada05/tournament-bracket/models"
	"github.com/Dosada05/tournament-bracket/repositories"
	"github.com/Dosada05/tournament-bracket/routes"
	"github.com/Dosada05/tournament-bracket/services"
	"github.com/Dosada05/tournament-bracket/storage"
	"github.com/go-chi/chi/v5"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.Bool("database", cfg.DatabaseURL != ""),
		slog.Bool("export", cfg.R2Enabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fields, err := loadTournaments(cfg.RosterFile)
	if err != nil {
		return err
	}

	var (
		rosterRepo  repositories.RosterRepository
		bracketRepo repositories.BracketRepository
	)
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer closeDB(logger, dbConn)
		logger.Info("database connection established")

		if err := db.Migrate(ctx, dbConn); err != nil {
			return err
		}

		rosterRepo = repositories.NewPostgresRosterRepository(dbConn)
		bracketRepo = repositories.NewPostgresBracketRepository(dbConn)
		for _, t := range fields {
			err := rosterRepo.Import(ctx, t)
			switch {
			case err == nil:
				logger.Info("tournament roster imported", slog.String("tournament_id", t.ID))
			case errors.Is(err, repositories.ErrRosterConflict):
				logger.Info("tournament roster already stored", slog.String("tournament_id", t.ID))
			default:
				return fmt.Errorf("failed to import roster %q: %w", t.ID, err)
			}
		}
	} else {
		rosterRepo = repositories.NewMemoryRosterRepository(fields...)
		bracketRepo = repositories.NewMemoryBracketRepository()
		logger.Warn("DATABASE_URL is not set, brackets are kept in memory")
	}

	rosterService := services.NewRosterService(rosterRepo)
	if err := rosterService.VerifyAll(ctx); err != nil {
		return fmt.Errorf("roster verification failed: %w", err)
	}
	logger.Info("tournament rosters verified", slog.Int("count", len(fields)))

	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)

	bracketService := services.NewBracketService(
		rosterService,
		bracketRepo,
		brackets.NewSingleEliminationGenerator(),
		uploader,
		wsHub,
		logger,
	)

	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Tournament: handlers.NewTournamentHandler(rosterService),
		Bracket:    handlers.NewBracketHandler(bracketService),
		WebSocket:  handlers.NewWebSocketHandler(wsHub, bracketService, cfg.AllowedOrigins, logger),
	}, routes.Options{
		JWTSecret:      []byte(cfg.JWTSecretKey),
		AllowedOrigins: cfg.AllowedOrigins,
	})

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

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
	if err := server.Shutdown(shutdownCtx); err != nil {
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("failed to force close server", slog.Any("error", closeErr))
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server shutdown complete")
	return nil
}

// loadTournaments returns the bundled fields plus the optional roster file.
func loadTournaments(rosterFile string) ([]*models.Tournament, error) {
	fields, err := data.Tournaments()
	if err != nil {
		return nil, err
	}
	if rosterFile == "" {
		return fields, nil
	}

	extra, err := data.LoadFile(rosterFile)
	if err != nil {
		return nil, err
	}
	for _, t := range fields {
		if t.ID == extra.ID {
			return nil, fmt.Errorf("roster file %s: tournament %q is already bundled", rosterFile, extra.ID)
		}
	}
	return append(fields, extra), nil
}

func closeDB(logger *slog.Logger, dbConn *sql.DB) {
	if err := dbConn.Close(); err != nil {
		logger.Error("failed to close database connection", slog.Any("error", err))
		return
	}
	logger.Info("database connection closed")
}
