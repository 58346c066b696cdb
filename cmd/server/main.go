package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"congregate/internal/config"
	"congregate/internal/export"
	"congregate/internal/handler"
	"congregate/internal/repository/postgres"
	"congregate/internal/service"
	"congregate/internal/session"
	"congregate/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logOut = io.MultiWriter(os.Stdout, f)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Session manager
	sessions, err := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	// Database
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	logger.Info("database connected")

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	accountRepo := postgres.NewAccountRepository(repoConfig)
	memberRepo := postgres.NewMemberRepository(repoConfig)
	folderRepo := postgres.NewFolderRepository(repoConfig)
	documentRepo := postgres.NewDocumentRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// File stores
	photoStore, err := storage.NewDirStore(cfg.PhotoDir)
	if err != nil {
		log.Fatalf("Failed to create photo store: %v", err)
	}
	documentStore, err := storage.NewDirStore(cfg.DocumentDir)
	if err != nil {
		log.Fatalf("Failed to create document store: %v", err)
	}

	// Export column registry
	exportRegistry, err := export.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load export registry: %v", err)
	}

	// Services
	authService := service.NewAuthService(accountRepo, logger)
	memberService := service.NewMemberService(memberRepo, photoStore, logger)
	folderService := service.NewFolderService(folderRepo, documentRepo, txManager, logger)
	documentService := service.NewDocumentService(documentRepo, folderRepo, documentStore, logger)

	logger.Info("services initialized")

	// Handlers
	secureCookies := cfg.Environment == "prod"
	authHandler := handler.NewAuthHandler(authService, sessions, secureCookies, logger)
	memberHandler := handler.NewMemberHandler(memberService, exportRegistry, logger)
	folderHandler := handler.NewFolderHandler(folderService, logger)
	documentHandler := handler.NewDocumentHandler(documentService, logger)
	filesHandler := handler.NewFilesHandler(photoStore, documentStore)

	router := handler.NewRouter(
		authHandler,
		memberHandler,
		folderHandler,
		documentHandler,
		filesHandler,
		authService,
		sessions,
		logger,
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}
}
