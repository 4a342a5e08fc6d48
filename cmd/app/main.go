package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"papertrade/configs"
	"papertrade/internal/adapter/telegram"
	"papertrade/internal/database"
	delivery "papertrade/internal/delivery/http"
	"papertrade/internal/domain"
	"papertrade/internal/infra"
	"papertrade/internal/repository"
	"papertrade/internal/service"
	"papertrade/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	// Initialize context
	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis (optional; presence degrades gracefully without it)
	rdb := infra.NewRedis(ctx, cfg.Redis.URL)
	if rdb != nil {
		defer rdb.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	stockRepo := repository.NewStockRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	competitionRepo := repository.NewCompetitionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Ensure a bootstrap admin account exists
	ensureDefaultAdmin(ctx, userRepo, cfg.Trading.DefaultCash)

	// Initialize Telegram notifications
	notifier := telegram.NewNotificationService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	// Initialize services
	presenceService := service.NewPresenceService(rdb, userRepo)
	statusService := service.NewStatusService(userRepo, auditRepo, notifier)
	bulkService := service.NewBulkService(statusService)
	directoryService := service.NewDirectoryService(userRepo)
	statsService := service.NewStatsService(userRepo, tradeRepo, presenceService)
	reportService := service.NewReportService(reportRepo, statsService)
	tickerService := service.NewPriceTickerService(
		stockRepo,
		holdingRepo,
		userRepo,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	tradingService := usecase.NewTradingService(userRepo, stockRepo, holdingRepo, tradeRepo)

	// Initialize scheduler
	scheduler := infra.NewScheduler(tickerService, presenceService, reportService)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize HTTP handlers
	authHandler := delivery.NewAuthHandler(userRepo, presenceService, notifier, cfg.Trading.DefaultCash)
	userHandler := delivery.NewUserHandler(userRepo, stockRepo, tradingService, presenceService)
	adminHandler := delivery.NewAdminHandler(directoryService, statusService, bulkService, statsService)
	contentHandler := delivery.NewAdminContentHandler(stockRepo, competitionRepo, reportService, auditRepo)

	// Initialize echo server
	e := echo.New()
	e.HideBanner = true
	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:    authHandler,
		UserHandler:    userHandler,
		AdminHandler:   adminHandler,
		ContentHandler: contentHandler,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("PaperTrade API starting on %s", addr)
	log.Printf("Environment: %s", cfg.Server.Env)
	log.Printf("Default cash balance: $%.2f", cfg.Trading.DefaultCash)

	// Run server in goroutine
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}

// ensureDefaultAdmin creates the bootstrap admin account on first run.
// Credentials come from ADMIN_USERNAME / ADMIN_PASSWORD, defaulting to
// admin / admin123 for local development.
func ensureDefaultAdmin(ctx context.Context, userRepo domain.UserRepository, defaultCash float64) {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	if existing, err := userRepo.GetByUsername(ctx, username); err == nil {
		log.Printf("[OK] Using existing admin account: %s", existing.ID)
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("WARNING: Failed to hash admin password: %v", err)
		return
	}

	now := time.Now()
	admin := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		DisplayName:  "Administrator",
		Email:        username + "@papertrade.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
		Approved:     true,
		CashBalance:  defaultCash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		log.Printf("WARNING: Failed to create admin account: %v", err)
		return
	}

	log.Printf("[OK] Created admin account %q", username)
}
