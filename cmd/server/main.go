package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"memeforge.backend/internal/config"
	"memeforge.backend/internal/infrastructure/blockchain"
	"memeforge.backend/internal/infrastructure/jobs"
	"memeforge.backend/internal/infrastructure/models"
	"memeforge.backend/internal/infrastructure/pricefeed"
	"memeforge.backend/internal/infrastructure/repositories"
	"memeforge.backend/internal/interfaces/http/handlers"
	"memeforge.backend/internal/interfaces/http/middleware"
	"memeforge.backend/internal/usecases"
	"memeforge.backend/pkg/jwt"
	"memeforge.backend/pkg/logger"
	"memeforge.backend/pkg/metrics"
	"memeforge.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	migrateDB = runMigrations
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Register Prometheus collectors
	metrics.MustRegister()

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		if err := migrateDB(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	domainRepo := repositories.NewDomainRepository(db)

	// Initialize chain and price clients
	chainClient := blockchain.NewSolanaClient(cfg.Solana)
	priceClient := pricefeed.NewClient(cfg.PriceFeed, redis.GetClient())

	// Initialize usecases
	walletAuthUsecase := usecases.NewWalletAuthUseCase(userRepo, jwtService)
	verifyPaymentUsecase := usecases.NewVerifyPaymentUseCase(paymentRepo, chainClient, cfg.Solana)
	paymentUsecase := usecases.NewPaymentUseCase(paymentRepo)
	projectUsecase := usecases.NewProjectUseCase(projectRepo, paymentRepo)
	domainUsecase := usecases.NewDomainUseCase(domainRepo, projectRepo, paymentRepo, net.DefaultResolver, cfg.Domains)
	siteUsecase := usecases.NewSiteUseCase(projectUsecase, redis.GetClient(), cfg.Render)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(walletAuthUsecase)
	paymentHandler := handlers.NewPaymentHandler(verifyPaymentUsecase, paymentUsecase)
	projectHandler := handlers.NewProjectHandler(projectUsecase, siteUsecase)
	domainHandler := handlers.NewDomainHandler(domainUsecase)
	priceHandler := handlers.NewPriceHandler(priceClient)
	siteHandler := handlers.NewSiteHandler(siteUsecase)

	// Create auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recheckJob := jobs.NewDomainRecheckJob(domainUsecase, cfg.Domains.RecheckInterval)
	go recheckJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		paymentHandler: paymentHandler,
		projectHandler: projectHandler,
		domainHandler:  domainHandler,
		priceHandler:   priceHandler,
		siteHandler:    siteHandler,
		authMiddleware: authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		recheckJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 MemeForge Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// runMigrations applies the schema plus the partial unique index that backs
// transaction replay protection. AutoMigrate cannot express a partial index,
// so it is created with raw SQL.
func runMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Payment{},
		&models.Project{},
		&models.CustomDomain{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_payments_confirmed_signature
		 ON payments (transaction_signature) WHERE status = 'CONFIRMED'`,
	).Error; err != nil {
		return fmt.Errorf("failed to create confirmed signature index: %w", err)
	}
	return nil
}
