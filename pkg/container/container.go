package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ITGlobers/return-app-pmi-poc/internal/clients/catalog"
	"github.com/ITGlobers/return-app-pmi-poc/internal/clients/mail"
	"github.com/ITGlobers/return-app-pmi-poc/internal/clients/oms"
	"github.com/ITGlobers/return-app-pmi-poc/internal/config"
	infraCache "github.com/ITGlobers/return-app-pmi-poc/internal/infrastructure/cache"
	"github.com/ITGlobers/return-app-pmi-poc/internal/infrastructure/database"

	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/orderhistory"
	rrHandler "github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/handler"
	rrRepo "github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/repository"
	rrService "github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/service"
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/settings"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application and is the root of
// the dependency graph. Everything in here is a singleton.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB
	Redis  *infraCache.RedisCache

	// Upstream clients
	OrderClient   oms.OrderClient
	CatalogClient catalog.CatalogClient
	MailClient    mail.MailClient

	// Repositories
	ReturnRequestRepo rrRepo.Repository
	SettingsRepo      settings.Repository

	// Services
	SettingsService      settings.Service
	OrderHistory         orderhistory.Aggregator
	ReturnRequestService rrService.ReturnRequestService

	// Handlers
	ReturnRequestHandler *rrHandler.ReturnRequestHandler
	SettingsHandler      *settings.Handler
}

// NewContainer builds and initializes the whole dependency graph.
//
// Initialization order matters:
// 1. Config (depends on nothing)
// 2. Infrastructure (DB, Redis) - depends on Config
// 3. Clients and repositories - depend on infrastructure
// 4. Services - depend on clients and repositories
// 5. Handlers - depend on services
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE REDIS
	// ========================================
	// Redis carries the settings cache and the durable sequence counter.
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Redis = redisCache
	log.Println("✅ Redis connected")

	// ========================================
	// STEP 4: UPSTREAM CLIENTS
	// ========================================
	c.OrderClient = oms.NewClient(&cfg.OMS)
	c.CatalogClient = catalog.NewClient(&cfg.Catalog)
	c.MailClient = mail.NewClient(&cfg.Mail)

	// ========================================
	// STEP 5: REPOSITORIES
	// ========================================
	c.ReturnRequestRepo = rrRepo.NewPostgresRepository(db.Pool)
	c.SettingsRepo = settings.NewPostgresRepository(db.Pool)

	// ========================================
	// STEP 6: SERVICES
	// ========================================
	c.SettingsService = settings.NewService(c.SettingsRepo, redisCache)
	c.OrderHistory = orderhistory.NewAggregator(c.OrderClient)
	c.ReturnRequestService = rrService.NewReturnRequestService(
		c.ReturnRequestRepo,
		c.SettingsService,
		c.OrderHistory,
		c.OrderClient,
		c.CatalogClient,
		c.MailClient,
		rrService.NewSequenceGenerator(redisCache),
	)

	// ========================================
	// STEP 7: HANDLERS
	// ========================================
	c.ReturnRequestHandler = rrHandler.NewReturnRequestHandler(c.ReturnRequestService)
	c.SettingsHandler = settings.NewHandler(c.SettingsService)

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
