package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tabsplit/tabsplit-backend/config"
	"github.com/tabsplit/tabsplit-backend/db"
	"github.com/tabsplit/tabsplit-backend/handlers"
	"github.com/tabsplit/tabsplit-backend/internal/store/postgres"
	"github.com/tabsplit/tabsplit-backend/logger"
	billservice "github.com/tabsplit/tabsplit-backend/models/bill/service"
	userservice "github.com/tabsplit/tabsplit-backend/models/user/service"
	"github.com/tabsplit/tabsplit-backend/router"
	"github.com/tabsplit/tabsplit-backend/services"
)

// @title TabSplit API
// @version 1.0
// @description Bill splitting backend: users, itemized bills, and derived settlements.
// @BasePath /v1
func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Database pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Apply pending migrations before serving traffic
	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Stores
	userStore := postgres.NewUserStore(pool)
	billStore := postgres.NewBillStore(pool)
	settlementStore := postgres.NewSettlementStore(pool)

	// Services
	userService := userservice.NewUserService(userStore)
	billService := billservice.NewBillService(billStore)
	settlementService := billservice.NewSettlementService(settlementStore, userStore)
	healthService := services.NewHealthService(pool, cfg.Server.Version)

	// Handlers
	deps := router.Dependencies{
		Config:            cfg,
		BillHandler:       handlers.NewBillHandler(billService),
		UserHandler:       handlers.NewUserHandler(userService),
		SettlementHandler: handlers.NewSettlementHandler(settlementService),
		HealthHandler:     handlers.NewHealthHandler(healthService),
		Logger:            log,
	}

	r := router.SetupRouter(deps)

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
