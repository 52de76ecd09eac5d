package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/factora/auth-service/internal/auth"
	"github.com/factora/auth-service/internal/config"
	"github.com/factora/auth-service/internal/database"
	"github.com/factora/auth-service/internal/handler"
	"github.com/factora/auth-service/internal/queue"
	"github.com/factora/auth-service/internal/repository"
	"github.com/factora/auth-service/internal/router"
)

func main() {
	// Load .env when present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	users := repository.NewUserRepo(db)
	companies := repository.NewCompanyRepo(db)
	svc := auth.NewService(users, companies, auth.Config{
		JWTSecret:      cfg.JWTSecret,
		AccessTTLMin:   cfg.AccessTTLMin,
		RefreshTTLDays: cfg.RefreshTTLDays,
	})

	// Redis is optional: a nil client disables rate limiting rather than
	// blocking authentication.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}

	// Audit consumer runs for the lifetime of the process and reconnects
	// on its own.
	go queue.StartAuditConsumer()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(svc), cfg.JWTSecret, config.LoadRateLimitConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
