package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/linkigram/backend/internal/auth"
	"github.com/linkigram/backend/internal/repositories"
	"github.com/linkigram/backend/internal/router"
	"github.com/linkigram/backend/internal/scheduler"
	"github.com/linkigram/backend/pkg/config"
	"github.com/linkigram/backend/pkg/validators"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	// Session token service
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// Publication scheduler; started only after SetupRoutes has
	// migrated the schema, since reconciliation reads the posts table.
	postRepo := repositories.NewPostgresPostRepository(db.Postgres)
	sched := scheduler.New(postRepo)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, tokens, sched)

	// Reconcile pending publications left over from a previous run
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start publication scheduler: %v", err)
	}
	defer sched.Stop()

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
