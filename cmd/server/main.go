package main

import (
	"context"
	"log"

	"github.com/0xSujith18/Talkit/internal/router"
	"github.com/0xSujith18/Talkit/pkg/config"
	"github.com/0xSujith18/Talkit/pkg/firebase"
	"github.com/0xSujith18/Talkit/pkg/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes, dependencies, and background workers
	workers := router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseApp.AuthClient)
	defer workers.Stop()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
