package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/castor/internal/config"
	"github.com/MrJamesThe3rd/castor/internal/database"
	castorHttp "github.com/MrJamesThe3rd/castor/internal/http"
	projectionHandler "github.com/MrJamesThe3rd/castor/internal/http/projection"
	scenarioHandler "github.com/MrJamesThe3rd/castor/internal/http/scenario"
	"github.com/MrJamesThe3rd/castor/internal/scenario"
	scenarioStore "github.com/MrJamesThe3rd/castor/internal/scenario/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	scenarioService := scenario.NewService(scenarioStore.New(db))

	var (
		scenarioH   = scenarioHandler.NewHandler(scenarioService, cfg.Server.MaxUploadBytes)
		projectionH = projectionHandler.NewHandler(cfg.Server.MaxUploadBytes)
	)

	router := castorHttp.New(scenarioH, projectionH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
