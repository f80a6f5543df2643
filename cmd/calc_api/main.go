// Package main Shunting Yard Calculator API
// @title Shunting Yard Calculator API
// @version 1.0
// @description Tokenizes, converts and evaluates integer arithmetic expressions
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	_ "github.com/sdsdsdw/shunting-yard-algo/docs"
	"github.com/sdsdsdw/shunting-yard-algo/internal/api/router"
	"github.com/sdsdsdw/shunting-yard-algo/internal/api/server"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage/factory"
	pkgserver "github.com/sdsdsdw/shunting-yard-algo/pkg/server"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	healthChecker := pkgserver.NewCompositeHealthChecker()

	s := server.New(sCfg, healthChecker).
		SetupMiddlewares().
		SetupErrorHandler().
		SetupHealthChecks("/health").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Shunting Yard Calculator API is running")
	})

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
		return
	}

	backend, err := factory.NewBackend(s.Context(), cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create history store", "error", err)
		os.Exit(1)
		return
	}
	healthChecker.Register(backend.Health)
	slog.Info("History store ready", "type", cfg.StorageConfig.Type)

	calcRouter := router.NewCalcRouter(s.Echo, backend.Store,
		router.WithMaxExpressionLength(sCfg.MaxExpressionLength))
	calcRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	err = s.Start()
	backend.Close()
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
