package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/omnistock-hub/internal/application/auth"
	"github.com/jhoicas/omnistock-hub/internal/application/session"
	"github.com/jhoicas/omnistock-hub/internal/application/tracking"
	"github.com/jhoicas/omnistock-hub/internal/application/usecase"
	infraai "github.com/jhoicas/omnistock-hub/internal/infrastructure/ai"
	"github.com/jhoicas/omnistock-hub/internal/infrastructure/backend"
	"github.com/jhoicas/omnistock-hub/internal/infrastructure/export"
	httpRouter "github.com/jhoicas/omnistock-hub/internal/interfaces/http"
	"github.com/jhoicas/omnistock-hub/pkg/config"
	"github.com/jhoicas/omnistock-hub/pkg/logger"
	"github.com/jhoicas/omnistock-hub/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	// Adaptadores de infraestructura
	remote := backend.NewClient(cfg.Backend.BaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second, log)
	gemini := infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, log)
	sheets := export.NewSheetBuilder()
	reports := export.NewPDFReport()

	// Estado por sesión y métricas de operación
	sessions := session.NewRegistry()
	trackerMetrics := metrics.NewTrackerMetrics(prometheus.DefaultRegisterer)

	// Casos de uso
	trackerUC := tracking.NewCoordinator(remote, remote, gemini, sheets, reports, trackerMetrics, log)
	authUC := auth.NewUseCase(remote, trackerUC, sessions, auth.Config{
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		JWTExpMinutes: cfg.JWT.Expiration,
	}, log)
	productUC := usecase.NewProductUseCase(remote, log)
	categoryUC := usecase.NewCategoryUseCase(remote, log)
	userUC := usecase.NewUserUseCase(remote, log)
	dashboardUC := usecase.NewDashboardUseCase(remote, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // sync y scan esperan al remote store
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "OmniStock Hub API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		TrackerUC:   trackerUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		UserUC:      userUC,
		DashboardUC: dashboardUC,
		Sessions:    sessions,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
