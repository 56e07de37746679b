package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/omnistock-hub/internal/application/auth"
	"github.com/jhoicas/omnistock-hub/internal/application/session"
	"github.com/jhoicas/omnistock-hub/internal/application/tracking"
	"github.com/jhoicas/omnistock-hub/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	TrackerUC   *tracking.Coordinator
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	UserUC      *usecase.UserUseCase
	DashboardUC *usecase.DashboardUseCase
	Sessions    *session.Registry
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login es público; logout y me requieren sesión)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token + sesión viva)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Sessions))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Tracker (cualquier rol registra conteos)
	tracker := protected.Group("/tracker")
	trackerHandler := NewTrackerHandler(deps.TrackerUC)
	tracker.Get("/grid", trackerHandler.Grid)
	tracker.Put("/entries", trackerHandler.UpsertEntry)
	tracker.Post("/sync", trackerHandler.Sync)
	tracker.Post("/scan", trackerHandler.Scan)
	tracker.Get("/export/sheet", trackerHandler.ExportSheet)
	tracker.Get("/export/pdf", trackerHandler.ExportPDF)

	// Catálogo (leer: cualquier rol; mutar: solo ADMIN)
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", RequireAdmin(), productHandler.Create)
	products.Put("/:id", RequireAdmin(), productHandler.Update)
	products.Delete("/:id", RequireAdmin(), productHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", RequireAdmin(), categoryHandler.Create)
	categories.Delete("/:id", RequireAdmin(), categoryHandler.Delete)

	// Cuentas (todo el grupo es solo ADMIN)
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireAdmin())
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Fetch)
}
