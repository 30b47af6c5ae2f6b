package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/backoffice-umkm/docs"
	"github.com/jhoicas/backoffice-umkm/internal/application/resource"
	"github.com/jhoicas/backoffice-umkm/internal/application/sandbox"
	"github.com/jhoicas/backoffice-umkm/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Records *sandbox.RecordService
	Auth    *sandbox.AuthService
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.Auth)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Auth))
	protected.Post("/logout", authHandler.Logout)
	protected.Get("/dashboard-counts", NewDashboardHandler(deps.Records).Counts)

	// Un grupo por recurso; PATCH y PUT llegan al mismo handler.
	for _, desc := range resource.All() {
		h := NewRecordHandler(deps.Records, desc)
		g := protected.Group("/" + desc.Path)
		g.Get("/", h.List)
		g.Post("/", h.Create)
		g.Get("/:id", h.GetByID)
		g.Patch("/:id", h.Update)
		g.Put("/:id", h.Update)
		g.Delete("/:id", h.Delete)
	}
}

// AppConfig parámetros del servidor del sandbox.
type AppConfig struct {
	Name        string
	SwaggerFile string // si existe se sirve Swagger UI en /docs
}

// NewApp construye la aplicación Fiber completa: middlewares, /health, swagger y rutas.
func NewApp(cfg AppConfig, deps RouterDeps, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 10,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(requestLogger(log.Named("http")))

	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			// Swagger UI en local: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Back Office Sandbox API",
			}))
		} else {
			log.Warn().Str("file", cfg.SwaggerFile).Msg("archivo swagger no encontrado; /docs deshabilitado")
		}
	}

	// Documento OpenAPI registrado con swag (paquete docs).
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "documento no registrado"})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// requestLogger una línea por petición con el request id.
func requestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
		log.Debug().
			Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("petición")
		return err
	}
}
