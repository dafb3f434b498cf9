package http

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/application/usecase"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
	"github.com/jhoicas/home-inventory/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine     *inventory.ReconciliationEngine
	Query      *inventory.QueryUseCase
	Restock    *inventory.RestockUseCase
	StockIn    *inventory.StockInUseCase
	StockRepo  repository.StockRepository
	ItemUC     *usecase.ItemUseCase
	CategoryUC *usecase.CategoryUseCase
	RoomUC     *usecase.RoomUseCase
	LocationUC *usecase.LocationUseCase

	// JWTSecret vacío = escrituras sin autenticación.
	JWTSecret string
}

// AppConfig opciones de la aplicación Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins string
	SwaggerFile string // se monta en /docs si existe
	Log         zerolog.Logger
}

// NewApp crea la aplicación Fiber con middleware y rutas.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(requestLogger(cfg.Log))

	if cfg.SwaggerFile != "" {
		if _, err := os.Stat(cfg.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.SwaggerFile,
				Path:     "docs",
				Title:    "Home Inventory API",
			}))
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas /v1. Las lecturas son públicas.
func Router(app *fiber.App, deps RouterDeps) {
	v1 := app.Group("/v1")
	admin := protect(deps.JWTSecret, jwt.RoleAdmin)
	scanner := protect(deps.JWTSecret, jwt.RoleAdmin, jwt.RoleScanner)

	// Transacciones
	txn := v1.Group("/transactions")
	txnHandler := NewTransactionHandler(deps.Engine, deps.Query)
	txn.Get("/", txnHandler.List)
	txn.Post("/", with(admin, txnHandler.Create)...)
	txn.Get("/item/:item_id", txnHandler.ListByItem)
	txn.Get("/:id", txnHandler.GetByID)
	txn.Put("/:id", with(admin, txnHandler.Update)...)
	txn.Delete("/:id", with(admin, txnHandler.Delete)...)

	// Inventario (restock antes de :item_id)
	inv := v1.Group("/inventory")
	invHandler := NewInventoryHandler(deps.Query, deps.Restock)
	inv.Get("/", invHandler.List)
	inv.Get("/restock", invHandler.GetRestockList)
	inv.Get("/restock.pdf", invHandler.GetRestockPDF)
	inv.Get("/:item_id", invHandler.GetByItem)
	inv.Get("/:item_id/audit", invHandler.Audit)

	// Stock por ubicación
	stockHandler := NewStockHandler(deps.StockIn, deps.StockRepo)
	v1.Post("/stock/in", with(scanner, stockHandler.StockIn)...)
	v1.Get("/stocks", stockHandler.List)

	// Catálogo
	items := v1.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Post("/", with(admin, itemHandler.Create)...)
	items.Get("/barcode/:barcode", itemHandler.GetByBarcode)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", with(admin, itemHandler.Update)...)
	items.Delete("/:id", with(admin, itemHandler.Delete)...)

	categories := v1.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", with(admin, categoryHandler.Create)...)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", with(admin, categoryHandler.Update)...)
	categories.Delete("/:id", with(admin, categoryHandler.Delete)...)

	roomHandler := NewRoomHandler(deps.RoomUC, deps.LocationUC)
	rooms := v1.Group("/rooms")
	rooms.Get("/", roomHandler.ListRooms)
	rooms.Post("/", with(admin, roomHandler.CreateRoom)...)
	rooms.Get("/:id", roomHandler.GetRoom)
	rooms.Put("/:id", with(admin, roomHandler.UpdateRoom)...)
	rooms.Delete("/:id", with(admin, roomHandler.DeleteRoom)...)

	locations := v1.Group("/locations")
	locations.Get("/", roomHandler.ListLocations)
	locations.Post("/", with(admin, roomHandler.CreateLocation)...)
	locations.Get("/:id", roomHandler.GetLocation)
	locations.Put("/:id", with(admin, roomHandler.UpdateLocation)...)
	locations.Delete("/:id", with(admin, roomHandler.DeleteLocation)...)
}

func with(mw []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(mw)+1)
	out = append(out, mw...)
	return append(out, h)
}

// NewHandler monta la app Fiber y el WebSocket de notificaciones en un único http.Handler.
func NewHandler(app *fiber.App, ws http.Handler) http.Handler {
	mux := http.NewServeMux()
	if ws != nil {
		mux.Handle("/v1/ws/stock", ws)
	}
	mux.Handle("/", adaptor.FiberApp(app))
	return mux
}

// requestLogger registra cada petición; los 5xx con el error original.
func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		ev := log.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
			if cause, ok := c.Locals(localError).(error); ok {
				ev = ev.Err(cause)
			}
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("petición HTTP")
		return err
	}
}
