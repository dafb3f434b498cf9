package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/home-inventory/internal/application/inventory"
	"github.com/jhoicas/home-inventory/internal/application/ports"
	"github.com/jhoicas/home-inventory/internal/application/usecase"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
	infrapdf "github.com/jhoicas/home-inventory/internal/infrastructure/pdf"
	"github.com/jhoicas/home-inventory/internal/infrastructure/memory"
	"github.com/jhoicas/home-inventory/internal/infrastructure/postgres"
	"github.com/jhoicas/home-inventory/internal/infrastructure/realtime"
	infraredis "github.com/jhoicas/home-inventory/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/home-inventory/internal/interfaces/http"
	"github.com/jhoicas/home-inventory/pkg/config"
	"github.com/jhoicas/home-inventory/pkg/logger"
)

// stores repositorios y runner transaccional del driver elegido.
type stores struct {
	txRunner   inventory.TxRunner
	txns       repository.TransactionRepository
	levels     repository.InventoryLevelRepository
	items      repository.ItemRepository
	categories repository.CategoryRepository
	rooms      repository.RoomRepository
	locations  repository.LocationRepository
	stocks     repository.StockRepository
	close      func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.Store.Driver == "memory" {
		s := memory.NewStore()
		return &stores{
			txRunner:   s,
			txns:       memory.NewTransactionRepository(s),
			levels:     memory.NewInventoryLevelRepository(s),
			items:      memory.NewItemRepository(s),
			categories: memory.NewCategoryRepository(s),
			rooms:      memory.NewRoomRepository(s),
			locations:  memory.NewLocationRepository(s),
			stocks:     memory.NewStockRepository(s),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &stores{
		txRunner:   postgres.NewTxRunner(pool),
		txns:       postgres.NewTransactionRepository(pool),
		levels:     postgres.NewInventoryLevelRepository(pool),
		items:      postgres.NewItemRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		rooms:      postgres.NewRoomRepository(pool),
		locations:  postgres.NewLocationRepository(pool),
		stocks:     postgres.NewStockRepository(pool),
		close:      pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer st.close()

	hub := realtime.NewHub(realtime.DefaultBuffer, log.Component("ws"))

	// Con Redis las notificaciones pasan por el canal y cada réplica las reenvía a sus clientes.
	var publisher ports.Publisher = hub
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		publisher = infraredis.NewBroadcaster(rdb, cfg.Redis.Channel)
		relay := infraredis.NewRelay(rdb, cfg.Redis.Channel, hub, log.Component("redis"))
		go func() {
			if err := relay.Run(ctx, nil); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("relay Redis finalizado")
			}
		}()
	}

	engine := inventory.NewReconciliationEngine(st.txRunner,
		inventory.WithMaxTries(uint(cfg.Reconcile.MaxRetries)),
		inventory.WithLogger(log.Component("reconcile")),
	)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		SwaggerFile: "./docs/swagger.json",
		Log:         log.Component("http"),
	}, httpRouter.RouterDeps{
		Engine:     engine,
		Query:      inventory.NewQueryUseCase(st.txns, st.levels, st.items),
		Restock:    inventory.NewRestockUseCase(st.levels, infrapdf.NewMarotoPDFGenerator()),
		StockIn:    inventory.NewStockInUseCase(st.txRunner, st.categories, publisher, log.Component("stock")),
		StockRepo:  st.stocks,
		ItemUC:     usecase.NewItemUseCase(st.items, st.categories, st.levels),
		CategoryUC: usecase.NewCategoryUseCase(st.categories),
		RoomUC:     usecase.NewRoomUseCase(st.rooms),
		LocationUC: usecase.NewLocationUseCase(st.locations, st.rooms),
		JWTSecret:  cfg.JWT.Secret,
	})
	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: escrituras sin autenticación")
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           httpRouter.NewHandler(app, hub.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("servidor HTTP escuchando")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de fiber")
	}
	log.Info().Msg("aplicación detenida")
}

