package inventory

//go:generate mockgen -source=ports.go -destination=ports_mock.go -package=inventory

import (
	"context"

	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de conciliación: si fn devuelve error se hace Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txnRepo repository.TransactionRepository,
		levelRepo repository.InventoryLevelRepository,
	) error) error

	// RunStock igual que Run pero con los repositorios del flujo de entrada por código de barras.
	RunStock(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// RestockPDFGenerator genera el PDF de la lista de reposición.
type RestockPDFGenerator interface {
	GenerateRestockPDF(ctx context.Context, list []RestockSuggestion) ([]byte, error)
}
