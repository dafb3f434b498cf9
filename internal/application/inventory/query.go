package inventory

import (
	"context"

	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	inv "github.com/jhoicas/home-inventory/internal/domain/inventory"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

// QueryUseCase lecturas de transacciones e inventario. No pasa por el motor ni abre transacciones.
type QueryUseCase struct {
	txnRepo   repository.TransactionRepository
	levelRepo repository.InventoryLevelRepository
	itemRepo  repository.ItemRepository
}

// NewQueryUseCase construye el caso de uso de lectura.
func NewQueryUseCase(
	txnRepo repository.TransactionRepository,
	levelRepo repository.InventoryLevelRepository,
	itemRepo repository.ItemRepository,
) *QueryUseCase {
	return &QueryUseCase{txnRepo: txnRepo, levelRepo: levelRepo, itemRepo: itemRepo}
}

// GetTransaction devuelve domain.ErrNotFound si no existe.
func (uc *QueryUseCase) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	txn, err := uc.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrNotFound
	}
	return txn, nil
}

// ListTransactions lista todas las transacciones, más recientes primero.
func (uc *QueryUseCase) ListTransactions(ctx context.Context, limit, offset int) ([]*entity.Transaction, error) {
	return uc.txnRepo.List(ctx, repository.TransactionFilter{}, limit, offset)
}

// ListTransactionsByItem historial de un artículo, más recientes primero.
func (uc *QueryUseCase) ListTransactionsByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.Transaction, error) {
	return uc.txnRepo.List(ctx, repository.TransactionFilter{ItemID: &itemID}, limit, offset)
}

// GetLevel devuelve el nivel del artículo; si aún no tiene, cantidad 0.
func (uc *QueryUseCase) GetLevel(ctx context.Context, itemID string) (*entity.InventoryLevel, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	level, err := uc.levelRepo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return &entity.InventoryLevel{ItemID: itemID, Quantity: 0, UpdatedAt: item.UpdatedAt}, nil
	}
	return level, nil
}

// ListLevels lista los niveles materializados.
func (uc *QueryUseCase) ListLevels(ctx context.Context, limit, offset int) ([]*entity.InventoryLevel, error) {
	return uc.levelRepo.List(ctx, limit, offset)
}

// Audit compara lo guardado con el recálculo max(0, Σ efectos). No corrige nada:
// la diferencia aparece cuando el historial tuvo recortes a 0.
type Audit struct {
	ItemID   string
	Stored   int64
	Resummed int64
	Drift    int64
}

// AuditLevel calcula la auditoría de un artículo.
func (uc *QueryUseCase) AuditLevel(ctx context.Context, itemID string) (*Audit, error) {
	level, err := uc.GetLevel(ctx, itemID)
	if err != nil {
		return nil, err
	}
	history, err := uc.txnRepo.ListAllByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resummed := inv.Resum(history)
	return &Audit{
		ItemID:   itemID,
		Stored:   level.Quantity,
		Resummed: resummed,
		Drift:    level.Quantity - resummed,
	}, nil
}
