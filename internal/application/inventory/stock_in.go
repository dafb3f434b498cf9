package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/width"

	"github.com/jhoicas/home-inventory/internal/application/ports"
	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
	inv "github.com/jhoicas/home-inventory/internal/domain/inventory"
	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

// publishTimeout tiempo máximo para difundir la notificación; no bloquea la respuesta HTTP.
const publishTimeout = 2 * time.Second

// StockInUseCase entrada de stock por código de barras, por (artículo, ubicación).
// Variante hermana de la conciliación: no genera transacción, suma directamente al stock de la ubicación.
type StockInUseCase struct {
	txRunner     TxRunner
	categoryRepo repository.CategoryRepository
	publisher    ports.Publisher
	log          zerolog.Logger
}

// NewStockInUseCase construye el caso de uso. publisher puede ser nil (sin difusión).
func NewStockInUseCase(
	txRunner TxRunner,
	categoryRepo repository.CategoryRepository,
	publisher ports.Publisher,
	log zerolog.Logger,
) *StockInUseCase {
	return &StockInUseCase{
		txRunner:     txRunner,
		categoryRepo: categoryRepo,
		publisher:    publisher,
		log:          log,
	}
}

// StockInInput entrada del caso de uso.
type StockInInput struct {
	Barcode  string
	Location *string
	Quantity int64 // 0 = 1
}

// StockInResult resultado de una entrada.
type StockInResult struct {
	Item     *entity.Item
	Stock    *entity.Stock
	Location *string
	IsNew    bool
}

// NormalizeBarcode quita espacios y convierte dígitos/letras de ancho completo a ASCII.
func NormalizeBarcode(s string) string {
	return strings.TrimSpace(width.Narrow.String(s))
}

// StockIn resuelve el código a un artículo (creando uno provisional si no existe),
// resuelve la ubicación por nombre (creándola si hace falta) y suma la cantidad en una sola tx.
// Después difunde la notificación stock_in; un fallo al difundir solo se registra en el log.
func (uc *StockInUseCase) StockIn(ctx context.Context, in StockInInput) (*StockInResult, error) {
	barcode := NormalizeBarcode(in.Barcode)
	if barcode == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	var locationName *string
	if in.Location != nil {
		if name := strings.TrimSpace(*in.Location); name != "" {
			locationName = &name
		}
	}

	var result *StockInResult
	err := uc.txRunner.RunStock(ctx, func(
		itemRepo repository.ItemRepository,
		locationRepo repository.LocationRepository,
		stockRepo repository.StockRepository,
	) error {
		res := &StockInResult{Location: locationName}

		item, err := itemRepo.GetByBarcode(ctx, barcode)
		if err != nil {
			return err
		}
		if item == nil {
			now := time.Now()
			item = &entity.Item{
				Barcode:      &barcode,
				MinThreshold: entity.DefaultMinThreshold,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := itemRepo.Create(ctx, item); err != nil {
				return err
			}
			res.IsNew = true
		}
		res.Item = item

		var locationID *string
		if locationName != nil {
			loc, err := locationRepo.GetByName(ctx, *locationName)
			if err != nil {
				return err
			}
			if loc == nil {
				now := time.Now()
				loc = &entity.Location{Name: *locationName, CreatedAt: now, UpdatedAt: now}
				if err := locationRepo.Create(ctx, loc); err != nil {
					return err
				}
			}
			locationID = &loc.ID
		}

		stock, err := stockRepo.LockOrCreate(ctx, item.ID, locationID)
		if err != nil {
			return err
		}
		total, err := inv.Add(stock.Quantity, qty)
		if err != nil {
			return err
		}
		stock.Quantity = total
		if err := stockRepo.UpdateQuantity(ctx, stock.ID, stock.Quantity); err != nil {
			return err
		}
		res.Stock = stock
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("barcode", barcode).
		Str("item_id", result.Item.ID).
		Int64("quantity", result.Stock.Quantity).
		Bool("is_new", result.IsNew).
		Msg("entrada por código de barras")

	uc.notify(ctx, barcode, result)
	return result, nil
}

func (uc *StockInUseCase) notify(ctx context.Context, barcode string, res *StockInResult) {
	if uc.publisher == nil {
		return
	}
	data := ports.StockInData{
		Barcode:  barcode,
		ItemID:   res.Item.ID,
		ItemName: res.Item.Name,
		Location: res.Location,
		Quantity: res.Stock.Quantity,
		IsNew:    res.IsNew,
	}
	if res.Item.CategoryID != nil {
		data.CategoryID = res.Item.CategoryID
		if cat, err := uc.categoryRepo.GetByID(ctx, *res.Item.CategoryID); err == nil && cat != nil {
			data.CategoryName = &cat.Name
		}
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := uc.publisher.Publish(pubCtx, ports.Notification{Type: ports.NotificationTypeStockIn, Data: data}); err != nil {
		uc.log.Error().Err(err).Str("barcode", barcode).Msg("difundir notificación stock_in")
	}
}
