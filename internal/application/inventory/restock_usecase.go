package inventory

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/home-inventory/internal/domain/repository"
)

// RestockSuggestion artículo por debajo de su umbral con la cantidad sugerida de compra.
type RestockSuggestion struct {
	ItemID       string
	ItemName     string
	Barcode      *string
	CategoryName *string
	Quantity     int64
	MinThreshold int64
	IdealStock   int64 // ceil(MinThreshold * 1.5)
	SuggestedQty int64 // IdealStock - Quantity
	Priority     int   // 1 = más urgente
}

// RestockUseCase genera la lista de la compra con los artículos bajo su umbral mínimo.
type RestockUseCase struct {
	levelRepo repository.InventoryLevelRepository
	pdf       RestockPDFGenerator
}

// NewRestockUseCase construye el caso de uso de reposición. pdf puede ser nil.
func NewRestockUseCase(levelRepo repository.InventoryLevelRepository, pdf RestockPDFGenerator) *RestockUseCase {
	return &RestockUseCase{levelRepo: levelRepo, pdf: pdf}
}

// idealStock ceil(threshold * 1.5) en enteros.
func idealStock(threshold int64) int64 {
	return (threshold*3 + 1) / 2
}

// GenerateRestockList devuelve los artículos bajo su umbral, ordenados por mayor déficit
// y después por nombre.
func (uc *RestockUseCase) GenerateRestockList(ctx context.Context) ([]RestockSuggestion, error) {
	// 1. Artículos por debajo del umbral
	raw, err := uc.levelRepo.ListBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []RestockSuggestion{}, nil
	}

	// 2. Cantidad sugerida
	list := make([]RestockSuggestion, 0, len(raw))
	for _, r := range raw {
		ideal := idealStock(r.MinThreshold)
		suggested := ideal - r.Quantity
		if suggested < 0 {
			suggested = 0
		}
		list = append(list, RestockSuggestion{
			ItemID:       r.ItemID,
			ItemName:     r.ItemName,
			Barcode:      r.Barcode,
			CategoryName: r.CategoryName,
			Quantity:     r.Quantity,
			MinThreshold: r.MinThreshold,
			IdealStock:   ideal,
			SuggestedQty: suggested,
		})
	}

	// 3. Orden: mayor déficit, luego nombre
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		defA, defB := a.MinThreshold-a.Quantity, b.MinThreshold-b.Quantity
		if defA != defB {
			return defA > defB
		}
		return a.ItemName < b.ItemName
	})

	// 4. Prioridad (1 = más urgente)
	for i := range list {
		list[i].Priority = i + 1
	}
	return list, nil
}

// GenerateRestockPDF genera la lista en PDF.
func (uc *RestockUseCase) GenerateRestockPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, errors.New("restock: generador PDF no configurado")
	}
	list, err := uc.GenerateRestockList(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateRestockPDF(ctx, list)
}
