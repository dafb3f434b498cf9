// Package inventory contiene la aritmética de conciliación entre transacciones e inventario.
// Son funciones puras: no conocen almacenes ni transacciones de BD.
package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/home-inventory/internal/domain"
	"github.com/jhoicas/home-inventory/internal/domain/entity"
)

// ErrOverflow la suma se sale del rango de int64. Envuelve domain.ErrInvalidInput.
var ErrOverflow = fmt.Errorf("%w: la cantidad excede el máximo representable", domain.ErrInvalidInput)

// Add suma a y b; devuelve ErrOverflow en lugar de dar la vuelta.
func Add(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrOverflow
	}
	return a + b, nil
}

// Effect devuelve el delta con signo que aporta un movimiento: +quantity para IN, -quantity para el resto.
func Effect(t entity.TransactionType, quantity int64) int64 {
	if t == entity.TransactionTypeIn {
		return quantity
	}
	return -quantity
}

// EffectOf es Effect aplicado a una transacción existente.
func EffectOf(txn *entity.Transaction) int64 {
	return Effect(txn.Type, txn.Quantity)
}

// Clamp aplica el piso de 0.
func Clamp(quantity int64) int64 {
	if quantity < 0 {
		return 0
	}
	return quantity
}

// Apply suma delta a current y aplica el piso una sola vez, sobre el resultado final.
func Apply(current, delta int64) (int64, error) {
	sum, err := Add(current, delta)
	if err != nil {
		return current, err
	}
	return Clamp(sum), nil
}

// CombinedDelta calcula en un único delta la reversión del efecto original y la aplicación
// del nuevo efecto (tipo y cantidad del patch, o los del original si no vienen).
// Si el patch no toca tipo ni cantidad el delta es 0.
func CombinedDelta(original *entity.Transaction, patch entity.TransactionPatch) (int64, error) {
	if !patch.TouchesEffect() {
		return 0, nil
	}
	newType := original.Type
	if patch.Type != nil {
		newType = *patch.Type
	}
	newQty := original.Quantity
	if patch.Quantity != nil {
		newQty = *patch.Quantity
	}
	return Add(-EffectOf(original), Effect(newType, newQty))
}

// ReverseDelta delta que deshace el efecto de una transacción eliminada.
func ReverseDelta(txn *entity.Transaction) int64 {
	return -EffectOf(txn)
}

// Resum recalcula max(0, Σ efectos). Solo para auditoría: puede diferir del valor incremental
// cuando en el historial hubo recortes a 0. Si la suma se sale de int64 se satura.
func Resum(txns []*entity.Transaction) int64 {
	var sum int64
	for _, t := range txns {
		next, err := Add(sum, EffectOf(t))
		if err != nil {
			if EffectOf(t) > 0 {
				return math.MaxInt64
			}
			next = math.MinInt64
		}
		sum = next
	}
	return Clamp(sum)
}
