package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrConcurrentUpdate indica que otra operación sobre el mismo artículo ganó el bloqueo
	// o la serialización falló. Es reintentable.
	ErrConcurrentUpdate = errors.New("actualización concurrente, reintentar")

	// ErrPersistence envuelve fallos del almacén (conexión, commit). La transacción ya hizo Rollback.
	ErrPersistence = errors.New("fallo de persistencia")

	// ErrNegativeQuantity lo devuelven los almacenes si se intenta guardar una cantidad negativa.
	ErrNegativeQuantity = errors.New("la cantidad no puede ser negativa")
)
