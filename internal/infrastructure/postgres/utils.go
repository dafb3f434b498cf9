package postgres

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/home-inventory/internal/domain"
)

// Códigos SQLSTATE que traducimos a errores de dominio.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeInvalidTextRepr      = "22P02"
)

// mapError traduce errores del driver a los sentinelas del dominio, conservando el original.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrConcurrentUpdate, err)
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrNotFound, err)
		case codeCheckViolation:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrNegativeQuantity, err)
		case codeInvalidTextRepr:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidInput, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// isUUID las columnas id son UUID; un id con otro formato no puede existir.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// validRef referencia opcional: nil o vacía vale, si no debe ser UUID.
func validRef(id *string) bool {
	return id == nil || *id == "" || isUUID(*id)
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
