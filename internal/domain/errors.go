package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	// Validación: se rechazan de inmediato, nunca se reintentan.
	ErrInvalidQuantity       = errors.New("la cantidad debe ser mayor que cero")
	ErrLocationUnavailable   = errors.New("ubicación inactiva o bloqueada")
	ErrDuplicateSerial       = errors.New("la serie ya tiene existencias en el sistema")
	ErrQualityStatusMismatch = errors.New("estado de calidad distinto al del saldo existente")
	ErrUnknownStrategy       = errors.New("estrategia de asignación desconocida")

	// Estado de negocio: el llamador debe recalcular su estado.
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Transitorio: versión del saldo modificada por otro escritor.
	ErrConcurrentModification = errors.New("modificación concurrente detectada")
)

// IsValidation indica si err es un error de validación de entrada.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidInput, ErrInvalidQuantity, ErrLocationUnavailable,
		ErrDuplicateSerial, ErrQualityStatusMismatch, ErrUnknownStrategy,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsTransient indica si err es un conflicto de concurrencia que agotó los reintentos.
func IsTransient(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
