package entity

import "time"

// Location ubicación física (vista de solo lectura de la topología externa).
type Location struct {
	ID          string
	WarehouseID string
	Code        string
	Active      bool
	Blocked     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Usable indica si la ubicación acepta movimientos.
func (l *Location) Usable() bool {
	return l != nil && l.Active && !l.Blocked
}
