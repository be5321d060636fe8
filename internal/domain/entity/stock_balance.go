package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de calidad de un saldo de stock.
const (
	QualityAvailable  = "AVAILABLE"
	QualityDamaged    = "DAMAGED"
	QualityExpired    = "EXPIRED"
	QualityBlocked    = "BLOCKED"
	QualityQuarantine = "QUARANTINE"
)

// ValidQualityStatus indica si el estado de calidad es uno de los soportados.
func ValidQualityStatus(s string) bool {
	switch s {
	case QualityAvailable, QualityDamaged, QualityExpired, QualityBlocked, QualityQuarantine:
		return true
	}
	return false
}

// BalanceKey identifica de forma única un saldo: producto, ubicación, lote, serie y contenedor.
type BalanceKey struct {
	ProductID   string
	LocationID  string
	Lot         string
	Serial      string
	ContainerID string
}

// StockBalance es el saldo actual de un producto en una ubicación (fuente de verdad).
// QuantityReserved nunca supera QuantityOnHand; un saldo con ambas cantidades en cero se elimina.
type StockBalance struct {
	ID               string
	ProductID        string
	LocationID       string
	Lot              string
	Serial           string
	ContainerID      string // license plate / pallet
	QualityStatus    string
	QuantityOnHand   decimal.Decimal
	QuantityReserved decimal.Decimal
	ExpiresAt        *time.Time
	ReceivedAt       time.Time // orden de recepción (FIFO/LIFO)
	Version          int64     // control de concurrencia optimista
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Key devuelve la llave única del saldo.
func (b *StockBalance) Key() BalanceKey {
	return BalanceKey{
		ProductID:   b.ProductID,
		LocationID:  b.LocationID,
		Lot:         b.Lot,
		Serial:      b.Serial,
		ContainerID: b.ContainerID,
	}
}

// Available = disponible (físico menos reservado).
func (b *StockBalance) Available() decimal.Decimal {
	return b.QuantityOnHand.Sub(b.QuantityReserved)
}

// IsEmpty indica si el saldo quedó sin físico ni reservas y debe eliminarse.
func (b *StockBalance) IsEmpty() bool {
	return b.QuantityOnHand.IsZero() && b.QuantityReserved.IsZero()
}

// Clone devuelve una copia independiente (los stores no comparten punteros con los llamadores).
func (b *StockBalance) Clone() *StockBalance {
	if b == nil {
		return nil
	}
	c := *b
	if b.ExpiresAt != nil {
		t := *b.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}
