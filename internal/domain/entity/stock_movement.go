package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementTypeIN                  = "IN"
	MovementTypeOUT                 = "OUT"
	MovementTypePositiveAdjustment  = "POSITIVE_ADJUSTMENT"
	MovementTypeNegativeAdjustment  = "NEGATIVE_ADJUSTMENT"
	MovementTypeInventoryAdjustment = "INVENTORY_ADJUSTMENT" // conteo cíclico; dirección explícita
	MovementTypeBlock               = "BLOCK"
	MovementTypeUnblock             = "UNBLOCK"
	MovementTypeLoss                = "LOSS"
)

// StockMovement es una entrada inmutable del kardex. Se crea una sola vez por movimiento aplicado
// y nunca se actualiza ni elimina.
type StockMovement struct {
	ID             string
	TransactionID  string
	Type           string
	ProductID      string
	LocationID     string
	Lot            string
	Serial         string
	ContainerID    string
	Quantity       decimal.Decimal // siempre positiva
	QuantityBefore decimal.Decimal // físico antes
	QuantityAfter  decimal.Decimal // físico después
	CreatedBy      string
	Reference      string
	CreatedAt      time.Time
}

// Delta variación firmada del físico producida por el movimiento.
func (m *StockMovement) Delta() decimal.Decimal {
	return m.QuantityAfter.Sub(m.QuantityBefore)
}
