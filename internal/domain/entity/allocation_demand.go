package entity

import "github.com/shopspring/decimal"

// AllocationDemand demanda de una línea de pedido. Los acumulados los incrementa el motor de asignación.
type AllocationDemand struct {
	ID                string // línea de pedido
	ProductID         string
	QuantityNeeded    decimal.Decimal
	QuantityReserved  decimal.Decimal
	QuantityFulfilled decimal.Decimal
}

// Remaining cantidad pendiente por reservar; se recalcula siempre a partir de los acumulados.
func (d *AllocationDemand) Remaining() decimal.Decimal {
	r := d.QuantityNeeded.Sub(d.QuantityReserved)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}
