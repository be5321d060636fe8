package entity

import "github.com/shopspring/decimal"

// ReplenishmentConfig parámetros de reposición de una ubicación de picking.
type ReplenishmentConfig struct {
	ID           string
	ProductID    string
	LocationID   string // ubicación de picking a reponer
	ReorderPoint decimal.Decimal
	MaxCapacity  decimal.Decimal
	Active       bool
}
