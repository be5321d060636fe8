package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de tarea.
const (
	TaskKindPick          = "PICK"
	TaskKindReplenishment = "REPLENISHMENT"
)

// PickTask tarea de picking (o de reposición interna) generada al reservar stock.
// Se confirma una sola vez; después queda inmutable.
type PickTask struct {
	ID                    string
	Kind                  string
	DemandID              string
	ProductID             string
	BalanceID             string
	SourceLocationID      string
	DestinationLocationID string // solo reposición
	Lot                   string
	Serial                string
	ContainerID           string
	QuantityPlanned       decimal.Decimal
	Completed             bool
	CompletedAt           *time.Time
	CompletedBy           string
	CreatedBy             string
	CreatedAt             time.Time
}

// Clone copia la tarea.
func (t *PickTask) Clone() *PickTask {
	if t == nil {
		return nil
	}
	c := *t
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		c.CompletedAt = &ts
	}
	return &c
}

// SourceKey llave del saldo de origen de la tarea.
func (t *PickTask) SourceKey() BalanceKey {
	return BalanceKey{
		ProductID:   t.ProductID,
		LocationID:  t.SourceLocationID,
		Lot:         t.Lot,
		Serial:      t.Serial,
		ContainerID: t.ContainerID,
	}
}
