package inventory

import (
	"strings"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
)

// CandidateOrder orden en el que se recorren los saldos candidatos para una reserva.
type CandidateOrder int

const (
	// OrderExpiryAsc FEFO: vencimiento ascendente, sin vencimiento al final, desempate por ID.
	OrderExpiryAsc CandidateOrder = iota
	// OrderReceiptAsc FIFO: recepción ascendente, desempate por ID.
	OrderReceiptAsc
	// OrderReceiptDesc LIFO: recepción descendente, desempate por ID descendente.
	OrderReceiptDesc
)

func (o CandidateOrder) String() string {
	switch o {
	case OrderExpiryAsc:
		return "expiry_asc"
	case OrderReceiptAsc:
		return "receipt_asc"
	case OrderReceiptDesc:
		return "receipt_desc"
	}
	return "unknown"
}

// Less compara dos saldos según el orden. Lo usan los stores en memoria y las pruebas;
// el adaptador PostgreSQL expresa el mismo orden en SQL.
func (o CandidateOrder) Less(a, b *entity.StockBalance) bool {
	switch o {
	case OrderExpiryAsc:
		switch {
		case a.ExpiresAt == nil && b.ExpiresAt != nil:
			return false
		case a.ExpiresAt != nil && b.ExpiresAt == nil:
			return true
		case a.ExpiresAt != nil && b.ExpiresAt != nil && !a.ExpiresAt.Equal(*b.ExpiresAt):
			return a.ExpiresAt.Before(*b.ExpiresAt)
		}
		return strings.Compare(a.ID, b.ID) < 0
	case OrderReceiptAsc:
		if !a.ReceivedAt.Equal(b.ReceivedAt) {
			return a.ReceivedAt.Before(b.ReceivedAt)
		}
		return strings.Compare(a.ID, b.ID) < 0
	case OrderReceiptDesc:
		if !a.ReceivedAt.Equal(b.ReceivedAt) {
			return a.ReceivedAt.After(b.ReceivedAt)
		}
		return strings.Compare(a.ID, b.ID) > 0
	}
	return false
}

// Allocatable indica si el saldo puede ofrecerse como candidato: disponible > 0 y estado AVAILABLE.
// La vigencia de la ubicación la valida el store.
func Allocatable(b *entity.StockBalance) bool {
	return b.QualityStatus == entity.QualityAvailable && b.Available().IsPositive()
}
