package inventory

import (
	"github.com/jhoicas/wms-stock-engine/internal/application/dto"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
)

// ToMovementResponse entidad → DTO.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		TransactionID:  m.TransactionID,
		Type:           m.Type,
		ProductID:      m.ProductID,
		LocationID:     m.LocationID,
		Lot:            m.Lot,
		Serial:         m.Serial,
		ContainerID:    m.ContainerID,
		Quantity:       m.Quantity,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		CreatedBy:      m.CreatedBy,
		Reference:      m.Reference,
		CreatedAt:      m.CreatedAt,
	}
}

func ToMovementResultResponse(r *MovementResult) *dto.MovementResultResponse {
	if r == nil {
		return nil
	}
	return &dto.MovementResultResponse{
		PreviousOnHand: r.PreviousOnHand,
		NewOnHand:      r.NewOnHand,
		Movement:       ToMovementResponse(r.Movement),
	}
}

func ToPickTaskResponse(t *entity.PickTask) dto.PickTaskResponse {
	return dto.PickTaskResponse{
		ID:                    t.ID,
		Kind:                  t.Kind,
		DemandID:              t.DemandID,
		ProductID:             t.ProductID,
		SourceLocationID:      t.SourceLocationID,
		DestinationLocationID: t.DestinationLocationID,
		Lot:                   t.Lot,
		Serial:                t.Serial,
		ContainerID:           t.ContainerID,
		QuantityPlanned:       t.QuantityPlanned,
		Completed:             t.Completed,
		CompletedAt:           t.CompletedAt,
		CompletedBy:           t.CompletedBy,
		CreatedAt:             t.CreatedAt,
	}
}

// ToPickTaskResponses nunca devuelve nil (JSON "[]").
func ToPickTaskResponses(tasks []*entity.PickTask) []dto.PickTaskResponse {
	out := make([]dto.PickTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, ToPickTaskResponse(t))
	}
	return out
}

func ToStockBalanceResponse(b *entity.StockBalance) dto.StockBalanceResponse {
	return dto.StockBalanceResponse{
		ID:               b.ID,
		ProductID:        b.ProductID,
		LocationID:       b.LocationID,
		Lot:              b.Lot,
		Serial:           b.Serial,
		ContainerID:      b.ContainerID,
		QualityStatus:    b.QualityStatus,
		QuantityOnHand:   b.QuantityOnHand,
		QuantityReserved: b.QuantityReserved,
		Available:        b.Available(),
		ExpiresAt:        b.ExpiresAt,
		ReceivedAt:       b.ReceivedAt,
	}
}

func ToAllocationResponse(r *AllocationResult) dto.AllocationResponse {
	return dto.AllocationResponse{
		DemandID:  r.DemandID,
		Strategy:  r.Strategy,
		Tasks:     ToPickTaskResponses(r.Tasks),
		Reserved:  r.Reserved,
		Remaining: r.Remaining,
		Partial:   r.Partial,
	}
}

func ToConfirmPickResponse(c *PickConfirmation) dto.ConfirmPickResponse {
	return dto.ConfirmPickResponse{
		Task:             ToPickTaskResponse(c.Task),
		AlreadyCompleted: c.AlreadyCompleted,
		FullUnitMove:     c.FullUnitMove,
		Outbound:         ToMovementResultResponse(c.Outbound),
		Inbound:          ToMovementResultResponse(c.Inbound),
	}
}

func ToScanResponse(r *ScanReport) dto.ReplenishmentScanResponse {
	return dto.ReplenishmentScanResponse{
		Scanned:   r.Scanned,
		Generated: r.Generated,
		Skipped:   r.Skipped,
		Failed:    r.Failed,
		Tasks:     ToPickTaskResponses(r.Tasks),
	}
}
