package inventory

import (
	"context"

	"github.com/jhoicas/wms-stock-engine/internal/application/dto"
	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso ApplyMovement(ctx, MovementInput).
// El usuario llega explícito desde el token; no se toma de ningún estado global.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*MovementResult, error) {
	input := MovementInput{
		ProductID:     in.ProductID,
		LocationID:    in.LocationID,
		Lot:           in.Lot,
		Serial:        in.Serial,
		ContainerID:   in.ContainerID,
		QualityStatus: in.QualityStatus,
		Type:          in.Type,
		Quantity:      in.Quantity,
		Decrease:      in.Decrease,
		ExpiresAt:     in.ExpiresAt,
		UserID:        userID,
		Reference:     in.Reference,
	}
	return uc.ApplyMovement(ctx, input)
}

// CycleCountFromRequest adapta el conteo cíclico al caso de uso AdjustToCount.
func (uc *RegisterMovementUseCase) CycleCountFromRequest(ctx context.Context, userID string, in dto.CycleCountRequest) (*MovementResult, error) {
	key := entity.BalanceKey{
		ProductID:   in.ProductID,
		LocationID:  in.LocationID,
		Lot:         in.Lot,
		Serial:      in.Serial,
		ContainerID: in.ContainerID,
	}
	return uc.AdjustToCount(ctx, key, in.Counted, in.QualityStatus, userID, in.Reference)
}
