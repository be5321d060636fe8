package repository

import (
	"context"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
)

// LocationRepository lectura de ubicaciones (la topología la administra otro subsistema).
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Location, error)
}
