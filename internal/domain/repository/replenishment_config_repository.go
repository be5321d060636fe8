package repository

import (
	"context"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
)

// ReplenishmentConfigRepository lectura de la configuración de reposición.
type ReplenishmentConfigRepository interface {
	ListActive(ctx context.Context) ([]*entity.ReplenishmentConfig, error)
}
