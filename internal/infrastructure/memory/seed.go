package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
)

// Seed topología y configuración de reposición iniciales del store en memoria.
type Seed struct {
	Locations []struct {
		ID          string `json:"id"`
		WarehouseID string `json:"warehouse_id"`
		Code        string `json:"code"`
		Blocked     bool   `json:"blocked"`
		Inactive    bool   `json:"inactive"`
	} `json:"locations"`
	Replenishment []struct {
		ID           string          `json:"id"`
		ProductID    string          `json:"product_id"`
		LocationID   string          `json:"location_id"`
		ReorderPoint decimal.Decimal `json:"reorder_point"`
		MaxCapacity  decimal.Decimal `json:"max_capacity"`
	} `json:"replenishment"`
}

// LoadSeed carga el JSON de r en el store.
func (s *Store) LoadSeed(r io.Reader) error {
	var seed Seed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("decodificar seed: %w", err)
	}
	for _, l := range seed.Locations {
		code := l.Code
		if code == "" {
			code = l.ID
		}
		s.AddLocation(&entity.Location{
			ID:          l.ID,
			WarehouseID: l.WarehouseID,
			Code:        code,
			Active:      !l.Inactive,
			Blocked:     l.Blocked,
		})
	}
	for _, c := range seed.Replenishment {
		id := c.ID
		if id == "" {
			id = c.ProductID + "@" + c.LocationID
		}
		s.AddReplenishmentConfig(&entity.ReplenishmentConfig{
			ID:           id,
			ProductID:    c.ProductID,
			LocationID:   c.LocationID,
			ReorderPoint: c.ReorderPoint,
			MaxCapacity:  c.MaxCapacity,
			Active:       true,
		})
	}
	return nil
}

// LoadSeedFile abre path y llama a LoadSeed.
func (s *Store) LoadSeedFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir seed: %w", err)
	}
	defer f.Close()
	return s.LoadSeed(f)
}
