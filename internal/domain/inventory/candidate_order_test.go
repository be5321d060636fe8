package inventory_test

import (
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/inventory"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestOrderExpiryAsc_NulosAlFinal(t *testing.T) {
	list := []*entity.StockBalance{
		{ID: "a", ExpiresAt: date(2025, time.March, 1)},
		{ID: "b", ExpiresAt: date(2025, time.January, 1)},
		{ID: "c"},
	}
	sort.SliceStable(list, func(i, j int) bool { return inventory.OrderExpiryAsc.Less(list[i], list[j]) })

	assert.Equal(t, []string{"b", "a", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestOrderExpiryAsc_DesempatePorID(t *testing.T) {
	exp := date(2025, time.May, 5)
	a := &entity.StockBalance{ID: "2", ExpiresAt: exp}
	b := &entity.StockBalance{ID: "1", ExpiresAt: exp}
	assert.True(t, inventory.OrderExpiryAsc.Less(b, a))
	assert.False(t, inventory.OrderExpiryAsc.Less(a, b))
}

func TestOrderReceipt_FIFOyLIFO(t *testing.T) {
	old := &entity.StockBalance{ID: "old", ReceivedAt: *date(2024, time.June, 1)}
	recent := &entity.StockBalance{ID: "new", ReceivedAt: *date(2024, time.July, 1)}

	assert.True(t, inventory.OrderReceiptAsc.Less(old, recent))
	assert.True(t, inventory.OrderReceiptDesc.Less(recent, old))
}

func TestAllocatable(t *testing.T) {
	b := &entity.StockBalance{
		QualityStatus:    entity.QualityAvailable,
		QuantityOnHand:   decimal.NewFromInt(5),
		QuantityReserved: decimal.NewFromInt(5),
	}
	assert.False(t, inventory.Allocatable(b), "sin disponible no es candidato")

	b.QuantityReserved = decimal.NewFromInt(2)
	assert.True(t, inventory.Allocatable(b))

	b.QualityStatus = entity.QualityDamaged
	assert.False(t, inventory.Allocatable(b), "solo stock en estado AVAILABLE")
}
