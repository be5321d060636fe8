package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/wms-stock-engine/internal/domain/entity"
	"github.com/jhoicas/wms-stock-engine/internal/domain/inventory"
	"github.com/jhoicas/wms-stock-engine/internal/domain/repository"
)

func TestCandidatesQuery_FEFOSinCursor(t *testing.T) {
	sql, args := candidatesQuery(repository.CandidateQuery{ProductID: "p1"}, inventory.OrderExpiryAsc, 50)

	assert.Contains(t, sql, "ORDER BY b.expires_at ASC NULLS LAST, b.id ASC")
	assert.Contains(t, sql, "LIMIT $2")
	assert.Equal(t, []any{"p1", 50}, args)
}

func TestCandidatesQuery_ExcluyeUbicacion(t *testing.T) {
	sql, args := candidatesQuery(repository.CandidateQuery{ProductID: "p1", ExcludeLocationID: "PICK-1"}, inventory.OrderReceiptAsc, 10)

	assert.Contains(t, sql, "b.location_id <> $2")
	assert.Contains(t, sql, "ORDER BY b.received_at ASC, b.id ASC")
	assert.Equal(t, []any{"p1", "PICK-1", 10}, args)
}

func TestCandidatesQuery_CursorFEFOConVencimiento(t *testing.T) {
	exp := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	after := &entity.StockBalance{ID: "b1", ExpiresAt: &exp}

	sql, args := candidatesQuery(repository.CandidateQuery{ProductID: "p1", After: after}, inventory.OrderExpiryAsc, 10)

	assert.Contains(t, sql, "(b.expires_at IS NULL OR (b.expires_at, b.id) > ($2, $3::uuid))")
	assert.Equal(t, []any{"p1", exp, "b1", 10}, args)
}

func TestCandidatesQuery_CursorFEFOSinVencimiento(t *testing.T) {
	after := &entity.StockBalance{ID: "b9"}

	sql, _ := candidatesQuery(repository.CandidateQuery{ProductID: "p1", After: after}, inventory.OrderExpiryAsc, 10)

	assert.Contains(t, sql, "b.expires_at IS NULL AND b.id > $2::uuid")
}

func TestCandidatesQuery_CursorLIFO(t *testing.T) {
	rec := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	after := &entity.StockBalance{ID: "b2", ReceivedAt: rec}

	sql, _ := candidatesQuery(repository.CandidateQuery{ProductID: "p1", After: after}, inventory.OrderReceiptDesc, 10)

	assert.Contains(t, sql, "(b.received_at, b.id) < ($2, $3::uuid)")
	assert.Contains(t, sql, "ORDER BY b.received_at DESC, b.id DESC")
}
