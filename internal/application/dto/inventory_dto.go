package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID     string          `json:"product_id"`
	LocationID    string          `json:"location_id"`
	Lot           string          `json:"lot,omitempty"`
	Serial        string          `json:"serial,omitempty"`
	ContainerID   string          `json:"container_id,omitempty"`
	QualityStatus string          `json:"quality_status,omitempty"` // vacío = AVAILABLE
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	Decrease      bool            `json:"decrease,omitempty"` // solo INVENTORY_ADJUSTMENT
	ExpiresAt     *time.Time      `json:"expires_at,omitempty"`
	Reference     string          `json:"reference,omitempty"`
}

// CycleCountRequest body para POST /api/inventory/counts.
type CycleCountRequest struct {
	ProductID     string          `json:"product_id"`
	LocationID    string          `json:"location_id"`
	Lot           string          `json:"lot,omitempty"`
	Serial        string          `json:"serial,omitempty"`
	ContainerID   string          `json:"container_id,omitempty"`
	QualityStatus string          `json:"quality_status,omitempty"`
	Counted       decimal.Decimal `json:"counted"`
	Reference     string          `json:"reference,omitempty"`
}

// MovementResponse entrada de kardex.
type MovementResponse struct {
	ID             string          `json:"id"`
	TransactionID  string          `json:"transaction_id"`
	Type           string          `json:"type"`
	ProductID      string          `json:"product_id"`
	LocationID     string          `json:"location_id"`
	Lot            string          `json:"lot,omitempty"`
	Serial         string          `json:"serial,omitempty"`
	ContainerID    string          `json:"container_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	CreatedBy      string          `json:"created_by"`
	Reference      string          `json:"reference,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// MovementResultResponse respuesta de un movimiento aplicado.
type MovementResultResponse struct {
	PreviousOnHand decimal.Decimal  `json:"previous_on_hand"`
	NewOnHand      decimal.Decimal  `json:"new_on_hand"`
	Movement       MovementResponse `json:"movement"`
}

// MovementListResponse kardex paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AllocateRequest body para POST /api/inventory/allocations.
type AllocateRequest struct {
	DemandID         string          `json:"demand_id"`
	ProductID        string          `json:"product_id"`
	QuantityNeeded   decimal.Decimal `json:"quantity_needed"`
	QuantityReserved decimal.Decimal `json:"quantity_reserved,omitempty"` // ya reservado en intentos previos
}

// AllocationResponse tareas generadas y demanda restante.
type AllocationResponse struct {
	DemandID  string             `json:"demand_id"`
	Strategy  string             `json:"strategy"`
	Tasks     []PickTaskResponse `json:"tasks"`
	Reserved  decimal.Decimal    `json:"reserved"`
	Remaining decimal.Decimal    `json:"remaining"`
	Partial   bool               `json:"partial"`
}

// PickTaskResponse tarea de picking o reposición.
type PickTaskResponse struct {
	ID                    string          `json:"id"`
	Kind                  string          `json:"kind"`
	DemandID              string          `json:"demand_id,omitempty"`
	ProductID             string          `json:"product_id"`
	SourceLocationID      string          `json:"source_location_id"`
	DestinationLocationID string          `json:"destination_location_id,omitempty"`
	Lot                   string          `json:"lot,omitempty"`
	Serial                string          `json:"serial,omitempty"`
	ContainerID           string          `json:"container_id,omitempty"`
	QuantityPlanned       decimal.Decimal `json:"quantity_planned"`
	Completed             bool            `json:"completed"`
	CompletedAt           *time.Time      `json:"completed_at,omitempty"`
	CompletedBy           string          `json:"completed_by,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

// TaskListResponse lista paginada de tareas.
type TaskListResponse struct {
	Items []PickTaskResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ConfirmPickRequest body para POST /api/inventory/tasks/:id/confirm.
type ConfirmPickRequest struct {
	DestinationLocationID string `json:"destination_location_id"`
}

// ConfirmPickResponse resultado de la confirmación.
type ConfirmPickResponse struct {
	Task             PickTaskResponse        `json:"task"`
	AlreadyCompleted bool                    `json:"already_completed"`
	FullUnitMove     bool                    `json:"full_unit_move"`
	Outbound         *MovementResultResponse `json:"outbound,omitempty"`
	Inbound          *MovementResultResponse `json:"inbound,omitempty"`
}

// StockBalanceResponse saldo por ubicación.
type StockBalanceResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	LocationID       string          `json:"location_id"`
	Lot              string          `json:"lot,omitempty"`
	Serial           string          `json:"serial,omitempty"`
	ContainerID      string          `json:"container_id,omitempty"`
	QualityStatus    string          `json:"quality_status"`
	QuantityOnHand   decimal.Decimal `json:"quantity_on_hand"`
	QuantityReserved decimal.Decimal `json:"quantity_reserved"`
	Available        decimal.Decimal `json:"available"`
	ExpiresAt        *time.Time      `json:"expires_at,omitempty"`
	ReceivedAt       time.Time       `json:"received_at"`
}

// AvailableStockResponse saldos disponibles de un producto.
type AvailableStockResponse struct {
	ProductID string                 `json:"product_id"`
	Items     []StockBalanceResponse `json:"items"`
}

// TotalOnHandResponse físico total de un producto.
type TotalOnHandResponse struct {
	ProductID string          `json:"product_id"`
	OnHand    decimal.Decimal `json:"on_hand"`
}

// ReplenishmentScanResponse resumen de un ciclo de reposición disparado manualmente.
type ReplenishmentScanResponse struct {
	Scanned   int                `json:"scanned"`
	Generated int                `json:"generated"`
	Skipped   int                `json:"skipped"`
	Failed    int                `json:"failed"`
	Tasks     []PickTaskResponse `json:"tasks"`
}
