package dto

import (
	"time"

	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
)

// LineRequest una línea de checkout o traslado: código y cantidad a mover.
type LineRequest struct {
	ItemCode string `json:"itemCode" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// CheckoutRequest cuerpo de POST /api/checkout.
type CheckoutRequest struct {
	Items  []LineRequest `json:"items" validate:"min=1,dive"`
	Reason string        `json:"reason" validate:"required"`
}

// TransferRequest cuerpo de POST /api/transfer.
type TransferRequest struct {
	Items         []LineRequest `json:"items" validate:"min=1,dive"`
	FromWarehouse string        `json:"fromWarehouse" validate:"required"`
	ToWarehouse   string        `json:"toWarehouse" validate:"required"`
}

// BatchSummaryResponse resumen devuelto al crear un lote.
type BatchSummaryResponse struct {
	Message       string `json:"message"`
	BatchID       string `json:"batchId"`
	Count         int    `json:"count"`
	TotalQuantity int    `json:"totalQuantity"`
}

// BatchLineDTO línea snapshot dentro de un lote del historial.
type BatchLineDTO struct {
	ItemCode string `json:"itemCode"`
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

// CheckoutBatchDTO lote de checkout en el historial.
type CheckoutBatchDTO struct {
	ID            string         `json:"id"`
	Warehouse     string         `json:"warehouse"`
	Reason        string         `json:"reason"`
	TotalItems    int            `json:"totalItems"`
	TotalQuantity int            `json:"totalQuantity"`
	User          UserRefDTO     `json:"user"`
	CreatedAt     time.Time      `json:"createdAt"`
	Items         []BatchLineDTO `json:"items"`
}

// TransferBatchDTO lote de traslado en el historial.
type TransferBatchDTO struct {
	ID            string         `json:"id"`
	FromWarehouse string         `json:"fromWarehouse"`
	ToWarehouse   string         `json:"toWarehouse"`
	TotalItems    int            `json:"totalItems"`
	TotalQuantity int            `json:"totalQuantity"`
	User          UserRefDTO     `json:"user"`
	CreatedAt     time.Time      `json:"createdAt"`
	Items         []BatchLineDTO `json:"items"`
}

// UserRefDTO referencia mínima al usuario actor (como la devolvía la UI).
type UserRefDTO struct {
	Username string `json:"username"`
}

// CheckoutHistoryResponse página del historial de checkouts.
type CheckoutHistoryResponse struct {
	Items       []CheckoutBatchDTO `json:"items"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
	TotalItems  int                `json:"totalItems"`
}

// TransferHistoryResponse página del historial de traslados.
type TransferHistoryResponse struct {
	Items       []TransferBatchDTO `json:"items"`
	TotalPages  int                `json:"totalPages"`
	CurrentPage int                `json:"currentPage"`
	TotalItems  int                `json:"totalItems"`
}

// FromCheckoutBatch convierte la entidad al DTO del historial.
func FromCheckoutBatch(b *entity.CheckoutBatch) CheckoutBatchDTO {
	return CheckoutBatchDTO{
		ID:            b.ID,
		Warehouse:     b.Warehouse,
		Reason:        b.Reason,
		TotalItems:    b.TotalItems,
		TotalQuantity: b.TotalQuantity,
		User:          UserRefDTO{Username: b.Username},
		CreatedAt:     b.CreatedAt,
		Items:         fromLines(b.Lines),
	}
}

// FromTransferBatch convierte la entidad al DTO del historial.
func FromTransferBatch(b *entity.TransferBatch) TransferBatchDTO {
	return TransferBatchDTO{
		ID:            b.ID,
		FromWarehouse: b.FromWarehouse,
		ToWarehouse:   b.ToWarehouse,
		TotalItems:    b.TotalItems,
		TotalQuantity: b.TotalQuantity,
		User:          UserRefDTO{Username: b.Username},
		CreatedAt:     b.CreatedAt,
		Items:         fromLines(b.Lines),
	}
}

func fromLines(lines []entity.BatchLine) []BatchLineDTO {
	out := make([]BatchLineDTO, 0, len(lines))
	for _, l := range lines {
		out = append(out, BatchLineDTO{ItemCode: l.ItemCode, ItemName: l.ItemName, Quantity: l.Quantity})
	}
	return out
}
