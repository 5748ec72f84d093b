package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
)

// CreateItemRequest cuerpo de POST /api/inventory.
type CreateItemRequest struct {
	Name      string          `json:"name" validate:"required"`
	Code      string          `json:"code" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Condition string          `json:"condition" validate:"omitempty,oneof=good bad"`
	Image     string          `json:"image"`
	Note      string          `json:"note"`
	Warehouse string          `json:"warehouse" validate:"required"`
}

// UpdateItemRequest cuerpo de PUT /api/inventory/:id. Campos nil = sin cambio.
type UpdateItemRequest struct {
	Name      *string          `json:"name"`
	Code      *string          `json:"code"`
	Quantity  *int             `json:"quantity" validate:"omitempty,gte=0"`
	Price     *decimal.Decimal `json:"price"`
	Category  *string          `json:"category"`
	Condition *string          `json:"condition" validate:"omitempty,oneof=good bad"`
	Image     *string          `json:"image"`
	Note      *string          `json:"note"`
	Warehouse *string          `json:"warehouse"`
}

// ItemDTO artículo de inventario en las respuestas.
type ItemDTO struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Code          string          `json:"code"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	Condition     string          `json:"condition"`
	Image         string          `json:"image"`
	Note          string          `json:"note"`
	Warehouse     string          `json:"warehouse"`
	LastUpdatedBy UserRefDTO      `json:"lastUpdatedBy"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ItemListResponse página del listado de inventario.
type ItemListResponse struct {
	Items       []ItemDTO `json:"items"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	TotalItems  int       `json:"totalItems"`
}

// FromStockItem convierte la entidad al DTO de respuesta.
func FromStockItem(it *entity.StockItem) ItemDTO {
	return ItemDTO{
		ID:            it.ID,
		Name:          it.Name,
		Code:          it.Code,
		Quantity:      it.Quantity,
		Price:         it.Price,
		Category:      it.Category,
		Condition:     it.Condition,
		Image:         it.Image,
		Note:          it.Note,
		Warehouse:     it.Warehouse,
		LastUpdatedBy: UserRefDTO{Username: it.UpdatedByName},
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
