package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsResponse agregados para el tablero principal.
type DashboardStatsResponse struct {
	TotalItems     int                 `json:"totalItems"`
	TotalQuantity  int                 `json:"totalQuantity"`
	TotalValue     decimal.Decimal     `json:"totalValue"`
	LowStockCount  int                 `json:"lowStockCount"`
	RecentActivity []ActivityDTO       `json:"recentActivity"`
	ChartData      []DailyQuantityDTO  `json:"chartData"`
	WarehouseStats []WarehouseStatsDTO `json:"warehouseStats"`
}

// ActivityDTO un movimiento reciente (checkout o traslado) normalizado.
type ActivityDTO struct {
	Type        string    `json:"type"` // checkout | transfer
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Description string    `json:"description"`
	Count       int       `json:"count"`
	Quantity    int       `json:"quantity"`
	Date        time.Time `json:"date"`
}

// DailyQuantityDTO cantidad de checkout por día para la gráfica semanal.
type DailyQuantityDTO struct {
	Date     string `json:"date"`     // día de la semana abreviado
	FullDate string `json:"fullDate"` // YYYY-MM-DD
	Quantity int    `json:"quantity"`
}

// WarehouseStatsDTO distribución de stock por bodega.
type WarehouseStatsDTO struct {
	Warehouse string `json:"warehouse"`
	Quantity  int    `json:"totalQty"`
}
