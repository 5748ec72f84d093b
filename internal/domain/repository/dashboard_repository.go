package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryTotals agregados globales del inventario.
type InventoryTotals struct {
	TotalItems    int
	TotalQuantity int
	TotalValue    decimal.Decimal // SUM(quantity * price)
}

// DailyQuantity cantidad total de checkout agrupada por día.
type DailyQuantity struct {
	Date     time.Time
	Quantity int
}

// WarehouseQuantity cantidad total en stock por bodega.
type WarehouseQuantity struct {
	Warehouse string
	Quantity  int
}

// DashboardRepository define el puerto de consultas agregadas de solo lectura
// para el dashboard. Sin invariantes propias: lee inventario y libro de
// movimientos tal como están.
type DashboardRepository interface {
	InventoryTotals() (*InventoryTotals, error)
	LowStockCount(threshold int) (int, error)
	DailyCheckoutQuantities(since time.Time) ([]DailyQuantity, error)
	WarehouseDistribution() ([]WarehouseQuantity, error)
}
