package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas de solo lectura para el dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador de consultas del dashboard.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// InventoryTotals devuelve los agregados globales del inventario: número de
// artículos, unidades totales y valor total (SUM(quantity * price)).
func (r *DashboardRepo) InventoryTotals() (*repository.InventoryTotals, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(quantity * price), 0)
		FROM inventory_items`
	var t repository.InventoryTotals
	err := r.q.QueryRow(context.Background(), query).Scan(&t.TotalItems, &t.TotalQuantity, &t.TotalValue)
	if err != nil {
		return nil, fmt.Errorf("inventory totals: %w", err)
	}
	return &t, nil
}

// LowStockCount cuenta los artículos con stock en o por debajo del umbral.
func (r *DashboardRepo) LowStockCount(threshold int) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_items WHERE quantity <= $1`, threshold,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("low stock count: %w", err)
	}
	return count, nil
}

// DailyCheckoutQuantities agrupa las unidades retiradas por día desde `since`.
// Solo devuelve los días con actividad; los huecos los rellena el caso de uso.
func (r *DashboardRepo) DailyCheckoutQuantities(since time.Time) ([]repository.DailyQuantity, error) {
	query := `
		SELECT date_trunc('day', created_at) AS day, COALESCE(SUM(total_quantity), 0)
		FROM checkout_batches
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day ASC`
	rows, err := r.q.Query(context.Background(), query, since)
	if err != nil {
		return nil, fmt.Errorf("daily checkout quantities: %w", err)
	}
	defer rows.Close()

	var out []repository.DailyQuantity
	for rows.Next() {
		var d repository.DailyQuantity
		if err := rows.Scan(&d.Date, &d.Quantity); err != nil {
			return nil, fmt.Errorf("scan daily quantity: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily quantities: %w", err)
	}
	return out, nil
}

// WarehouseDistribution devuelve las unidades en stock por bodega.
func (r *DashboardRepo) WarehouseDistribution() ([]repository.WarehouseQuantity, error) {
	query := `
		SELECT warehouse, COALESCE(SUM(quantity), 0)
		FROM inventory_items
		GROUP BY warehouse
		ORDER BY warehouse ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("warehouse distribution: %w", err)
	}
	defer rows.Close()

	var out []repository.WarehouseQuantity
	for rows.Next() {
		var w repository.WarehouseQuantity
		if err := rows.Scan(&w.Warehouse, &w.Quantity); err != nil {
			return nil, fmt.Errorf("scan warehouse quantity: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate warehouse quantities: %w", err)
	}
	return out, nil
}
