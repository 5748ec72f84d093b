package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/bountygroup/drinks-inventory-api/internal/application/dto"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
	"github.com/bountygroup/drinks-inventory-api/pkg/config"
)

const recentActivityLimit = 5

// DashboardUseCase agrega métricas de solo lectura sobre inventario y libro
// de movimientos. Sin invariantes propias.
type DashboardUseCase struct {
	dashRepo     repository.DashboardRepository
	checkoutRepo repository.CheckoutBatchRepository
	transferRepo repository.TransferBatchRepository
	inv          config.InventoryConfig
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	dashRepo repository.DashboardRepository,
	checkoutRepo repository.CheckoutBatchRepository,
	transferRepo repository.TransferBatchRepository,
	inv config.InventoryConfig,
) *DashboardUseCase {
	return &DashboardUseCase{dashRepo: dashRepo, checkoutRepo: checkoutRepo, transferRepo: transferRepo, inv: inv}
}

// Stats arma la respuesta completa del dashboard: totales, stock bajo,
// actividad reciente, gráfica de checkouts de 7 días y distribución por bodega.
func (uc *DashboardUseCase) Stats() (*dto.DashboardStatsResponse, error) {
	totals, err := uc.dashRepo.InventoryTotals()
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.dashRepo.LowStockCount(uc.inv.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	activity, err := uc.recentActivity()
	if err != nil {
		return nil, err
	}
	chart, err := uc.weeklyChart()
	if err != nil {
		return nil, err
	}
	distribution, err := uc.dashRepo.WarehouseDistribution()
	if err != nil {
		return nil, err
	}
	warehouseStats := make([]dto.WarehouseStatsDTO, 0, len(distribution))
	for _, d := range distribution {
		warehouseStats = append(warehouseStats, dto.WarehouseStatsDTO{Warehouse: d.Warehouse, Quantity: d.Quantity})
	}

	return &dto.DashboardStatsResponse{
		TotalItems:     totals.TotalItems,
		TotalQuantity:  totals.TotalQuantity,
		TotalValue:     totals.TotalValue,
		LowStockCount:  lowStock,
		RecentActivity: activity,
		ChartData:      chart,
		WarehouseStats: warehouseStats,
	}, nil
}

// recentActivity combina los últimos checkouts y traslados en una sola lista.
func (uc *DashboardUseCase) recentActivity() ([]dto.ActivityDTO, error) {
	checkouts, _, err := uc.checkoutRepo.List(repository.BatchFilter{Page: 1, Limit: recentActivityLimit})
	if err != nil {
		return nil, err
	}
	transfers, _, err := uc.transferRepo.List(repository.BatchFilter{Page: 1, Limit: recentActivityLimit})
	if err != nil {
		return nil, err
	}

	activity := make([]dto.ActivityDTO, 0, len(checkouts)+len(transfers))
	for _, c := range checkouts {
		reason := c.Reason
		if reason == "" {
			reason = "No reason"
		}
		activity = append(activity, dto.ActivityDTO{
			Type:        "checkout",
			ID:          c.ID,
			User:        c.Username,
			Description: "Checkout: " + reason,
			Count:       c.TotalItems,
			Quantity:    c.TotalQuantity,
			Date:        c.CreatedAt,
		})
	}
	for _, t := range transfers {
		activity = append(activity, dto.ActivityDTO{
			Type:        "transfer",
			ID:          t.ID,
			User:        t.Username,
			Description: fmt.Sprintf("Transfer: %s -> %s", t.FromWarehouse, t.ToWarehouse),
			Count:       t.TotalItems,
			Quantity:    t.TotalQuantity,
			Date:        t.CreatedAt,
		})
	}
	sort.Slice(activity, func(i, j int) bool { return activity[i].Date.After(activity[j].Date) })
	if len(activity) > recentActivityLimit {
		activity = activity[:recentActivityLimit]
	}
	return activity, nil
}

// weeklyChart devuelve la cantidad de checkout por día de los últimos 7 días,
// rellenando con cero los días sin movimientos.
func (uc *DashboardUseCase) weeklyChart() ([]dto.DailyQuantityDTO, error) {
	now := time.Now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	daily, err := uc.dashRepo.DailyCheckoutQuantities(since)
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]int, len(daily))
	for _, d := range daily {
		byDate[d.Date.Format("2006-01-02")] = d.Quantity
	}

	chart := make([]dto.DailyQuantityDTO, 0, 7)
	for i := 0; i < 7; i++ {
		day := since.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		chart = append(chart, dto.DailyQuantityDTO{
			Date:     day.Format("Mon"),
			FullDate: key,
			Quantity: byDate[key],
		})
	}
	return chart, nil
}
