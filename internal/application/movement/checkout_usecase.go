package movement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bountygroup/drinks-inventory-api/internal/application/audit"
	"github.com/bountygroup/drinks-inventory-api/internal/application/dto"
	"github.com/bountygroup/drinks-inventory-api/internal/domain"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/role"
	"github.com/bountygroup/drinks-inventory-api/pkg/config"
)

// CheckoutUseCase ejecuta checkouts (consumo de stock) y sus reversiones de
// forma transaccional, con bloqueo de fila (SELECT FOR UPDATE) en orden
// determinista y Commit/Rollback.
type CheckoutUseCase struct {
	txRunner  TxRunner
	batchRepo repository.CheckoutBatchRepository // atado al pool, solo historial
	inv       config.InventoryConfig
	recorder  *audit.Recorder
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(
	txRunner TxRunner,
	batchRepo repository.CheckoutBatchRepository,
	inv config.InventoryConfig,
	recorder *audit.Recorder,
) *CheckoutUseCase {
	return &CheckoutUseCase{txRunner: txRunner, batchRepo: batchRepo, inv: inv, recorder: recorder}
}

// Checkout valida todas las líneas contra un snapshot bloqueado y solo
// entonces descuenta stock y escribe el lote. La bodega origen es fija por
// despliegue (Inventory.CheckoutWarehouse). Cualquier error deja el stock
// exactamente como estaba.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, actor domain.Actor, in dto.CheckoutRequest) (*dto.BatchSummaryResponse, error) {
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	warehouse := uc.inv.CheckoutWarehouse

	var batch *entity.CheckoutBatch
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		checkoutRepo repository.CheckoutBatchRepository,
		_ repository.TransferBatchRepository,
	) error {
		// Bloquea todas las filas afectadas en orden ascendente de código.
		locked := make(map[string]*entity.StockItem)
		for _, code := range uniqueCodesSorted(in.Items) {
			item, err := itemRepo.GetByCodeForUpdate(code, warehouse)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.NewItemError(domain.ErrNotFound, code, warehouse)
			}
			locked[code] = item
		}

		// Valida todas las líneas contra el snapshot bloqueado antes de mutar
		// cualquiera: un fallo en la línea N no debe dejar descontadas las
		// anteriores. remaining acumula para soportar códigos repetidos.
		remaining := make(map[string]int, len(locked))
		for code, item := range locked {
			remaining[code] = item.Quantity
		}
		for _, line := range in.Items {
			if remaining[line.ItemCode] < line.Quantity {
				return domain.NewItemError(domain.ErrInsufficientStock, line.ItemCode, warehouse)
			}
			remaining[line.ItemCode] -= line.Quantity
		}

		// Aplica los descuentos y estampa el usuario actor.
		now := time.Now()
		for _, code := range sortedKeys(locked) {
			item := locked[code]
			item.Quantity = remaining[code]
			item.UpdatedBy = actor.ID
			item.UpdatedAt = now
			if err := itemRepo.Update(item); err != nil {
				return err
			}
		}

		// Líneas normalizadas con snapshot de nombre, en el orden de entrada.
		lines := make([]entity.BatchLine, 0, len(in.Items))
		for _, line := range in.Items {
			lines = append(lines, entity.BatchLine{
				ItemCode: line.ItemCode,
				ItemName: locked[line.ItemCode].Name,
				Quantity: line.Quantity,
			})
		}
		totalItems, totalQuantity := entity.LineTotals(lines)
		batch = &entity.CheckoutBatch{
			ID:            uuid.New().String(),
			Lines:         lines,
			Warehouse:     warehouse,
			Reason:        in.Reason,
			TotalItems:    totalItems,
			TotalQuantity: totalQuantity,
			UserID:        actor.ID,
			CreatedAt:     now,
		}
		return checkoutRepo.Create(batch)
	})
	if err != nil {
		return nil, err
	}

	// Auditoría best-effort, fuera de la transacción ya confirmada.
	uc.recorder.Record(actor, audit.Entry{
		Action:      "checkout.create",
		EntityType:  "CheckoutBatch",
		EntityID:    batch.ID,
		Description: fmt.Sprintf("Checkout de %d líneas (%d unidades) en %s", batch.TotalItems, batch.TotalQuantity, warehouse),
		Metadata:    map[string]any{"reason": in.Reason, "lines": batch.Lines},
	})

	return &dto.BatchSummaryResponse{
		Message:       "Checkout successful",
		BatchID:       batch.ID,
		Count:         batch.TotalItems,
		TotalQuantity: batch.TotalQuantity,
	}, nil
}

// DeleteCheckout revierte un lote de checkout: devuelve cada línea al stock
// de la bodega del lote y borra el registro, todo en una transacción. Si la
// fila del artículo ya no existe se recrea mínima (nombre, código, cantidad,
// bodega); el precio y la categoría originales se pierden. Es una reversión
// con pérdida aceptada, no un fallo.
func (uc *CheckoutUseCase) DeleteCheckout(ctx context.Context, actor domain.Actor, batchID string) error {
	if !role.Allows(actor.Role, role.CapDeleteMovement) {
		return domain.ErrForbidden
	}

	var deleted *entity.CheckoutBatch
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		checkoutRepo repository.CheckoutBatchRepository,
		_ repository.TransferBatchRepository,
	) error {
		batch, err := checkoutRepo.GetByID(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		restore := make(map[string]int)
		names := make(map[string]string)
		for _, line := range batch.Lines {
			restore[line.ItemCode] += line.Quantity
			names[line.ItemCode] = line.ItemName
		}
		for _, code := range sortedKeys(restore) {
			item, err := itemRepo.GetByCodeForUpdate(code, batch.Warehouse)
			if err != nil {
				return err
			}
			if item != nil {
				item.Quantity += restore[code]
				item.UpdatedBy = actor.ID
				item.UpdatedAt = now
				if err := itemRepo.Update(item); err != nil {
					return err
				}
				continue
			}
			// La fila fue borrada manualmente después del checkout: se recrea
			// con lo único que el snapshot conserva.
			recreated := &entity.StockItem{
				ID:        uuid.New().String(),
				Name:      names[code],
				Code:      code,
				Quantity:  restore[code],
				Condition: entity.ConditionGood,
				Warehouse: batch.Warehouse,
				UpdatedBy: actor.ID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := itemRepo.Create(recreated); err != nil {
				return err
			}
		}
		deleted = batch
		return checkoutRepo.Delete(batch.ID)
	})
	if err != nil {
		return err
	}

	uc.recorder.Record(actor, audit.Entry{
		Action:      "checkout.delete",
		EntityType:  "CheckoutBatch",
		EntityID:    deleted.ID,
		Description: fmt.Sprintf("Checkout revertido: %d unidades devueltas a %s", deleted.TotalQuantity, deleted.Warehouse),
		Metadata:    map[string]any{"lines": deleted.Lines},
	})
	return nil
}

// History devuelve el historial paginado de checkouts, más reciente primero.
func (uc *CheckoutUseCase) History(ctx context.Context, q dto.PageQuery) (*dto.CheckoutHistoryResponse, error) {
	q.Normalize()
	batches, total, err := uc.batchRepo.List(repository.BatchFilter{
		Search: q.Search,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CheckoutBatchDTO, 0, len(batches))
	for _, b := range batches {
		items = append(items, dto.FromCheckoutBatch(b))
	}
	return &dto.CheckoutHistoryResponse{
		Items:       items,
		TotalPages:  dto.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		TotalItems:  total,
	}, nil
}
