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

// TransferUseCase ejecuta traslados entre bodegas y sus reversiones de forma
// transaccional. Por cada código se bloquean la fila origen y la destino en
// orden ascendente de nombre de bodega, el mismo orden en todas las
// operaciones del motor.
type TransferUseCase struct {
	txRunner  TxRunner
	batchRepo repository.TransferBatchRepository // atado al pool, solo historial
	inv       config.InventoryConfig
	recorder  *audit.Recorder
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	batchRepo repository.TransferBatchRepository,
	inv config.InventoryConfig,
	recorder *audit.Recorder,
) *TransferUseCase {
	return &TransferUseCase{txRunner: txRunner, batchRepo: batchRepo, inv: inv, recorder: recorder}
}

// Transfer mueve stock de una bodega a otra. Si el artículo no existe en la
// bodega destino se crea ahí copiando los campos descriptivos del origen.
// El fallo de cualquier línea revierte el traslado completo.
func (uc *TransferUseCase) Transfer(ctx context.Context, actor domain.Actor, in dto.TransferRequest) (*dto.BatchSummaryResponse, error) {
	if err := validateLines(in.Items); err != nil {
		return nil, err
	}
	if in.FromWarehouse == in.ToWarehouse {
		return nil, domain.ErrInvalidInput
	}
	if !uc.inv.HasWarehouse(in.FromWarehouse) || !uc.inv.HasWarehouse(in.ToWarehouse) {
		return nil, domain.ErrInvalidInput
	}

	var batch *entity.TransferBatch
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		_ repository.CheckoutBatchRepository,
		transferRepo repository.TransferBatchRepository,
	) error {
		// Bloquea origen y destino de cada código; por código, primero la
		// bodega de nombre menor. dest[code] == nil significa que el destino
		// no tiene fila todavía.
		source := make(map[string]*entity.StockItem)
		dest := make(map[string]*entity.StockItem)
		for _, code := range uniqueCodesSorted(in.Items) {
			for _, wh := range lockOrder(in.FromWarehouse, in.ToWarehouse) {
				item, err := itemRepo.GetByCodeForUpdate(code, wh)
				if err != nil {
					return err
				}
				if wh == in.FromWarehouse {
					source[code] = item
				} else {
					dest[code] = item
				}
			}
			if source[code] == nil {
				return domain.NewItemError(domain.ErrNotFound, code, in.FromWarehouse)
			}
		}

		// Valida la suficiencia de todas las líneas (acumulando códigos
		// repetidos) contra el snapshot bloqueado.
		remaining := make(map[string]int, len(source))
		moved := make(map[string]int, len(source))
		for code, item := range source {
			remaining[code] = item.Quantity
		}
		for _, line := range in.Items {
			if remaining[line.ItemCode] < line.Quantity {
				return domain.NewItemError(domain.ErrInsufficientStock, line.ItemCode, in.FromWarehouse)
			}
			remaining[line.ItemCode] -= line.Quantity
			moved[line.ItemCode] += line.Quantity
		}

		// Aplica: descuenta origen, suma o crea destino.
		now := time.Now()
		for _, code := range sortedKeys(source) {
			src := source[code]
			src.Quantity = remaining[code]
			src.UpdatedBy = actor.ID
			src.UpdatedAt = now
			if err := itemRepo.Update(src); err != nil {
				return err
			}
			if d := dest[code]; d != nil {
				d.Quantity += moved[code]
				d.UpdatedBy = actor.ID
				d.UpdatedAt = now
				if err := itemRepo.Update(d); err != nil {
					return err
				}
				continue
			}
			created := &entity.StockItem{
				ID:        uuid.New().String(),
				Name:      src.Name,
				Code:      src.Code,
				Quantity:  moved[code],
				Price:     src.Price,
				Category:  src.Category,
				Condition: src.Condition,
				Image:     src.Image,
				Note:      src.Note,
				Warehouse: in.ToWarehouse,
				UpdatedBy: actor.ID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := itemRepo.Create(created); err != nil {
				return err
			}
		}

		lines := make([]entity.BatchLine, 0, len(in.Items))
		for _, line := range in.Items {
			lines = append(lines, entity.BatchLine{
				ItemCode: line.ItemCode,
				ItemName: source[line.ItemCode].Name,
				Quantity: line.Quantity,
			})
		}
		totalItems, totalQuantity := entity.LineTotals(lines)
		batch = &entity.TransferBatch{
			ID:            uuid.New().String(),
			Lines:         lines,
			FromWarehouse: in.FromWarehouse,
			ToWarehouse:   in.ToWarehouse,
			TotalItems:    totalItems,
			TotalQuantity: totalQuantity,
			UserID:        actor.ID,
			CreatedAt:     now,
		}
		return transferRepo.Create(batch)
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor, audit.Entry{
		Action:      "transfer.create",
		EntityType:  "TransferBatch",
		EntityID:    batch.ID,
		Description: fmt.Sprintf("Traslado de %d unidades de %s a %s", batch.TotalQuantity, in.FromWarehouse, in.ToWarehouse),
		Metadata:    map[string]any{"lines": batch.Lines},
	})

	return &dto.BatchSummaryResponse{
		Message:       "Transfer successful",
		BatchID:       batch.ID,
		Count:         batch.TotalItems,
		TotalQuantity: batch.TotalQuantity,
	}, nil
}

// DeleteTransfer revierte un traslado. A diferencia de la reversión de
// checkout, aquí la fila destino es la única fuente restante de los campos
// descriptivos: si fue agotada o borrada por debajo de lo trasladado no hay
// forma segura de revertir y la operación completa se rechaza con
// ErrInvalidState, sin tocar ninguna bodega.
func (uc *TransferUseCase) DeleteTransfer(ctx context.Context, actor domain.Actor, batchID string) error {
	if !role.Allows(actor.Role, role.CapDeleteMovement) {
		return domain.ErrForbidden
	}

	var deleted *entity.TransferBatch
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.StockItemRepository,
		_ repository.CheckoutBatchRepository,
		transferRepo repository.TransferBatchRepository,
	) error {
		batch, err := transferRepo.GetByID(batchID)
		if err != nil {
			return err
		}
		if batch == nil {
			return domain.ErrNotFound
		}

		revert := make(map[string]int)
		for _, line := range batch.Lines {
			revert[line.ItemCode] += line.Quantity
		}

		now := time.Now()
		for _, code := range sortedKeys(revert) {
			// Mismo orden de bloqueo que el traslado original.
			var source, dest *entity.StockItem
			for _, wh := range lockOrder(batch.FromWarehouse, batch.ToWarehouse) {
				item, err := itemRepo.GetByCodeForUpdate(code, wh)
				if err != nil {
					return err
				}
				if wh == batch.FromWarehouse {
					source = item
				} else {
					dest = item
				}
			}
			if dest == nil || dest.Quantity < revert[code] {
				return domain.NewItemError(domain.ErrInvalidState, code, batch.ToWarehouse)
			}

			dest.Quantity -= revert[code]
			dest.UpdatedBy = actor.ID
			dest.UpdatedAt = now
			if err := itemRepo.Update(dest); err != nil {
				return err
			}

			if source != nil {
				source.Quantity += revert[code]
				source.UpdatedBy = actor.ID
				source.UpdatedAt = now
				if err := itemRepo.Update(source); err != nil {
					return err
				}
				continue
			}
			recreated := &entity.StockItem{
				ID:        uuid.New().String(),
				Name:      dest.Name,
				Code:      code,
				Quantity:  revert[code],
				Price:     dest.Price,
				Category:  dest.Category,
				Condition: dest.Condition,
				Image:     dest.Image,
				Note:      dest.Note,
				Warehouse: batch.FromWarehouse,
				UpdatedBy: actor.ID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := itemRepo.Create(recreated); err != nil {
				return err
			}
		}
		deleted = batch
		return transferRepo.Delete(batch.ID)
	})
	if err != nil {
		return err
	}

	uc.recorder.Record(actor, audit.Entry{
		Action:      "transfer.delete",
		EntityType:  "TransferBatch",
		EntityID:    deleted.ID,
		Description: fmt.Sprintf("Traslado revertido: %d unidades devueltas de %s a %s", deleted.TotalQuantity, deleted.ToWarehouse, deleted.FromWarehouse),
		Metadata:    map[string]any{"lines": deleted.Lines},
	})
	return nil
}

// History devuelve el historial paginado de traslados, más reciente primero.
func (uc *TransferUseCase) History(ctx context.Context, q dto.PageQuery) (*dto.TransferHistoryResponse, error) {
	q.Normalize()
	batches, total, err := uc.batchRepo.List(repository.BatchFilter{
		Search: q.Search,
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferBatchDTO, 0, len(batches))
	for _, b := range batches {
		items = append(items, dto.FromTransferBatch(b))
	}
	return &dto.TransferHistoryResponse{
		Items:       items,
		TotalPages:  dto.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		TotalItems:  total,
	}, nil
}
