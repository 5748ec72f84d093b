package movement

import (
	"context"

	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos: o toda la operación (filas de stock + lote) queda aplicada,
// o nada queda aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		checkoutRepo repository.CheckoutBatchRepository,
		transferRepo repository.TransferBatchRepository,
	) error) error
}
