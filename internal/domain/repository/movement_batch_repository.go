package repository

import "github.com/bountygroup/drinks-inventory-api/internal/domain/entity"

// BatchFilter parámetros de paginación/búsqueda sobre el historial de lotes.
type BatchFilter struct {
	Search string
	Page   int
	Limit  int
}

// CheckoutBatchRepository define el puerto de persistencia del libro de
// checkouts. Create y Delete se usan dentro de la transacción del motor;
// List busca sobre reason y sobre las líneas embebidas.
type CheckoutBatchRepository interface {
	Create(batch *entity.CheckoutBatch) error
	GetByID(id string) (*entity.CheckoutBatch, error)
	Delete(id string) error
	List(filter BatchFilter) ([]*entity.CheckoutBatch, int, error)
}

// TransferBatchRepository define el puerto de persistencia del libro de
// traslados entre bodegas.
type TransferBatchRepository interface {
	Create(batch *entity.TransferBatch) error
	GetByID(id string) (*entity.TransferBatch, error)
	Delete(id string) error
	List(filter BatchFilter) ([]*entity.TransferBatch, int, error)
}
