package repository

import "github.com/bountygroup/drinks-inventory-api/internal/domain/entity"

// ItemFilter parámetros de listado/búsqueda de artículos.
type ItemFilter struct {
	Warehouse string // vacío o "All" = todas las bodegas
	Search    string // busca en name, code y category
	Page      int
	Limit     int
}

// StockItemRepository define el puerto de persistencia para artículos de
// inventario. Los Get* devuelven (nil, nil) si la fila no existe.
// Usado dentro de transacciones para garantizar consistencia del motor de
// movimientos; GetByCodeForUpdate bloquea la fila (SELECT FOR UPDATE).
type StockItemRepository interface {
	GetByID(id string) (*entity.StockItem, error)
	GetByCode(code, warehouse string) (*entity.StockItem, error)
	GetByCodeForUpdate(code, warehouse string) (*entity.StockItem, error)
	Create(item *entity.StockItem) error
	Update(item *entity.StockItem) error
	Delete(id string) error
	List(filter ItemFilter) ([]*entity.StockItem, int, error)
}
