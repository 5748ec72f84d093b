package usecase

import (
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

// InventoryUseCase CRUD de artículos de inventario. Las mutaciones de
// cantidad por movimiento NO pasan por aquí: eso es del motor de movimientos.
type InventoryUseCase struct {
	repo     repository.StockItemRepository
	inv      config.InventoryConfig
	recorder *audit.Recorder
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(repo repository.StockItemRepository, inv config.InventoryConfig, recorder *audit.Recorder) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, inv: inv, recorder: recorder}
}

// ItemsQuery parámetros de GET /api/inventory.
type ItemsQuery struct {
	Warehouse string
	Search    string
	Page      int
	Limit     int
}

// List devuelve artículos paginados, filtrables por bodega y búsqueda.
func (uc *InventoryUseCase) List(q ItemsQuery) (*dto.ItemListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	items, total, err := uc.repo.List(repository.ItemFilter{
		Warehouse: q.Warehouse,
		Search:    q.Search,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.FromStockItem(it))
	}
	return &dto.ItemListResponse{
		Items:       out,
		TotalPages:  dto.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		TotalItems:  total,
	}, nil
}

// Get devuelve un artículo por ID.
func (uc *InventoryUseCase) Get(id string) (*dto.ItemDTO, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromStockItem(item)
	return &out, nil
}

// Create da de alta un artículo. La pareja (code, warehouse) debe ser única.
func (uc *InventoryUseCase) Create(actor domain.Actor, in dto.CreateItemRequest) (*dto.ItemDTO, error) {
	if !role.Allows(actor.Role, role.CapManageItems) {
		return nil, domain.ErrForbidden
	}
	if !uc.inv.HasWarehouse(in.Warehouse) {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(in.Code, in.Warehouse)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewItemError(domain.ErrDuplicate, in.Code, in.Warehouse)
	}
	condition := in.Condition
	if condition == "" {
		condition = entity.ConditionGood
	}
	now := time.Now()
	item := &entity.StockItem{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Quantity:  in.Quantity,
		Price:     in.Price,
		Category:  in.Category,
		Condition: condition,
		Image:     in.Image,
		Note:      in.Note,
		Warehouse: in.Warehouse,
		UpdatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, audit.Entry{
		Action:      "item.create",
		EntityType:  "StockItem",
		EntityID:    item.ID,
		Description: "Artículo creado: " + item.Code + " en " + item.Warehouse,
	})
	out := dto.FromStockItem(item)
	return &out, nil
}

// Update edita campos de un artículo; los nil quedan como estaban.
func (uc *InventoryUseCase) Update(actor domain.Actor, id string, in dto.UpdateItemRequest) (*dto.ItemDTO, error) {
	if !role.Allows(actor.Role, role.CapManageItems) {
		return nil, domain.ErrForbidden
	}
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Code != nil {
		item.Code = *in.Code
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		item.Quantity = *in.Quantity
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.Price = *in.Price
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Condition != nil {
		item.Condition = *in.Condition
	}
	if in.Image != nil {
		item.Image = *in.Image
	}
	if in.Note != nil {
		item.Note = *in.Note
	}
	if in.Warehouse != nil {
		if !uc.inv.HasWarehouse(*in.Warehouse) {
			return nil, domain.ErrInvalidInput
		}
		item.Warehouse = *in.Warehouse
	}
	// La unicidad (code, warehouse) la garantiza el constraint; un duplicado
	// por edición vuelve como ErrDuplicate desde el repositorio.
	item.UpdatedBy = actor.ID
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor, audit.Entry{
		Action:      "item.update",
		EntityType:  "StockItem",
		EntityID:    item.ID,
		Description: "Artículo actualizado: " + item.Code + " en " + item.Warehouse,
	})
	out := dto.FromStockItem(item)
	return &out, nil
}

// Delete elimina un artículo por ID (borrado manual, nunca por movimientos).
func (uc *InventoryUseCase) Delete(actor domain.Actor, id string) error {
	if !role.Allows(actor.Role, role.CapManageItems) {
		return domain.ErrForbidden
	}
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.recorder.Record(actor, audit.Entry{
		Action:      "item.delete",
		EntityType:  "StockItem",
		EntityID:    id,
		Description: "Artículo eliminado: " + item.Code + " en " + item.Warehouse,
		Metadata:    map[string]any{"quantity": item.Quantity},
	})
	return nil
}
