package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bountygroup/drinks-inventory-api/internal/domain"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación del puerto StockItemRepository sobre PostgreSQL
// (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de persistencia para artículos. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, name, code, quantity, price, category, condition, image, note, warehouse, COALESCE(updated_by::text, ''), created_at, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var it entity.StockItem
	err := row.Scan(
		&it.ID, &it.Name, &it.Code, &it.Quantity, &it.Price, &it.Category,
		&it.Condition, &it.Image, &it.Note, &it.Warehouse, &it.UpdatedBy,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// GetByID obtiene un artículo por ID, con el username del último editor.
// Devuelve (nil, nil) si no existe.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `
		SELECT i.id, i.name, i.code, i.quantity, i.price, i.category, i.condition,
		       i.image, i.note, i.warehouse, COALESCE(i.updated_by::text, ''),
		       COALESCE(u.username, ''), i.created_at, i.updated_at
		FROM inventory_items i
		LEFT JOIN users u ON u.id = i.updated_by
		WHERE i.id = $1`
	var it entity.StockItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.Name, &it.Code, &it.Quantity, &it.Price, &it.Category,
		&it.Condition, &it.Image, &it.Note, &it.Warehouse, &it.UpdatedBy,
		&it.UpdatedByName, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// GetByCode obtiene un artículo por (code, warehouse). Devuelve (nil, nil) si no existe.
func (r *StockItemRepo) GetByCode(code, warehouse string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM inventory_items WHERE code = $1 AND warehouse = $2`
	it, err := scanStockItem(r.q.QueryRow(context.Background(), query, code, warehouse))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	return it, nil
}

// GetByCodeForUpdate obtiene un artículo por (code, warehouse) bloqueando la
// fila hasta el fin de la transacción. Devuelve (nil, nil) si no existe.
func (r *StockItemRepo) GetByCodeForUpdate(code, warehouse string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM inventory_items WHERE code = $1 AND warehouse = $2 FOR UPDATE`
	it, err := scanStockItem(r.q.QueryRow(context.Background(), query, code, warehouse))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock item by code: %w", err)
	}
	return it, nil
}

// Create persiste un nuevo artículo. La pareja (code, warehouse) es única.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO inventory_items (id, name, code, quantity, price, category, condition, image, note, warehouse, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Code, item.Quantity, item.Price, item.Category,
		item.Condition, item.Image, item.Note, item.Warehouse, item.UpdatedBy,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update actualiza un artículo existente (toda la fila menos id/created_at).
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE inventory_items
		SET name = $2, code = $3, quantity = $4, price = $5, category = $6,
		    condition = $7, image = $8, note = $9, warehouse = $10,
		    updated_by = NULLIF($11, ''), updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Code, item.Quantity, item.Price, item.Category,
		item.Condition, item.Image, item.Note, item.Warehouse, item.UpdatedBy,
		item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un artículo por ID.
func (r *StockItemRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista artículos filtrando por bodega y texto libre (name, code,
// category) con paginación. Incluye el username del último editor (join de
// lectura). Devuelve la página y el total sin paginar.
func (r *StockItemRepo) List(filter repository.ItemFilter) ([]*entity.StockItem, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0

	if filter.Warehouse != "" && filter.Warehouse != "All" {
		n++
		where += fmt.Sprintf(" AND i.warehouse = $%d", n)
		args = append(args, filter.Warehouse)
	}
	if filter.Search != "" {
		n++
		where += fmt.Sprintf(" AND (i.name ILIKE $%d OR i.code ILIKE $%d OR i.category ILIKE $%d)", n, n, n)
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM inventory_items i` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT i.id, i.name, i.code, i.quantity, i.price, i.category, i.condition,
		       i.image, i.note, i.warehouse, COALESCE(i.updated_by::text, ''),
		       COALESCE(u.username, ''), i.created_at, i.updated_at
		FROM inventory_items i
		LEFT JOIN users u ON u.id = i.updated_by` + where +
		fmt.Sprintf(" ORDER BY i.updated_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := make([]*entity.StockItem, 0, filter.Limit)
	for rows.Next() {
		var it entity.StockItem
		if err := rows.Scan(
			&it.ID, &it.Name, &it.Code, &it.Quantity, &it.Price, &it.Category,
			&it.Condition, &it.Image, &it.Note, &it.Warehouse, &it.UpdatedBy,
			&it.UpdatedByName, &it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}
	return items, total, nil
}
