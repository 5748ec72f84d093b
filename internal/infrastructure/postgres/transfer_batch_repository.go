package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bountygroup/drinks-inventory-api/internal/domain"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
)

var _ repository.TransferBatchRepository = (*TransferBatchRepo)(nil)

// TransferBatchRepo implementación del puerto TransferBatchRepository sobre
// PostgreSQL. Mismo esquema embebido que los checkouts, con par de bodegas.
type TransferBatchRepo struct {
	q Querier
}

// NewTransferBatchRepository construye el adaptador del libro de traslados. Pasar pool o tx (Querier).
func NewTransferBatchRepository(q Querier) *TransferBatchRepo {
	return &TransferBatchRepo{q: q}
}

// Create persiste un nuevo lote de traslado.
func (r *TransferBatchRepo) Create(batch *entity.TransferBatch) error {
	lines, err := json.Marshal(batch.Lines)
	if err != nil {
		return fmt.Errorf("marshal transfer lines: %w", err)
	}
	query := `
		INSERT INTO stock_transfer_batches (id, lines, from_warehouse, to_warehouse, total_items, total_quantity, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		batch.ID, lines, batch.FromWarehouse, batch.ToWarehouse,
		batch.TotalItems, batch.TotalQuantity, batch.UserID, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote de traslado por ID. Devuelve (nil, nil) si no existe.
func (r *TransferBatchRepo) GetByID(id string) (*entity.TransferBatch, error) {
	query := `
		SELECT b.id, b.lines, b.from_warehouse, b.to_warehouse, b.total_items,
		       b.total_quantity, b.user_id, COALESCE(u.username, ''), b.created_at
		FROM stock_transfer_batches b
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.id = $1`
	b, err := scanTransferBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer batch: %w", err)
	}
	return b, nil
}

// Delete elimina un lote de traslado por ID.
func (r *TransferBatchRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM stock_transfer_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transfer batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve el historial de traslados más recientes primero, buscando
// sobre las bodegas y sobre las líneas embebidas.
func (r *TransferBatchRepo) List(filter repository.BatchFilter) ([]*entity.TransferBatch, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0

	if filter.Search != "" {
		n++
		where += fmt.Sprintf(" AND (b.from_warehouse ILIKE $%d OR b.to_warehouse ILIKE $%d OR b.lines::text ILIKE $%d)", n, n, n)
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM stock_transfer_batches b` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transfer batches: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT b.id, b.lines, b.from_warehouse, b.to_warehouse, b.total_items,
		       b.total_quantity, b.user_id, COALESCE(u.username, ''), b.created_at
		FROM stock_transfer_batches b
		LEFT JOIN users u ON u.id = b.user_id` + where +
		fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transfer batches: %w", err)
	}
	defer rows.Close()

	batches := make([]*entity.TransferBatch, 0, filter.Limit)
	for rows.Next() {
		b, err := scanTransferBatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transfer batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transfer batches: %w", err)
	}
	return batches, total, nil
}

func scanTransferBatch(row pgx.Row) (*entity.TransferBatch, error) {
	var b entity.TransferBatch
	var lines []byte
	err := row.Scan(
		&b.ID, &lines, &b.FromWarehouse, &b.ToWarehouse, &b.TotalItems,
		&b.TotalQuantity, &b.UserID, &b.Username, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &b.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal transfer lines: %w", err)
	}
	return &b, nil
}
