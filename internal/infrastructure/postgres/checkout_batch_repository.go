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

var _ repository.CheckoutBatchRepository = (*CheckoutBatchRepo)(nil)

// CheckoutBatchRepo implementación del puerto CheckoutBatchRepository sobre
// PostgreSQL. Las líneas del lote viven embebidas en la fila como JSONB.
type CheckoutBatchRepo struct {
	q Querier
}

// NewCheckoutBatchRepository construye el adaptador del libro de checkouts. Pasar pool o tx (Querier).
func NewCheckoutBatchRepository(q Querier) *CheckoutBatchRepo {
	return &CheckoutBatchRepo{q: q}
}

// Create persiste un nuevo lote de checkout.
func (r *CheckoutBatchRepo) Create(batch *entity.CheckoutBatch) error {
	lines, err := json.Marshal(batch.Lines)
	if err != nil {
		return fmt.Errorf("marshal checkout lines: %w", err)
	}
	query := `
		INSERT INTO checkout_batches (id, lines, warehouse, reason, total_items, total_quantity, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		batch.ID, lines, batch.Warehouse, batch.Reason,
		batch.TotalItems, batch.TotalQuantity, batch.UserID, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert checkout batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote de checkout por ID. Devuelve (nil, nil) si no existe.
func (r *CheckoutBatchRepo) GetByID(id string) (*entity.CheckoutBatch, error) {
	query := `
		SELECT b.id, b.lines, b.warehouse, b.reason, b.total_items, b.total_quantity,
		       b.user_id, COALESCE(u.username, ''), b.created_at
		FROM checkout_batches b
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.id = $1`
	b, err := scanCheckoutBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get checkout batch: %w", err)
	}
	return b, nil
}

// Delete elimina un lote de checkout por ID.
func (r *CheckoutBatchRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM checkout_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete checkout batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve el historial de checkouts más recientes primero, buscando
// sobre la razón y sobre las líneas embebidas (nombres y códigos).
func (r *CheckoutBatchRepo) List(filter repository.BatchFilter) ([]*entity.CheckoutBatch, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0

	if filter.Search != "" {
		n++
		where += fmt.Sprintf(" AND (b.reason ILIKE $%d OR b.lines::text ILIKE $%d)", n, n)
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM checkout_batches b` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count checkout batches: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT b.id, b.lines, b.warehouse, b.reason, b.total_items, b.total_quantity,
		       b.user_id, COALESCE(u.username, ''), b.created_at
		FROM checkout_batches b
		LEFT JOIN users u ON u.id = b.user_id` + where +
		fmt.Sprintf(" ORDER BY b.created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list checkout batches: %w", err)
	}
	defer rows.Close()

	batches := make([]*entity.CheckoutBatch, 0, filter.Limit)
	for rows.Next() {
		b, err := scanCheckoutBatch(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan checkout batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate checkout batches: %w", err)
	}
	return batches, total, nil
}

func scanCheckoutBatch(row pgx.Row) (*entity.CheckoutBatch, error) {
	var b entity.CheckoutBatch
	var lines []byte
	err := row.Scan(
		&b.ID, &lines, &b.Warehouse, &b.Reason, &b.TotalItems, &b.TotalQuantity,
		&b.UserID, &b.Username, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &b.Lines); err != nil {
		return nil, fmt.Errorf("unmarshal checkout lines: %w", err)
	}
	return &b, nil
}
