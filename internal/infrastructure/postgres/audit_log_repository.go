package postgres

import (
	"context"
	"fmt"

	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación del puerto AuditLogRepository sobre PostgreSQL.
// La escritura es best-effort desde el Recorder: aquí solo persistimos.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de auditoría. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste un registro de auditoría.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, username, role, action, entity_type, entity_id, description, metadata, ip, user_agent, created_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::jsonb, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.UserID, log.Username, log.Role, log.Action, log.EntityType,
		log.EntityID, log.Description, log.Metadata, log.IP, log.UserAgent, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List devuelve registros de auditoría filtrados y paginados, más recientes primero.
func (r *AuditLogRepo) List(filter repository.LogFilter) ([]*entity.AuditLog, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0

	if filter.Username != "" {
		n++
		where += fmt.Sprintf(" AND username ILIKE $%d", n)
		args = append(args, "%"+filter.Username+"%")
	}
	if filter.Action != "" {
		n++
		where += fmt.Sprintf(" AND action = $%d", n)
		args = append(args, filter.Action)
	}
	if filter.EntityType != "" {
		n++
		where += fmt.Sprintf(" AND entity_type = $%d", n)
		args = append(args, filter.EntityType)
	}
	if filter.StartDate != nil {
		n++
		where += fmt.Sprintf(" AND created_at >= $%d", n)
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		n++
		where += fmt.Sprintf(" AND created_at <= $%d", n)
		args = append(args, *filter.EndDate)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM audit_logs` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `
		SELECT id, COALESCE(user_id::text, ''), username, role, action, entity_type,
		       entity_id, description, COALESCE(metadata::text, ''), ip, user_agent, created_at
		FROM audit_logs` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, filter.Limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*entity.AuditLog, 0, filter.Limit)
	for rows.Next() {
		var l entity.AuditLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.Username, &l.Role, &l.Action, &l.EntityType,
			&l.EntityID, &l.Description, &l.Metadata, &l.IP, &l.UserAgent, &l.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate audit logs: %w", err)
	}
	return logs, total, nil
}
