package repository

import (
	"time"

	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
)

// LogFilter filtros para la consulta de auditoría.
type LogFilter struct {
	Username   string
	Action     string
	EntityType string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

// AuditLogRepository define el puerto de persistencia de auditoría.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	List(filter LogFilter) ([]*entity.AuditLog, int, error)
}
