package dto

import (
	"time"

	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
)

// LogsQuery filtros de GET /api/logs.
type LogsQuery struct {
	User       string `query:"user"`
	Action     string `query:"action"`
	EntityType string `query:"entityType"`
	StartDate  string `query:"startDate"` // YYYY-MM-DD
	EndDate    string `query:"endDate"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

// AuditLogDTO registro de auditoría en las respuestas.
type AuditLogDTO struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entityType"`
	EntityID    string    `json:"entityId"`
	Description string    `json:"description"`
	Metadata    string    `json:"metadata"`
	IP          string    `json:"ip"`
	UserAgent   string    `json:"userAgent"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LogsResponse página de registros de auditoría.
type LogsResponse struct {
	Logs        []AuditLogDTO `json:"logs"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	TotalItems  int           `json:"totalItems"`
}

// FromAuditLog convierte la entidad al DTO de respuesta.
func FromAuditLog(l *entity.AuditLog) AuditLogDTO {
	return AuditLogDTO{
		ID:          l.ID,
		Username:    l.Username,
		Role:        l.Role,
		Action:      l.Action,
		EntityType:  l.EntityType,
		EntityID:    l.EntityID,
		Description: l.Description,
		Metadata:    l.Metadata,
		IP:          l.IP,
		UserAgent:   l.UserAgent,
		CreatedAt:   l.CreatedAt,
	}
}
