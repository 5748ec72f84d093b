package entity

import "time"

// AuditLog es un registro de auditoría best-effort: se escribe después de cada
// mutación exitosa y su fallo nunca revierte la operación de negocio.
type AuditLog struct {
	ID          string
	UserID      string
	Username    string
	Role        string
	Action      string
	EntityType  string
	EntityID    string
	Description string
	Metadata    string // JSON serializado
	IP          string
	UserAgent   string
	CreatedAt   time.Time
}
