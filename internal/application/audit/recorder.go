package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/bountygroup/drinks-inventory-api/internal/domain"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/entity"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
	"github.com/bountygroup/drinks-inventory-api/pkg/logger"
)

// Entry describe una mutación ya confirmada para el registro de auditoría.
type Entry struct {
	Action      string
	EntityType  string
	EntityID    string
	Description string
	Metadata    map[string]any
}

// Recorder escribe registros de auditoría best-effort. Se invoca después del
// commit de la operación de negocio; si falla, se registra en el log del
// servidor y la operación queda en pie sin auditar.
type Recorder struct {
	repo repository.AuditLogRepository
	log  *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log}
}

// Record persiste la entrada. Nunca devuelve error: el fallo de auditoría no
// debe revertir ni fallar la mutación que la originó.
func (r *Recorder) Record(actor domain.Actor, e Entry) {
	var metadata string
	if e.Metadata != nil {
		raw, err := json.Marshal(e.Metadata)
		if err == nil {
			metadata = string(raw)
		}
	}
	entry := &entity.AuditLog{
		ID:          uuid.New().String(),
		UserID:      actor.ID,
		Username:    actor.Username,
		Role:        actor.Role,
		Action:      e.Action,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Description: e.Description,
		Metadata:    metadata,
		IP:          actor.IP,
		UserAgent:   actor.UserAgent,
		CreatedAt:   time.Now(),
	}
	if err := r.repo.Create(entry); err != nil {
		r.log.Error().Err(err).
			Str("action", e.Action).
			Str("entity_type", e.EntityType).
			Str("entity_id", e.EntityID).
			Msg("registro de auditoría falló; la mutación queda sin auditar")
	}
}
