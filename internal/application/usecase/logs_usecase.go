package usecase

import (
	"time"

	"github.com/bountygroup/drinks-inventory-api/internal/application/dto"
	"github.com/bountygroup/drinks-inventory-api/internal/domain"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/repository"
	"github.com/bountygroup/drinks-inventory-api/internal/domain/role"
)

// LogsUseCase consulta de auditoría (admin y super admin).
type LogsUseCase struct {
	repo repository.AuditLogRepository
}

// NewLogsUseCase construye el caso de uso.
func NewLogsUseCase(repo repository.AuditLogRepository) *LogsUseCase {
	return &LogsUseCase{repo: repo}
}

// List devuelve registros de auditoría filtrados y paginados, más reciente
// primero. Las fechas vienen como YYYY-MM-DD y cubren el día completo.
func (uc *LogsUseCase) List(actor domain.Actor, q dto.LogsQuery) (*dto.LogsResponse, error) {
	if !role.Allows(actor.Role, role.CapViewLogs) {
		return nil, domain.ErrForbidden
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	filter := repository.LogFilter{
		Username:   q.User,
		Action:     q.Action,
		EntityType: q.EntityType,
		Page:       q.Page,
		Limit:      q.Limit,
	}
	if q.StartDate != "" {
		start, err := time.ParseInLocation("2006-01-02", q.StartDate, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.StartDate = &start
	}
	if q.EndDate != "" {
		end, err := time.ParseInLocation("2006-01-02", q.EndDate, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	logs, total, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.FromAuditLog(l))
	}
	return &dto.LogsResponse{
		Logs:        out,
		TotalPages:  dto.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		TotalItems:  total,
	}, nil
}
