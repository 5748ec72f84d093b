package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bountygroup/drinks-inventory-api/internal/application/dto"
	"github.com/bountygroup/drinks-inventory-api/internal/application/usecase"
)

// LogsHandler expone la consulta de auditoría (protegido, según rol).
type LogsHandler struct {
	uc *usecase.LogsUseCase
}

// NewLogsHandler construye el handler.
func NewLogsHandler(uc *usecase.LogsUseCase) *LogsHandler {
	return &LogsHandler{uc: uc}
}

// List godoc
// @Summary      Consultar registros de auditoría
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        user        query  string  false  "Filtrar por username (parcial)"
// @Param        action      query  string  false  "Filtrar por acción exacta (ej. checkout.create)"
// @Param        entityType  query  string  false  "Filtrar por tipo de entidad"
// @Param        startDate   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        endDate     query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        page        query  int     false  "Página (default 1)"
// @Param        limit       query  int     false  "Tamaño de página (default 10)"
// @Success      200  {object}  dto.LogsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *LogsHandler) List(c *fiber.Ctx) error {
	var q dto.LogsQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.List(ActorFromCtx(c), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
