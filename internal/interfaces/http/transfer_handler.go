package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bountygroup/drinks-inventory-api/internal/application/dto"
	"github.com/bountygroup/drinks-inventory-api/internal/application/movement"
	"github.com/bountygroup/drinks-inventory-api/pkg/validator"
)

// TransferHandler maneja traslados entre bodegas y su reversa (protegido).
type TransferHandler struct {
	uc *movement.TransferUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *movement.TransferUseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar traslado entre bodegas
// @Description  Mueve todas las líneas de la bodega origen a la destino en una
//               sola transacción; crea el artículo en destino si no existe.
// @Tags         transfer
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "items, fromWarehouse, toWarehouse"
// @Success      201   {object}  dto.BatchSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfer [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items, fromWarehouse y toWarehouse son requeridos; cantidades > 0"})
	}
	out, err := h.uc.Transfer(c.Context(), ActorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Revertir un traslado
// @Description  Devuelve las cantidades de destino a origen y elimina el lote.
//               Si el destino ya no tiene stock suficiente para devolver alguna
//               línea, la reversa completa se rechaza.
// @Tags         transfer
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfer/{id} [delete]
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.DeleteTransfer(c.Context(), ActorFromCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transfer deleted and stock restored"})
}

// History godoc
// @Summary      Historial de traslados
// @Tags         transfer
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Busca en bodegas y líneas"
// @Param        page    query  int     false  "Página (default 1)"
// @Param        limit   query  int     false  "Tamaño de página (default 10)"
// @Success      200  {object}  dto.TransferHistoryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/transfer/history [get]
func (h *TransferHandler) History(c *fiber.Ctx) error {
	var q dto.PageQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros inválidos"})
	}
	out, err := h.uc.History(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
