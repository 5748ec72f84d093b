package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bountygroup/drinks-inventory-api/internal/application/dto"
	"github.com/bountygroup/drinks-inventory-api/internal/application/movement"
	"github.com/bountygroup/drinks-inventory-api/pkg/validator"
)

// CheckoutHandler maneja la creación, reversa e historial de checkouts (protegido).
type CheckoutHandler struct {
	uc *movement.CheckoutUseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *movement.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar checkout de stock
// @Description  Descuenta todas las líneas de la bodega de origen en una sola
//               transacción: si alguna línea no puede cumplirse, ninguna se aplica.
// @Tags         checkout
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "items (itemCode, quantity) y reason"
// @Success      201   {object}  dto.BatchSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Create(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items y reason son requeridos; cantidades > 0"})
	}
	out, err := h.uc.Checkout(c.Context(), ActorFromCtx(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Revertir un checkout
// @Description  Devuelve las cantidades del lote a la bodega de origen y elimina
//               el registro. Si un artículo ya no existe se recrea con lo devuelto.
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/{id} [delete]
func (h *CheckoutHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.DeleteCheckout(c.Context(), ActorFromCtx(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Checkout deleted and stock restored"})
}

// History godoc
// @Summary      Historial de checkouts
// @Tags         checkout
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Busca en razón y líneas"
// @Param        page    query  int     false  "Página (default 1)"
// @Param        limit   query  int     false  "Tamaño de página (default 10)"
// @Success      200  {object}  dto.CheckoutHistoryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/checkout/history [get]
func (h *CheckoutHandler) History(c *fiber.Ctx) error {
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
