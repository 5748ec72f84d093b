package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/bountygroup/drinks-inventory-api/internal/application/dto"
	"github.com/bountygroup/drinks-inventory-api/internal/domain"
)

// respondError traduce errores del dominio a respuestas HTTP. Cuando el error
// viene envuelto en ItemError, el mensaje identifica el artículo y la bodega
// que lo causaron para que el cliente pueda señalar la línea exacta.
func respondError(c *fiber.Ctx, err error) error {
	status, code, message := fiber.StatusInternalServerError, "INTERNAL", err.Error()

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, message = fiber.StatusBadRequest, "VALIDATION", "datos inválidos"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, message = fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"
	case errors.Is(err, domain.ErrForbidden):
		status, code, message = fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"
	case errors.Is(err, domain.ErrUserNotFound):
		status, code, message = fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"
	case errors.Is(err, domain.ErrNotFound):
		status, code, message = fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"
	case errors.Is(err, domain.ErrDuplicate):
		status, code, message = fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code, message = fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"
	case errors.Is(err, domain.ErrInvalidState):
		status, code, message = fiber.StatusConflict, "INVALID_STATE", "la operación dejaría el inventario en estado inválido"
	}

	var itemErr *domain.ItemError
	if errors.As(err, &itemErr) {
		if itemErr.Warehouse != "" {
			message = fmt.Sprintf("%s (artículo %s, bodega %s)", message, itemErr.ItemCode, itemErr.Warehouse)
		} else {
			message = fmt.Sprintf("%s (artículo %s)", message, itemErr.ItemCode)
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}
