package http

import (
	"github.com/gofiber/fiber/v2"

	appmovement "github.com/jhoicas/gestiva/internal/application/movement"
)

// MovementHandler operaciones sobre movimientos ya registrados.
type MovementHandler struct {
	uc *appmovement.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *appmovement.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Cancel godoc
// @Summary      Anular movimiento
// @Description  Un movimiento ya anulado, o que es la anulación de otro, no se puede anular.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/cancel [post]
func (h *MovementHandler) Cancel(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Cancel(c.Context(), caller, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
