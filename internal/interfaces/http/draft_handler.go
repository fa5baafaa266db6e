package http

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestiva/internal/application/dto"
	appmovement "github.com/jhoicas/gestiva/internal/application/movement"
)

// DraftHandler formulario de movimientos: cada petición es una acción sobre el borrador
// y la respuesta es el borrador completo con sus totales recalculados.
type DraftHandler struct {
	uc        *appmovement.DraftUseCase
	validator *validator.Validate
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *appmovement.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc, validator: newValidator()}
}

// Create godoc
// @Summary      Crear borrador de movimiento
// @Tags         movement-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateDraftRequest  true  "tipo de movimiento"
// @Success      201   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/movement-drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateDraftRequest
	if err := bind(c, h.validator, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.Context(), caller, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener borrador
// @Tags         movement-drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.Context(), caller, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Discard godoc
// @Summary      Descartar borrador
// @Tags         movement-drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id} [delete]
func (h *DraftHandler) Discard(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Discard(c.Context(), caller, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Update godoc
// @Summary      Modificar cabecera del borrador
// @Description  Tipo, fecha, notas, cliente (o cliente nuevo), proveedor, retención/deducción, categoría de gasto y ruta. Solo se aplican los campos presentes; si alguno falla no se aplica ninguno.
// @Tags         movement-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "ID del borrador"
// @Param        body  body      dto.UpdateDraftRequest  true  "campos de cabecera"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id} [patch]
func (h *DraftHandler) Update(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.UpdateDraftRequest
	if err := bind(c, h.validator, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateHeader(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddLine godoc
// @Summary      Agregar línea
// @Tags         movement-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string           true   "ID del borrador"
// @Param        body  body      dto.LineRequest  false  "producto y valores opcionales"
// @Success      201   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/lines [post]
func (h *DraftHandler) AddLine(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.LineRequest
	if len(c.Body()) > 0 {
		if err := bind(c, h.validator, &in); err != nil {
			return writeError(c, err)
		}
	}
	out, err := h.uc.AddLine(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLine godoc
// @Summary      Modificar línea
// @Tags         movement-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path      string           true  "ID del borrador"
// @Param        index  path      int              true  "índice de la línea (desde 0)"
// @Param        body   body      dto.LineRequest  true  "valores a cambiar"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/lines/{index} [patch]
func (h *DraftHandler) UpdateLine(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	index, err := paramIndex(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.LineRequest
	if err := bind(c, h.validator, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdateLine(c.Context(), caller, c.Params("id"), index, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SelectProduct godoc
// @Summary      Seleccionar producto de una línea
// @Description  Una referencia del catálogo copia descripción y precio. En compras, un valor desconocido crea un producto nuevo y si parece descripción se le genera la referencia.
// @Tags         movement-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path      string                    true  "ID del borrador"
// @Param        index  path      int                       true  "índice de la línea (desde 0)"
// @Param        body   body      dto.SelectProductRequest  true  "valor digitado"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/lines/{index}/product [put]
func (h *DraftHandler) SelectProduct(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	index, err := paramIndex(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SelectProductRequest
	if err := bind(c, h.validator, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SelectProduct(c.Context(), caller, c.Params("id"), index, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveLine godoc
// @Summary      Eliminar línea
// @Tags         movement-drafts
// @Security     Bearer
// @Produce      json
// @Param        id     path      string  true  "ID del borrador"
// @Param        index  path      int     true  "índice de la línea (desde 0)"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/lines/{index} [delete]
func (h *DraftHandler) RemoveLine(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	index, err := paramIndex(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RemoveLine(c.Context(), caller, c.Params("id"), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddPayment godoc
// @Summary      Agregar pago
// @Tags         movement-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "ID del borrador"
// @Param        body  body      dto.PaymentRequest  true  "medio y monto"
// @Success      201   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/payments [post]
func (h *DraftHandler) AddPayment(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.PaymentRequest
	if err := bind(c, h.validator, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AddPayment(c.Context(), caller, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePayment godoc
// @Summary      Modificar pago
// @Tags         movement-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path      string                    true  "ID del borrador"
// @Param        index  path      int                       true  "índice del pago (desde 0)"
// @Param        body   body      dto.UpdatePaymentRequest  true  "campos a cambiar"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/payments/{index} [patch]
func (h *DraftHandler) UpdatePayment(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	index, err := paramIndex(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdatePaymentRequest
	if err := bind(c, h.validator, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.UpdatePayment(c.Context(), caller, c.Params("id"), index, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemovePayment godoc
// @Summary      Eliminar pago
// @Tags         movement-drafts
// @Security     Bearer
// @Produce      json
// @Param        id     path      string  true  "ID del borrador"
// @Param        index  path      int     true  "índice del pago (desde 0)"
// @Success      200    {object}  dto.DraftResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/payments/{index} [delete]
func (h *DraftHandler) RemovePayment(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	index, err := paramIndex(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RemovePayment(c.Context(), caller, c.Params("id"), index)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ToggleReceivable godoc
// @Summary      Seleccionar o quitar cuenta por cobrar
// @Description  Solo recibos. Al seleccionarla el abono es el saldo completo.
// @Tags         movement-drafts
// @Security     Bearer
// @Produce      json
// @Param        id         path      string  true  "ID del borrador"
// @Param        reference  path      string  true  "consecutivo de origen"
// @Success      200        {object}  dto.DraftResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Failure      409        {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/receivables/{reference}/toggle [post]
func (h *DraftHandler) ToggleReceivable(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.ToggleReceivable(c.Context(), caller, c.Params("id"), c.Params("reference"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetReceivableAmount godoc
// @Summary      Fijar abono de una cuenta seleccionada
// @Description  El valor se acota a [0, saldo] y se redondea a centavos.
// @Tags         movement-drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path      string                       true  "ID del borrador"
// @Param        reference  path      string                       true  "consecutivo de origen"
// @Param        body       body      dto.SettlementAmountRequest  true  "abono"
// @Success      200        {object}  dto.DraftResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/receivables/{reference} [put]
func (h *DraftHandler) SetReceivableAmount(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.SettlementAmountRequest
	if err := bind(c, h.validator, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SetReceivableAmount(c.Context(), caller, c.Params("id"), c.Params("reference"), in.Value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar movimiento
// @Description  Valida el borrador y lo registra en el backend contable. Si el backend lo rechaza el borrador vuelve a edición y el mensaje del backend viene en la respuesta.
// @Tags         movement-drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del borrador"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.Submit(c.Context(), caller, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Preview godoc
// @Summary      Vista previa PDF del borrador
// @Tags         movement-drafts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movement-drafts/{id}/preview.pdf [get]
func (h *DraftHandler) Preview(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	id := c.Params("id")
	pdf, err := h.uc.Preview(c.Context(), caller, id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="borrador-%s.pdf"`, id))
	return c.Send(pdf)
}
