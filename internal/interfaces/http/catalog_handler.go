package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestiva/internal/application/catalog"
)

// CatalogHandler catálogos de apoyo del formulario (clientes, proveedores, productos y cartera).
type CatalogHandler struct {
	uc        *catalog.UseCase
	validator *validator.Validate
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc, validator: newValidator()}
}

// Clients godoc
// @Summary      Listar clientes
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "máximo de elementos (1-100, por defecto 20)"
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200  {object}  dto.PartyListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog/clients [get]
func (h *CatalogHandler) Clients(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	page, err := pageQuery(c, h.validator)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.Clients(c.Context(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(catalog.ClientsResponse(list, page))
}

// Suppliers godoc
// @Summary      Listar proveedores
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "máximo de elementos (1-100, por defecto 20)"
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200  {object}  dto.PartyListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog/suppliers [get]
func (h *CatalogHandler) Suppliers(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	page, err := pageQuery(c, h.validator)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.Suppliers(c.Context(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(catalog.SuppliersResponse(list, page))
}

// Products godoc
// @Summary      Listar productos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        limit   query     int  false  "máximo de elementos (1-100, por defecto 20)"
// @Param        offset  query     int  false  "desplazamiento"
// @Success      200  {object}  dto.CatalogProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) Products(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	page, err := pageQuery(c, h.validator)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.Products(c.Context(), caller)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(catalog.ProductsResponse(list, page))
}

// Receivables godoc
// @Summary      Cartera de un cliente
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        code  path      string  true  "código del cliente"
// @Success      200   {object}  dto.ReceivablesStatementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/catalog/clients/{code}/receivables [get]
func (h *CatalogHandler) Receivables(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	st, err := h.uc.Receivables(c.Context(), caller, c.Params("code"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(catalog.StatementResponse(st, func(string) bool { return false }))
}

// Refresh godoc
// @Summary      Refrescar catálogos
// @Description  Descarta la caché de catálogos de la empresa; la siguiente lectura va al backend.
// @Tags         catalog
// @Security     Bearer
// @Success      204
// @Router       /api/catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *fiber.Ctx) error {
	caller, ok := callerFrom(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.uc.Invalidate(c.Context(), caller.CompanyID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
