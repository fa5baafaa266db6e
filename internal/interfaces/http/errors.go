package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestiva/internal/application/dto"
	"github.com/jhoicas/gestiva/internal/domain"
	domainmov "github.com/jhoicas/gestiva/internal/domain/movement"
)

// errorMapping status y código de respuesta para un error de dominio.
type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings se evalúan en orden con errors.Is; el primero que coincide gana.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domainmov.ErrInvalidType, fiber.StatusBadRequest, "INVALID_TYPE"},
	{domainmov.ErrMissingCounterpart, fiber.StatusBadRequest, "MISSING_COUNTERPART"},
	{domainmov.ErrEmptyProduct, fiber.StatusBadRequest, "EMPTY_PRODUCT"},
	{domainmov.ErrUnknownProduct, fiber.StatusBadRequest, "UNKNOWN_PRODUCT"},
	{domainmov.ErrInvalidLine, fiber.StatusBadRequest, "INVALID_LINE"},
	{domainmov.ErrNoDetails, fiber.StatusBadRequest, "NO_DETAILS"},
	{domainmov.ErrInvalidPayment, fiber.StatusBadRequest, "INVALID_PAYMENT"},
	{domainmov.ErrSettlementOutOfBounds, fiber.StatusBadRequest, "SETTLEMENT_OUT_OF_BOUNDS"},
	{domainmov.ErrNoReceivablesSelected, fiber.StatusBadRequest, "NO_RECEIVABLES_SELECTED"},
	{domainmov.ErrMissingRoute, fiber.StatusBadRequest, "MISSING_ROUTE"},
	{domainmov.ErrSameRoute, fiber.StatusBadRequest, "SAME_ROUTE"},
	{domainmov.ErrIndexOutOfRange, fiber.StatusBadRequest, "INDEX_OUT_OF_RANGE"},
	{domainmov.ErrInsufficientStock, fiber.StatusUnprocessableEntity, "INSUFFICIENT_STOCK"},
	{domainmov.ErrPaymentMismatch, fiber.StatusUnprocessableEntity, "PAYMENT_MISMATCH"},
	{domainmov.ErrReferenceDataUnavailable, fiber.StatusConflict, "REFERENCE_DATA_UNAVAILABLE"},
	{domainmov.ErrDraftLocked, fiber.StatusConflict, "DRAFT_LOCKED"},
	{domainmov.ErrNotCancellable, fiber.StatusConflict, "NOT_CANCELLABLE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrBackendRejected, fiber.StatusBadGateway, "BACKEND_REJECTED"},
	{domain.ErrBackendUnavailable, fiber.StatusBadGateway, "BACKEND_UNAVAILABLE"},
}

// statusFor devuelve status, código y mensaje para err. Los errores no mapeados son 500
// y no exponen su texto.
func statusFor(err error) (int, string, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code, err.Error()
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL", "error interno"
}

// writeError responde el error con el cuerpo dto.ErrorResponse. Los 500 y las caídas del
// backend se reportan a Sentry (no-op si no está inicializado).
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := statusFor(err)
	if status == fiber.StatusInternalServerError || errors.Is(err, domain.ErrBackendUnavailable) {
		report(c, err)
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func report(c *fiber.Ctx, err error) {
	hub := sentry.CurrentHub().Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("method", c.Method())
		scope.SetTag("route", c.Route().Path)
		if rid, ok := c.Locals("requestid").(string); ok {
			scope.SetTag("request_id", rid)
		}
		if userID := GetUserID(c); userID != "" {
			scope.SetUser(sentry.User{ID: userID})
		}
		hub.CaptureException(err)
	})
}

// ErrorHandler manejador de errores de Fiber: rutas inexistentes, cuerpos demasiado
// grandes y errores que los handlers devuelven sin responder.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fmt.Sprintf("HTTP_%d", fe.Code), Message: fe.Message})
	}
	return writeError(c, err)
}

// newValidator validador de DTOs que reporta los campos con su nombre JSON.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parsea el cuerpo JSON en dst y lo valida con las etiquetas validate.
func bind(c *fiber.Ctx, v *validator.Validate, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("%w: cuerpo inválido", domain.ErrInvalidInput)
	}
	if err := v.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, validationMessage(err))
	}
	return nil
}

// pageQuery lee limit/offset de la query; los ceros toman los valores por defecto.
func pageQuery(c *fiber.Ctx, v *validator.Validate) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, fmt.Errorf("%w: paginación inválida", domain.ErrInvalidInput)
	}
	page.DefaultPage()
	if err := v.Struct(page); err != nil {
		return page, fmt.Errorf("%w: %s", domain.ErrInvalidInput, validationMessage(err))
	}
	return page, nil
}

// validationMessage resume los errores del validador como "campo: regla".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		p := fe.Field() + ": " + fe.Tag()
		if fe.Param() != "" {
			p += "=" + fe.Param()
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}

// paramIndex lee el parámetro :index de la ruta.
func paramIndex(c *fiber.Ctx) (int, error) {
	i, err := c.ParamsInt("index", -1)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w: índice inválido", domain.ErrInvalidInput)
	}
	return i, nil
}
