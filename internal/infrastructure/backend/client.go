package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/gestiva/internal/domain"
	"github.com/jhoicas/gestiva/internal/domain/entity"
	"github.com/jhoicas/gestiva/internal/domain/movement"
	"github.com/jhoicas/gestiva/internal/domain/repository"
	"github.com/jhoicas/gestiva/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa LedgerGateway.
var _ repository.LedgerGateway = (*Client)(nil)

const maxResponseBytes = 4 << 20

// Client adaptador REST del backend contable. Sin reintentos: un fallo se devuelve tal cual
// y el borrador queda intacto.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el adaptador. baseURL sin barra final, p. ej. "https://ledger.local/api".
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.Named("backend"),
	}
}

// ── Estructuras del protocolo del backend ─────────────────────────────────────

type partyWire struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type productWire struct {
	ID          string        `json:"id"`
	Reference   string        `json:"reference"`
	Description string        `json:"description"`
	SalePrice   decimalOrZero `json:"salePrice"`
	CostPrice   decimalOrZero `json:"costPrice"`
	Stock       decimalOrZero `json:"stock"`
}

type receivableWire struct {
	OriginConsecutive string        `json:"originConsecutive"`
	Balance           decimalOrZero `json:"balance"`
	Status            string        `json:"status"`
	DueDate           string        `json:"dueDate,omitempty"`
}

type statementWire struct {
	Balance decimalOrZero    `json:"balance"`
	Items   []receivableWire `json:"items"`
}

type movementWire struct {
	ID             string        `json:"id"`
	Consecutive    string        `json:"consecutive"`
	ProcessType    string        `json:"processType"`
	Status         string        `json:"status"`
	IsCancellation bool          `json:"isCancellation"`
	Total          decimalOrZero `json:"total"`
	DocumentDate   string        `json:"documentDate"`
}

type errorWire struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ListClients GET /clients.
func (c *Client) ListClients(ctx context.Context, token string) ([]entity.Client, error) {
	var wire []partyWire
	if err := c.do(ctx, http.MethodGet, "/clients", token, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]entity.Client, len(wire))
	for i, w := range wire {
		out[i] = entity.Client{ID: w.ID, Code: w.Code, Name: w.Name, Email: w.Email, Phone: w.Phone}
	}
	return out, nil
}

// ListSuppliers GET /suppliers.
func (c *Client) ListSuppliers(ctx context.Context, token string) ([]entity.Supplier, error) {
	var wire []partyWire
	if err := c.do(ctx, http.MethodGet, "/suppliers", token, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]entity.Supplier, len(wire))
	for i, w := range wire {
		out[i] = entity.Supplier{ID: w.ID, Code: w.Code, Name: w.Name, Email: w.Email, Phone: w.Phone}
	}
	return out, nil
}

// ListProducts GET /products.
func (c *Client) ListProducts(ctx context.Context, token string) ([]entity.Product, error) {
	var wire []productWire
	if err := c.do(ctx, http.MethodGet, "/products", token, nil, &wire); err != nil {
		return nil, err
	}
	out := make([]entity.Product, len(wire))
	for i, w := range wire {
		out[i] = entity.Product{
			ID:          w.ID,
			Reference:   w.Reference,
			Description: w.Description,
			SalePrice:   w.SalePrice.Decimal,
			CostPrice:   w.CostPrice.Decimal,
			Stock:       w.Stock.Decimal,
		}
	}
	return out, nil
}

// GetReceivables GET /clients/{code}/receivables.
func (c *Client) GetReceivables(ctx context.Context, token, clientCode string) (*entity.ReceivablesStatement, error) {
	var wire statementWire
	path := "/clients/" + url.PathEscape(clientCode) + "/receivables"
	if err := c.do(ctx, http.MethodGet, path, token, nil, &wire); err != nil {
		return nil, err
	}
	st := &entity.ReceivablesStatement{
		ClientCode: clientCode,
		Balance:    wire.Balance.Decimal,
		Items:      make([]entity.ReceivableItem, 0, len(wire.Items)),
	}
	for _, w := range wire.Items {
		item := entity.ReceivableItem{
			OriginConsecutive: w.OriginConsecutive,
			Balance:           w.Balance.Decimal,
			Status:            w.Status,
		}
		if due, ok := parseDate(w.DueDate); ok {
			item.DueDate = &due
		}
		st.Items = append(st.Items, item)
	}
	return st, nil
}

// CreateMovement POST /movements.
func (c *Client) CreateMovement(ctx context.Context, token string, payload movement.CreatePayload) (*entity.Movement, error) {
	var wire movementWire
	if err := c.do(ctx, http.MethodPost, "/movements", token, payload, &wire); err != nil {
		return nil, err
	}
	return wire.toEntity(), nil
}

// GetMovement GET /movements/{id}.
func (c *Client) GetMovement(ctx context.Context, token, id string) (*entity.Movement, error) {
	var wire movementWire
	if err := c.do(ctx, http.MethodGet, "/movements/"+url.PathEscape(id), token, nil, &wire); err != nil {
		return nil, err
	}
	return wire.toEntity(), nil
}

// CancelMovement POST /movements/{id}/cancel.
func (c *Client) CancelMovement(ctx context.Context, token, id string) (*entity.Movement, error) {
	var wire movementWire
	if err := c.do(ctx, http.MethodPost, "/movements/"+url.PathEscape(id)+"/cancel", token, nil, &wire); err != nil {
		return nil, err
	}
	return wire.toEntity(), nil
}

func (w movementWire) toEntity() *entity.Movement {
	m := &entity.Movement{
		ID:             w.ID,
		Consecutive:    w.Consecutive,
		ProcessType:    entity.MovementType(w.ProcessType),
		Status:         strings.ToUpper(w.Status),
		IsCancellation: w.IsCancellation,
		Total:          w.Total.Decimal,
	}
	if dt, ok := parseDate(w.DocumentDate); ok {
		m.DocumentDate = dt
	}
	return m
}

// do ejecuta la petición y decodifica la respuesta 2xx en out (si no es nil).
func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend sin respuesta")
		if ctx.Err() != nil {
			return &domain.BackendError{Err: domain.ErrBackendUnavailable, Message: "timeout o cancelación: " + ctx.Err().Error()}
		}
		return &domain.BackendError{Err: domain.ErrBackendUnavailable, Message: err.Error()}
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.BackendError{Err: domain.ErrBackendUnavailable, StatusCode: resp.StatusCode, Message: "leer respuesta: " + err.Error()}
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, rawBody)
	}
	if out == nil || len(bytes.TrimSpace(rawBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(rawBody, out); err != nil {
		return &domain.BackendError{Err: domain.ErrBackendUnavailable, StatusCode: resp.StatusCode, Message: "respuesta JSON inválida: " + err.Error()}
	}
	return nil
}

// statusError traduce una respuesta no 2xx. 401 y 404 conservan su significado de dominio;
// el resto de 4xx es un rechazo del backend y 5xx es indisponibilidad.
func statusError(status int, raw []byte) error {
	msg := errorMessage(raw)
	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case status >= 500:
		return &domain.BackendError{Err: domain.ErrBackendUnavailable, StatusCode: status, Message: msg}
	default:
		return &domain.BackendError{Err: domain.ErrBackendRejected, StatusCode: status, Message: msg}
	}
}

// errorMessage extrae "message" (texto o lista de textos) o "error" del cuerpo de error.
func errorMessage(raw []byte) string {
	var e errorWire
	if err := json.Unmarshal(raw, &e); err == nil {
		var s string
		if json.Unmarshal(e.Message, &s) == nil && s != "" {
			return s
		}
		var list []string
		if json.Unmarshal(e.Message, &list) == nil && len(list) > 0 {
			return strings.Join(list, "; ")
		}
		if e.Error != "" {
			return e.Error
		}
	}
	text := strings.TrimSpace(string(raw))
	if len(text) > 300 {
		text = text[:300]
	}
	return text
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(movement.DateLayout, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
