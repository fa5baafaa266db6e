package dto

import "github.com/shopspring/decimal"

// PartyResponse cliente o proveedor.
type PartyResponse struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CatalogProductResponse producto del catálogo.
type CatalogProductResponse struct {
	ID          string          `json:"id"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	Stock       decimal.Decimal `json:"stock"`
}

// PartyListResponse página de clientes o proveedores.
type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CatalogProductListResponse página de productos.
type CatalogProductListResponse struct {
	Items []CatalogProductResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
