package catalog

import (
	"github.com/jhoicas/gestiva/internal/application/dto"
	"github.com/jhoicas/gestiva/internal/domain/entity"
	"github.com/jhoicas/gestiva/internal/domain/movement"
)

// window aplica la página sobre una lista de total elementos y devuelve el rango [start, end).
func window(total int, page *dto.PageRequest) (int, int) {
	page.DefaultPage()
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	return start, end
}

// ClientsResponse página de clientes para la API.
func ClientsResponse(in []entity.Client, page dto.PageRequest) dto.PartyListResponse {
	start, end := window(len(in), &page)
	out := dto.PartyListResponse{
		Items: make([]dto.PartyResponse, 0, end-start),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(in)},
	}
	for _, c := range in[start:end] {
		out.Items = append(out.Items, dto.PartyResponse{ID: c.ID, Code: c.Code, Name: c.Name, Email: c.Email, Phone: c.Phone})
	}
	return out
}

// SuppliersResponse página de proveedores para la API.
func SuppliersResponse(in []entity.Supplier, page dto.PageRequest) dto.PartyListResponse {
	start, end := window(len(in), &page)
	out := dto.PartyListResponse{
		Items: make([]dto.PartyResponse, 0, end-start),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(in)},
	}
	for _, s := range in[start:end] {
		out.Items = append(out.Items, dto.PartyResponse{ID: s.ID, Code: s.Code, Name: s.Name, Email: s.Email, Phone: s.Phone})
	}
	return out
}

// ProductsResponse página de productos para la API.
func ProductsResponse(in []entity.Product, page dto.PageRequest) dto.CatalogProductListResponse {
	start, end := window(len(in), &page)
	out := dto.CatalogProductListResponse{
		Items: make([]dto.CatalogProductResponse, 0, end-start),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(in)},
	}
	for _, p := range in[start:end] {
		out.Items = append(out.Items, dto.CatalogProductResponse{
			ID:          p.ID,
			Reference:   p.Reference,
			Description: p.Description,
			SalePrice:   p.SalePrice,
			CostPrice:   p.CostPrice,
			Stock:       p.Stock,
		})
	}
	return out
}

// StatementResponse cartera del cliente para la API. selected marca las cuentas ya elegidas en un borrador.
func StatementResponse(st *entity.ReceivablesStatement, selected func(reference string) bool) *dto.ReceivablesStatementResponse {
	if st == nil {
		return nil
	}
	out := &dto.ReceivablesStatementResponse{
		ClientCode: st.ClientCode,
		Balance:    st.Balance,
		Items:      make([]dto.ReceivableItemResponse, len(st.Items)),
	}
	for i, it := range st.Items {
		out.Items[i] = dto.ReceivableItemResponse{
			OriginConsecutive: it.OriginConsecutive,
			Balance:           it.Balance,
			Status:            it.Status,
			DueDate:           it.DueDate,
			Selectable:        movement.Selectable(it),
			Selected:          selected != nil && selected(it.OriginConsecutive),
		}
	}
	return out
}
