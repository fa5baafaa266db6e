package movement

import (
	"github.com/jhoicas/gestiva/internal/domain/entity"
	"github.com/jhoicas/gestiva/pkg/textnorm"
)

// Catalog instantánea de los catálogos que usa el reductor. Se pasa explícitamente para
// que el resultado dependa solo de sus argumentos.
type Catalog struct {
	Clients   []entity.Client
	Suppliers []entity.Supplier
	Products  []entity.Product
}

// FindClient busca un cliente por código sin distinguir mayúsculas.
func (c Catalog) FindClient(code string) (entity.Client, bool) {
	for _, cl := range c.Clients {
		if textnorm.EqualFold(cl.Code, code) {
			return cl, true
		}
	}
	return entity.Client{}, false
}

// FindSupplier busca un proveedor por código sin distinguir mayúsculas.
func (c Catalog) FindSupplier(code string) (entity.Supplier, bool) {
	for _, s := range c.Suppliers {
		if textnorm.EqualFold(s.Code, code) {
			return s, true
		}
	}
	return entity.Supplier{}, false
}

// FindProduct busca un producto por referencia sin distinguir mayúsculas.
func (c Catalog) FindProduct(reference string) (entity.Product, bool) {
	for _, p := range c.Products {
		if textnorm.EqualFold(p.Reference, reference) {
			return p, true
		}
	}
	return entity.Product{}, false
}

// References referencias del catálogo de productos.
func (c Catalog) References() []string {
	refs := make([]string, len(c.Products))
	for i, p := range c.Products {
		refs[i] = p.Reference
	}
	return refs
}
