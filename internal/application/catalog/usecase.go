package catalog

import (
	"context"

	"github.com/jhoicas/gestiva/internal/application/dto"
	"github.com/jhoicas/gestiva/internal/domain/entity"
	"github.com/jhoicas/gestiva/internal/domain/movement"
	"github.com/jhoicas/gestiva/internal/domain/repository"
	"github.com/jhoicas/gestiva/pkg/logger"
)

const (
	kindClients   = "clients"
	kindSuppliers = "suppliers"
	kindProducts  = "products"
)

// UseCase lectura de catálogos del backend con caché por compañía. La cartera de clientes
// no se cachea: los saldos cambian con cada recibo.
type UseCase struct {
	gateway repository.LedgerGateway
	cache   repository.CatalogCache
	log     *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(gateway repository.LedgerGateway, cache repository.CatalogCache, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{gateway: gateway, cache: cache, log: log.Named("catalog")}
}

func cacheKey(companyID, kind string) string {
	if companyID == "" {
		companyID = "_"
	}
	return companyID + ":" + kind
}

// cached devuelve el valor en caché o lo carga del backend y lo guarda.
func cached[T any](ctx context.Context, uc *UseCase, companyID, kind string, load func() ([]T, error)) ([]T, error) {
	key := cacheKey(companyID, kind)
	var out []T
	if uc.cache.Get(ctx, key, &out) {
		return out, nil
	}
	out, err := load()
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, key, out); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear el catálogo")
	}
	return out, nil
}

// Clients catálogo de clientes.
func (uc *UseCase) Clients(ctx context.Context, caller dto.Caller) ([]entity.Client, error) {
	return cached(ctx, uc, caller.CompanyID, kindClients, func() ([]entity.Client, error) {
		return uc.gateway.ListClients(ctx, caller.Token)
	})
}

// Suppliers catálogo de proveedores.
func (uc *UseCase) Suppliers(ctx context.Context, caller dto.Caller) ([]entity.Supplier, error) {
	return cached(ctx, uc, caller.CompanyID, kindSuppliers, func() ([]entity.Supplier, error) {
		return uc.gateway.ListSuppliers(ctx, caller.Token)
	})
}

// Products catálogo de productos.
func (uc *UseCase) Products(ctx context.Context, caller dto.Caller) ([]entity.Product, error) {
	return cached(ctx, uc, caller.CompanyID, kindProducts, func() ([]entity.Product, error) {
		return uc.gateway.ListProducts(ctx, caller.Token)
	})
}

// Snapshot los tres catálogos que necesita el reductor de borradores.
func (uc *UseCase) Snapshot(ctx context.Context, caller dto.Caller) (movement.Catalog, error) {
	clients, err := uc.Clients(ctx, caller)
	if err != nil {
		return movement.Catalog{}, err
	}
	suppliers, err := uc.Suppliers(ctx, caller)
	if err != nil {
		return movement.Catalog{}, err
	}
	products, err := uc.Products(ctx, caller)
	if err != nil {
		return movement.Catalog{}, err
	}
	return movement.Catalog{Clients: clients, Suppliers: suppliers, Products: products}, nil
}

// Receivables cartera del cliente, siempre leída del backend.
func (uc *UseCase) Receivables(ctx context.Context, caller dto.Caller, clientCode string) (*entity.ReceivablesStatement, error) {
	return uc.gateway.GetReceivables(ctx, caller.Token, clientCode)
}

// Invalidate descarta los catálogos cacheados de la compañía (p. ej. tras registrar un
// movimiento, que cambia stock y puede crear clientes o productos).
func (uc *UseCase) Invalidate(ctx context.Context, companyID string) error {
	err := uc.cache.Delete(ctx,
		cacheKey(companyID, kindClients),
		cacheKey(companyID, kindSuppliers),
		cacheKey(companyID, kindProducts),
	)
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", companyID).Msg("no se pudo invalidar el catálogo")
	}
	return err
}
