package repository

import "context"

// CatalogCache caché de catálogos por compañía. Get decodifica en dst y reporta si hubo acierto.
type CatalogCache interface {
	Get(ctx context.Context, key string, dst interface{}) bool
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}
