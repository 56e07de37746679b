// Package ports define los puertos de salida de la capa de aplicación.
// Siguiendo inversión de dependencias, los use cases solo conocen estos
// contratos; los adaptadores concretos viven en internal/infrastructure.
package ports

import (
	"context"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
)

// AuthRemote autentica credenciales contra el remote store y devuelve el
// usuario más el bearer token que autoriza el resto de las llamadas.
type AuthRemote interface {
	Login(ctx context.Context, email, password string) (entity.User, string, error)
}

// EntryRemote persiste y recupera el conjunto completo de entradas.
// Push envía el Entry Store entero (no un diff); Fetch trae el conjunto
// autoritativo del servidor. Todo fallo de red/backend es terminal para la
// operación que lo disparó.
type EntryRemote interface {
	FetchEntries(ctx context.Context, token string) ([]entity.InventoryEntry, error)
	PushEntries(ctx context.Context, token string, entries []entity.InventoryEntry) error
}

// CatalogRemote CRUD del catálogo de productos y categorías.
type CatalogRemote interface {
	FetchProducts(ctx context.Context, token string) ([]entity.Product, error)
	CreateProduct(ctx context.Context, token string, p entity.Product) (entity.Product, error)
	UpdateProduct(ctx context.Context, token string, p entity.Product) (entity.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error

	FetchCategories(ctx context.Context, token string) ([]entity.Category, error)
	CreateCategory(ctx context.Context, token string, c entity.Category) (entity.Category, error)
	DeleteCategory(ctx context.Context, token, id string) error
}

// UserRemote gestión de cuentas en el remote store.
type UserRemote interface {
	FetchUsers(ctx context.Context, token string) ([]entity.User, error)
	CreateUser(ctx context.Context, token string, u entity.User, password string) (entity.User, error)
	UpdateUser(ctx context.Context, token string, u entity.User, password string) (entity.User, error)
	DeleteUser(ctx context.Context, token, id string) error
}

// AnalyticsRemote documento de analítica agregada del tablero.
type AnalyticsRemote interface {
	FetchAnalytics(ctx context.Context, token string) (*dto.DashboardResponse, error)
}
