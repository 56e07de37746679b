// Package usecase contiene los casos de uso de gestión que el hub delega
// al remote store: catálogo, categorías, cuentas y analítica del tablero.
// Son proxies finos con mapeo DTO <-> entidad; las reglas de inventario
// viven en internal/domain/tracker y en el paquete tracking.
package usecase

import (
	"context"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/application/ports"
	"github.com/jhoicas/omnistock-hub/internal/domain"
	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
	"github.com/jhoicas/omnistock-hub/pkg/logger"
)

// ProductUseCase gestión del catálogo de productos.
type ProductUseCase struct {
	catalog ports.CatalogRemote
	log     *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(catalog ports.CatalogRemote, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{catalog: catalog, log: log}
}

// List devuelve el catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context, token string) (*dto.ProductListResponse, error) {
	products, err := uc.catalog.FetchProducts(ctx, token)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Items = append(resp.Items, toProductResponse(p))
	}
	return resp, nil
}

// Create da de alta un producto en el remote store.
func (uc *ProductUseCase) Create(ctx context.Context, token string, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	created, err := uc.catalog.CreateProduct(ctx, token, entity.Product{
		Code:     req.Code,
		Name:     req.Name,
		Unit:     req.Unit,
		Capacity: req.Capacity,
		Category: req.Category,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product", created.ID).Str("code", created.Code).Msg("producto creado")
	resp := toProductResponse(created)
	return &resp, nil
}

// Update aplica una actualización parcial: primero trae el estado actual y
// superpone solo los campos presentes en la petición.
func (uc *ProductUseCase) Update(ctx context.Context, token, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	current, err := uc.findProduct(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if req.Code != nil {
		current.Code = *req.Code
	}
	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Unit != nil {
		current.Unit = *req.Unit
	}
	if req.Capacity != nil {
		current.Capacity = *req.Capacity
	}
	if req.Category != nil {
		current.Category = *req.Category
	}

	updated, err := uc.catalog.UpdateProduct(ctx, token, current)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(updated)
	return &resp, nil
}

// Delete elimina el producto. Las entradas históricas del tracker que lo
// referencian quedan huérfanas en el remote store; la grilla simplemente
// deja de mostrarlas al no haber fila para proyectarlas.
func (uc *ProductUseCase) Delete(ctx context.Context, token, id string) error {
	if err := uc.catalog.DeleteProduct(ctx, token, id); err != nil {
		return err
	}
	uc.log.Info().Str("product", id).Msg("producto eliminado")
	return nil
}

func (uc *ProductUseCase) findProduct(ctx context.Context, token, id string) (entity.Product, error) {
	products, err := uc.catalog.FetchProducts(ctx, token)
	if err != nil {
		return entity.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.Product{}, domain.ErrNotFound
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:       p.ID,
		Code:     p.Code,
		Name:     p.Name,
		Unit:     p.Unit,
		Capacity: p.Capacity,
		Category: p.Category,
	}
}
