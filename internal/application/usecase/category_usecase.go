package usecase

import (
	"context"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/application/ports"
	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
	"github.com/jhoicas/omnistock-hub/pkg/logger"
)

// CategoryUseCase gestión de categorías del catálogo.
type CategoryUseCase struct {
	catalog ports.CatalogRemote
	log     *logger.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(catalog ports.CatalogRemote, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{catalog: catalog, log: log}
}

// List devuelve las categorías registradas.
func (uc *CategoryUseCase) List(ctx context.Context, token string) (*dto.CategoryListResponse, error) {
	categories, err := uc.catalog.FetchCategories(ctx, token)
	if err != nil {
		return nil, err
	}
	resp := &dto.CategoryListResponse{Items: make([]dto.CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Items = append(resp.Items, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description})
	}
	return resp, nil
}

// Create da de alta una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, token string, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	created, err := uc.catalog.CreateCategory(ctx, token, entity.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("category", created.ID).Str("name", created.Name).Msg("categoría creada")
	return &dto.CategoryResponse{ID: created.ID, Name: created.Name, Description: created.Description}, nil
}

// Delete elimina la categoría. Los productos que la usaban conservan el
// nombre como texto: el filtro de categoría sigue funcionando sobre él.
func (uc *CategoryUseCase) Delete(ctx context.Context, token, id string) error {
	if err := uc.catalog.DeleteCategory(ctx, token, id); err != nil {
		return err
	}
	uc.log.Info().Str("category", id).Msg("categoría eliminada")
	return nil
}
