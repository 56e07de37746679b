package dto

// CreateCategoryRequest alta de categoría (solo ADMIN).
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CategoryResponse representación pública de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryListResponse listado de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}
