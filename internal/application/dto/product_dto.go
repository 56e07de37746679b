package dto

// CreateProductRequest alta de producto en el catálogo (solo ADMIN).
type CreateProductRequest struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Unit     string `json:"unit"`
	Capacity int    `json:"capacity" validate:"min=0"`
	Category string `json:"category"`
}

// UpdateProductRequest actualización parcial: solo los campos presentes.
type UpdateProductRequest struct {
	Code     *string `json:"code,omitempty"`
	Name     *string `json:"name,omitempty"`
	Unit     *string `json:"unit,omitempty"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=0"`
	Category *string `json:"category,omitempty"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Capacity int    `json:"capacity"`
	Category string `json:"category"`
}

// ProductListResponse listado completo del catálogo (sin paginar: el
// catálogo es de decenas de SKUs).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
}
