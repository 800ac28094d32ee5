package dto

import "time"

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ReorderPoint int    `json:"reorder_point"`
}

// UpdateProductRequest actualización parcial de producto. Los punteros nil
// dejan el campo sin tocar. El balance no es editable por esta vía: solo el
// procesador de movimientos lo modifica.
type UpdateProductRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ReorderPoint *int    `json:"reorder_point"`
}

// ProductResponse representación de un producto en respuestas HTTP.
type ProductResponse struct {
	ID             string    `json:"id"`
	SKU            string    `json:"sku"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	ReorderPoint   int       `json:"reorder_point"`
	QuantityOnHand int       `json:"quantity_on_hand"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
