package dto

// ApplyMovementRequest registra un movimiento de inventario sobre un producto.
// ChangeQuantity es con signo: positivo entrada, negativo salida.
type ApplyMovementRequest struct {
	ProductID      string `json:"product_id"`
	ChangeQuantity int    `json:"change_quantity"`
	Reason         string `json:"reason"`
}
