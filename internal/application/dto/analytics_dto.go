package dto

import "time"

// SeriesPointDTO punto (timestamp, cantidad) de una serie histórica,
// programada o pronosticada.
type SeriesPointDTO struct {
	Timestamp time.Time `json:"timestamp"`
	Quantity  int       `json:"quantity"`
}

// AnomalyDTO movimiento marcado como anómalo, enriquecido con el nombre del
// producto. EventDate se formatea como "2006-01-02 15:04".
type AnomalyDTO struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	ChangeQuantity int    `json:"change_quantity"`
	Reason         string `json:"reason"`
	EventDate      string `json:"event_date"`
}

// DashboardKPIsDTO contadores del tablero principal.
type DashboardKPIsDTO struct {
	TotalProducts int `json:"total_products"`
	LowStockItems int `json:"low_stock_items"`
}
