package dto

// DashboardStats tarjetas del tablero ejecutivo.
type DashboardStats struct {
	TotalProducts int `json:"totalProducts"`
	LowStockCount int `json:"lowStockCount"`
}

// SeriesPoint punto nombre/valor para gráficas de barras y de torta.
type SeriesPoint struct {
	Name  string  `json:"name" validate:"required"`
	Value float64 `json:"value"`
}

// ActivityItem movimiento reciente mostrado en el tablero.
type ActivityItem struct {
	Name   string `json:"name"`
	Action string `json:"action"`
	Time   string `json:"time"`
}

// DashboardResponse documento de analítica que entrega el remote store,
// validado en la frontera antes de reenviarse a la UI.
type DashboardResponse struct {
	Stats          DashboardStats `json:"stats"`
	RecentActivity []ActivityItem `json:"recentActivity"`
	MovementData   []SeriesPoint  `json:"movementData" validate:"dive"`
	PieData        []SeriesPoint  `json:"pieData" validate:"dive"`
}
