package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Se calcula sobre las facturas no eliminadas del usuario.
type DashboardSummaryDTO struct {
	Year         int              `json:"year"`
	InvoiceCount int              `json:"invoice_count"`
	TotalBilled  decimal.Decimal  `json:"total_billed"` // suma de totales con impuesto del año
	Outstanding  decimal.Decimal  `json:"outstanding"`  // draft + sent
	ByStatus     []StatusTotalDTO `json:"by_status"`
	Monthly      []MonthTotalDTO  `json:"monthly"` // siempre 12 elementos
	TopClients   []ClientTotalDTO `json:"top_clients"`
}

// StatusTotalDTO total por estado de factura.
type StatusTotalDTO struct {
	Status string          `json:"status"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// MonthTotalDTO total facturado en un mes.
type MonthTotalDTO struct {
	Month int             `json:"month"` // 1..12
	Label string          `json:"label"` // ej: "Abril"
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// ClientTotalDTO total facturado a un cliente.
type ClientTotalDTO struct {
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// LastRouteDTO cuerpo de GET/PUT /api/session/last-route.
type LastRouteDTO struct {
	Route string `json:"route"`
}
