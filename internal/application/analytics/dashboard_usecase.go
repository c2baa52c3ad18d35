// Package analytics contiene los casos de uso para el dashboard de facturación.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
	domainbilling "github.com/jhoicas/Facturador-api/internal/domain/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

const dashboardTopClients = 5 // número de clientes en el widget del dashboard

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// DashboardUseCase agrega las facturas del usuario para los gráficos del dashboard.
//
// Fuente de datos: InvoiceStore (la misma caché que usa el listado).
// Las facturas en la papelera no cuentan. Los importes se suman sin convertir moneda.
type DashboardUseCase struct {
	store *billing.InvoiceStore
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store *billing.InvoiceStore) *DashboardUseCase {
	return &DashboardUseCase{store: store, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO del año indicado (0 = año en curso).
func (uc *DashboardUseCase) GetSummary(ctx context.Context, userID string, year int) (*dto.DashboardSummaryDTO, error) {
	if year <= 0 {
		year = uc.now().Year()
	}
	list, err := uc.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: facturas: %w", err)
	}
	return Summarize(billing.FilterDeleted(list, false), year), nil
}

// Summarize calcula el resumen sobre una lista ya filtrada de facturas activas.
func Summarize(invoices []*entity.Invoice, year int) *dto.DashboardSummaryDTO {
	out := &dto.DashboardSummaryDTO{
		Year:        year,
		TotalBilled: decimal.Zero,
		Outstanding: decimal.Zero,
		Monthly:     make([]dto.MonthTotalDTO, 12),
		TopClients:  []dto.ClientTotalDTO{},
	}
	for i := range out.Monthly {
		out.Monthly[i] = dto.MonthTotalDTO{Month: i + 1, Label: monthNames[i], Total: decimal.Zero}
	}

	statuses := []string{entity.InvoiceStatusDraft, entity.InvoiceStatusSent, entity.InvoiceStatusPaid}
	byStatus := make(map[string]*dto.StatusTotalDTO, len(statuses))
	for _, s := range statuses {
		byStatus[s] = &dto.StatusTotalDTO{Status: s, Total: decimal.Zero}
	}
	clients := make(map[string]*dto.ClientTotalDTO)

	for _, inv := range invoices {
		if inv.Date.Year() != year {
			continue
		}
		total := domainbilling.InvoiceGrandTotal(inv)
		out.InvoiceCount++
		out.TotalBilled = out.TotalBilled.Add(total)

		if st, ok := byStatus[inv.Status]; ok {
			st.Count++
			st.Total = st.Total.Add(total)
		}
		if inv.Status != entity.InvoiceStatusPaid {
			out.Outstanding = out.Outstanding.Add(total)
		}

		m := &out.Monthly[inv.Date.Month()-1]
		m.Count++
		m.Total = m.Total.Add(total)

		c, ok := clients[inv.Client.Name]
		if !ok {
			c = &dto.ClientTotalDTO{Name: inv.Client.Name, Total: decimal.Zero}
			clients[inv.Client.Name] = c
		}
		c.Count++
		c.Total = c.Total.Add(total)
	}

	for _, s := range statuses {
		out.ByStatus = append(out.ByStatus, *byStatus[s])
	}

	for _, c := range clients {
		out.TopClients = append(out.TopClients, *c)
	}
	sort.Slice(out.TopClients, func(i, j int) bool {
		a, b := out.TopClients[i], out.TopClients[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Name < b.Name
	})
	if len(out.TopClients) > dashboardTopClients {
		out.TopClients = out.TopClients[:dashboardTopClients]
	}
	return out
}
