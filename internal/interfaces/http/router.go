package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Facturador-api/internal/application/analytics"
	"github.com/jhoicas/Facturador-api/internal/application/auth"
	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/export"
	"github.com/jhoicas/Facturador-api/internal/application/session"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *billing.CompanySettingsUseCase
	Templates   *billing.TemplateStore
	InvoiceUC   *billing.InvoiceUseCase
	BulkUC      *billing.BulkGenerateUseCase
	ExportUC    *export.UseCase
	DashboardUC *appanalytics.DashboardUseCase
	SessionUC   *session.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Perfil de empresa (emisor)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company-settings", companyHandler.Get)
	protected.Put("/company-settings", companyHandler.Save)

	// Plantillas de clientes
	templates := protected.Group("/templates")
	templateHandler := NewTemplateHandler(deps.Templates)
	templates.Get("/", templateHandler.List)
	templates.Post("/", templateHandler.Create)
	templates.Put("/:id", templateHandler.Update)
	templates.Delete("/:id", templateHandler.Delete)

	// Invoices: las rutas fijas van antes que /:id
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.BulkUC, deps.ExportUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Patch("/bulk", invoiceHandler.BulkUpdate)
	invoices.Post("/bulk-generate", invoiceHandler.BulkGenerate)
	invoices.Post("/export", invoiceHandler.Export)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.SoftDelete)
	invoices.Post("/:id/restore", invoiceHandler.Restore)
	invoices.Delete("/:id/permanent", invoiceHandler.HardDelete)
	invoices.Get("/:id/document", invoiceHandler.Document)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)

	sessionHandler := NewSessionHandler(deps.SessionUC)
	protected.Get("/session/last-route", sessionHandler.GetLastRoute)
	protected.Put("/session/last-route", sessionHandler.SaveLastRoute)
}
