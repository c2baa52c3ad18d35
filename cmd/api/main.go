package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/Facturador-api/internal/application/analytics"
	"github.com/jhoicas/Facturador-api/internal/application/auth"
	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/export"
	"github.com/jhoicas/Facturador-api/internal/application/numbering"
	"github.com/jhoicas/Facturador-api/internal/application/session"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/archive"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Facturador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/ubl"
	httpRouter "github.com/jhoicas/Facturador-api/internal/interfaces/http"
	"github.com/jhoicas/Facturador-api/pkg/config"
	"github.com/jhoicas/Facturador-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, closeStorage := openStorage(ctx, cfg, log)
	defer closeStorage()

	numbers := numbering.NewGenerator(repos.kv, log.Component("numbering"))
	invoiceStore := billing.NewInvoiceStore(repos.invoices, log.Component("invoice_store"))
	templateStore := billing.NewTemplateStore(repos.templates, log.Component("template_store"))
	settingsUC := billing.NewCompanySettingsUseCase(repos.settings)
	invoiceUC := billing.NewInvoiceUseCase(invoiceStore, templateStore, settingsUC, numbers, log.Component("invoices"))
	bulkUC := billing.NewBulkGenerateUseCase(invoiceStore, templateStore, settingsUC, numbers, log.Component("bulk_generate"))

	// Documentos: PDF (maroto) y XML UBL 2.1, empaquetados en ZIP para la exportación masiva.
	exportUC := export.NewUseCase(invoiceStore, map[string]export.Renderer{
		export.FormatPDF: infrapdf.NewMarotoPDFGenerator(),
		export.FormatXML: ubl.NewXMLRenderer(),
	}, archive.NewZipBuilder(), cfg.Export.DefaultFormat, log.Component("export"))

	dashboardUC := appanalytics.NewDashboardUseCase(invoiceStore)
	sessionUC := session.NewUseCase(repos.kv)
	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturador API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   settingsUC,
		Templates:   templateStore,
		InvoiceUC:   invoiceUC,
		BulkUC:      bulkUC,
		ExportUC:    exportUC,
		DashboardUC: dashboardUC,
		SessionUC:   sessionUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// storage agrupa los repositorios que consumen los casos de uso.
type storage struct {
	users     repository.UserRepository
	invoices  repository.InvoiceRepository
	templates repository.TemplateRepository
	settings  repository.CompanySettingsRepository
	kv        repository.KVStore
}

// openStorage abre PostgreSQL (con migraciones) o, con STORAGE_DRIVER=memory,
// arma repositorios en memoria sin conexión a base de datos.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage, func()) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al detener el proceso")
		return storage{
			users:     memory.NewUserRepository(),
			invoices:  memory.NewInvoiceRepository(),
			templates: memory.NewTemplateRepository(),
			settings:  memory.NewCompanySettingsRepository(),
			kv:        memory.NewKVStore(),
		}, func() {}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("migraciones")
	}

	// Contador de facturas y última ruta: PostgreSQL o memoria (solo desarrollo).
	var kv repository.KVStore = postgres.NewKVStore(pool)
	if cfg.Storage.KVDriver == config.DriverMemory {
		log.Warn().Msg("almacén clave-valor en memoria: el contador se reinicia con el proceso")
		kv = memory.NewKVStore()
	}

	return storage{
		users:     postgres.NewUserRepository(pool),
		invoices:  postgres.NewInvoiceRepository(pool),
		templates: postgres.NewTemplateRepository(pool),
		settings:  postgres.NewCompanySettingsRepository(pool),
		kv:        kv,
	}, pool.Close
}
