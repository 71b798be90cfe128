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

	"github.com/csf-za/tax-compliance-api/internal/application/auth"
	"github.com/csf-za/tax-compliance-api/internal/application/company"
	"github.com/csf-za/tax-compliance-api/internal/application/report"
	"github.com/csf-za/tax-compliance-api/internal/application/settings"
	appstatement "github.com/csf-za/tax-compliance-api/internal/application/statement"
	"github.com/csf-za/tax-compliance-api/internal/application/vatreturn"
	infrapdf "github.com/csf-za/tax-compliance-api/internal/infrastructure/pdf"
	"github.com/csf-za/tax-compliance-api/internal/infrastructure/postgres"
	infraxlsx "github.com/csf-za/tax-compliance-api/internal/infrastructure/xlsx"
	httpRouter "github.com/csf-za/tax-compliance-api/internal/interfaces/http"
	"github.com/csf-za/tax-compliance-api/pkg/config"
	"github.com/csf-za/tax-compliance-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	returnRepo := postgres.NewVATReturnRepository(pool)
	glRepo := postgres.NewGLEntryRepository(pool)
	importRepo := postgres.NewStatementImportRepository(pool)
	fileRepo := postgres.NewStatementFileRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	pdfGenerator := infrapdf.NewVAT201Generator()
	xlsxExporter := infraxlsx.NewReportExporter()

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := company.NewUseCase(companyRepo)
	statementUC := appstatement.NewImportUseCase(importRepo, fileRepo, txRunner, log)
	vatReturnUC := vatreturn.NewUseCase(returnRepo, glRepo, settingsRepo, companyRepo, txRunner, pdfGenerator, log)
	settingsUC := settings.NewUseCase(settingsRepo)
	reportUC := report.NewUseCase(returnRepo, xlsxExporter)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tax Compliance API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		StatementUC: statementUC,
		VATReturnUC: vatReturnUC,
		SettingsUC:  settingsUC,
		ReportUC:    reportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
