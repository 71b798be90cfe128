package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/csf-za/tax-compliance-api/internal/application/auth"
	"github.com/csf-za/tax-compliance-api/internal/application/company"
	"github.com/csf-za/tax-compliance-api/internal/application/report"
	"github.com/csf-za/tax-compliance-api/internal/application/settings"
	"github.com/csf-za/tax-compliance-api/internal/application/statement"
	"github.com/csf-za/tax-compliance-api/internal/application/vatreturn"
	"github.com/csf-za/tax-compliance-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *company.UseCase
	StatementUC *statement.ImportUseCase
	VATReturnUC *vatreturn.UseCase
	SettingsUC  *settings.UseCase
	ReportUC    *report.UseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (public onboarding)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Bank statement imports
	statements := protected.Group("/statements")
	statementHandler := NewStatementHandler(deps.StatementUC)
	statements.Post("/", statementHandler.Create)
	statements.Get("/:id", statementHandler.Get)
	statements.Post("/:id/prepare", statementHandler.Prepare)
	statements.Get("/:id/preview", statementHandler.Preview)
	statements.Get("/:id/file", statementHandler.Download)

	// VAT returns; submission is restricted to admins
	returns := protected.Group("/vat-returns")
	vatReturnHandler := NewVATReturnHandler(deps.VATReturnUC)
	returns.Post("/", vatReturnHandler.Create)
	returns.Get("/:id", vatReturnHandler.Get)
	returns.Put("/:id", vatReturnHandler.Save)
	returns.Post("/:id/pull", vatReturnHandler.PullGLEntries)
	returns.Post("/:id/classify", vatReturnHandler.Classify)
	returns.Post("/:id/submit", RequireRole(entity.RoleAdmin), vatReturnHandler.Submit)
	returns.Get("/:id/pdf", vatReturnHandler.DownloadPDF)

	// Settings; edits are restricted to admins
	settingsGroup := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/vat-return", settingsHandler.Get)
	settingsGroup.Put("/vat-return", RequireRole(entity.RoleAdmin), settingsHandler.Upsert)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/linked-transactions", reportHandler.Run)
	reports.Get("/linked-transactions.xlsx", reportHandler.ExportXLSX)
}
