package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/onedelivery/onedelivery-api/internal/application/auth"
	appledger "github.com/onedelivery/onedelivery-api/internal/application/ledger"
	"github.com/onedelivery/onedelivery-api/internal/application/report"
	"github.com/onedelivery/onedelivery-api/internal/application/usecase"
	"github.com/onedelivery/onedelivery-api/internal/domain/entity"
	"github.com/onedelivery/onedelivery-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	RegisterUC  *appledger.RegisterTransactionUseCase
	EditUC      *appledger.EditTransactionUseCase
	ImpactUC    *appledger.InventoryImpactUseCase
	QueryUC     *appledger.QueryUseCase
	BranchUC    *usecase.BranchUseCase
	OilTypeUC   *usecase.OilTypeUseCase
	ExportUC    *report.ExportUseCase
	StatementUC *report.StatementUseCase
	Users       repository.UserRepository
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

	// Transacciones del libro mayor (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.RegisterUC, deps.EditUC, deps.ImpactUC, deps.QueryUC, deps.Users)
	transactions.Post("/", transactionHandler.Register)
	transactions.Get("/", transactionHandler.List)
	transactions.Post("/impact", transactionHandler.Impact)
	transactions.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleDriver), transactionHandler.Edit)
	transactions.Get("/:id/history", transactionHandler.History)

	// Sesiones de carga (protegido)
	sessions := protected.Group("/sessions")
	sessionHandler := NewSessionHandler(deps.QueryUC)
	sessions.Get("/active", sessionHandler.ListActive)
	sessions.Get("/:id", sessionHandler.GetByID)

	// Sucursales (protegido; creación solo admin)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", RequireRole(entity.RoleAdmin), branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)

	// Tipos de aceite (protegido; creación solo admin)
	oilTypes := protected.Group("/oil-types")
	oilTypeHandler := NewOilTypeHandler(deps.OilTypeUC)
	oilTypes.Post("/", RequireRole(entity.RoleAdmin), oilTypeHandler.Create)
	oilTypes.Get("/", oilTypeHandler.List)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ExportUC, deps.StatementUC)
	reports.Get("/transactions.xlsx", reportHandler.ExportTransactions)
	reports.Get("/sessions/:id.pdf", reportHandler.SessionStatement)
}
