package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seshu362/kristalball-backend/internal/application/assetops"
	"github.com/seshu362/kristalball-backend/internal/application/auth"
	appledger "github.com/seshu362/kristalball-backend/internal/application/ledger"
	"github.com/seshu362/kristalball-backend/internal/application/procurement"
	"github.com/seshu362/kristalball-backend/internal/application/reports"
	"github.com/seshu362/kristalball-backend/internal/application/usecase"
	"github.com/seshu362/kristalball-backend/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	LedgerUC      *appledger.UseCase
	ReportUC      *reports.MovementReportUseCase
	PurchaseUC    *procurement.PurchaseUseCase
	TransferUC    *procurement.TransferUseCase
	AssignmentUC  *assetops.AssignmentUseCase
	ExpenditureUC *assetops.ExpenditureUseCase
	ReferenceUC   *usecase.ReferenceUseCase
	AssetUC       *usecase.AssetUseCase
	JWTSecret     string
}

// Router registers the API routes. Role checks live in the use cases; the
// route-level RequireRole guards only trim obvious cases before any work.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Login (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	// Protected routes (Bearer token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users
	protected.Get("/users", authHandler.ListUsers)
	protected.Post("/users", RequireRole(entity.RoleAdmin), authHandler.CreateUser)

	// Reference catalogs
	refHandler := NewReferenceHandler(deps.ReferenceUC)
	protected.Get("/bases", refHandler.ListBases)
	protected.Post("/bases", RequireRole(entity.RoleAdmin), refHandler.CreateBase)
	protected.Get("/equipment-types", refHandler.ListEquipmentTypes)
	protected.Post("/equipment-types", RequireRole(entity.RoleAdmin), refHandler.CreateEquipmentType)

	// Assets
	assetHandler := NewAssetHandler(deps.AssetUC)
	protected.Get("/assets", assetHandler.List)
	protected.Post("/assets", assetHandler.Create)

	// Dashboard
	dashHandler := NewDashboardHandler(deps.LedgerUC, deps.ReportUC)
	protected.Get("/dashboard", dashHandler.Summary)
	protected.Get("/dashboard/movement-details", dashHandler.MovementDetails)
	protected.Get("/dashboard/movement-details/export", dashHandler.ExportReport)

	// Purchases
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	protected.Get("/purchases", purchaseHandler.List)
	protected.Post("/purchases", purchaseHandler.Create)

	// Transfers
	transferHandler := NewTransferHandler(deps.TransferUC)
	protected.Get("/transfers", transferHandler.List)
	protected.Post("/transfers", transferHandler.Create)
	protected.Put("/transfers/:id/status", transferHandler.UpdateStatus)

	// Assignments
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	protected.Get("/assignments", assignmentHandler.List)
	protected.Post("/assignments", assignmentHandler.Create)
	protected.Put("/assignments/:id/return", assignmentHandler.Return)

	// Expenditures
	expenditureHandler := NewExpenditureHandler(deps.ExpenditureUC)
	protected.Get("/expenditures", expenditureHandler.List)
	protected.Post("/expenditures", expenditureHandler.Create)
}
