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

	"github.com/seshu362/kristalball-backend/internal/application/assetops"
	"github.com/seshu362/kristalball-backend/internal/application/auth"
	appledger "github.com/seshu362/kristalball-backend/internal/application/ledger"
	"github.com/seshu362/kristalball-backend/internal/application/procurement"
	"github.com/seshu362/kristalball-backend/internal/application/reports"
	"github.com/seshu362/kristalball-backend/internal/application/usecase"
	"github.com/seshu362/kristalball-backend/internal/infrastructure/authsvc"
	infrapdf "github.com/seshu362/kristalball-backend/internal/infrastructure/pdf"
	"github.com/seshu362/kristalball-backend/internal/infrastructure/postgres"
	httpRouter "github.com/seshu362/kristalball-backend/internal/interfaces/http"
	"github.com/seshu362/kristalball-backend/pkg/config"
	"github.com/seshu362/kristalball-backend/pkg/logger"
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

	baseRepo := postgres.NewBaseRepository(pool)
	equipmentRepo := postgres.NewEquipmentTypeRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	expenditureRepo := postgres.NewExpenditureRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	policy := auth.NewRolePolicy()

	// Credential verification: local bcrypt against the users table, or the
	// remote auth service when AUTH_MODE=remote.
	var verifier auth.CredentialVerifier
	switch cfg.Auth.Mode {
	case "remote":
		verifier = authsvc.NewClient(cfg.Auth.RemoteURL, time.Duration(cfg.Auth.TimeoutMS)*time.Millisecond)
		log.Info().Str("url", cfg.Auth.RemoteURL).Msg("using remote credential verification")
	default:
		verifier = auth.NewLocalVerifier(userRepo)
	}

	authUC := auth.NewUseCase(verifier, userRepo, policy, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	ledgerUC := appledger.NewUseCase(
		baseRepo, equipmentRepo, purchaseRepo, transferRepo,
		expenditureRepo, assignmentRepo, assetRepo,
	)
	reportUC := reports.NewMovementReportUseCase(ledgerUC, infrapdf.NewMarotoReportGenerator())

	purchaseUC := procurement.NewPurchaseUseCase(txRunner, policy, baseRepo, equipmentRepo, purchaseRepo)
	transferUC := procurement.NewTransferUseCase(txRunner, policy, baseRepo, equipmentRepo, transferRepo)
	assignmentUC := assetops.NewAssignmentUseCase(txRunner, policy, baseRepo, userRepo, assignmentRepo)
	expenditureUC := assetops.NewExpenditureUseCase(txRunner, policy, baseRepo, equipmentRepo, expenditureRepo)
	referenceUC := usecase.NewReferenceUseCase(baseRepo, equipmentRepo, policy)
	assetUC := usecase.NewAssetUseCase(assetRepo, baseRepo, equipmentRepo, policy)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kristalball API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		LedgerUC:      ledgerUC,
		ReportUC:      reportUC,
		PurchaseUC:    purchaseUC,
		TransferUC:    transferUC,
		AssignmentUC:  assignmentUC,
		ExpenditureUC: expenditureUC,
		ReferenceUC:   referenceUC,
		AssetUC:       assetUC,
		JWTSecret:     cfg.JWT.Secret,
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
