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

	"github.com/onedelivery/onedelivery-api/internal/application/auth"
	appledger "github.com/onedelivery/onedelivery-api/internal/application/ledger"
	"github.com/onedelivery/onedelivery-api/internal/application/report"
	"github.com/onedelivery/onedelivery-api/internal/application/usecase"
	"github.com/onedelivery/onedelivery-api/internal/infrastructure/excel"
	infrapdf "github.com/onedelivery/onedelivery-api/internal/infrastructure/pdf"
	"github.com/onedelivery/onedelivery-api/internal/infrastructure/postgres"
	httpRouter "github.com/onedelivery/onedelivery-api/internal/interfaces/http"
	"github.com/onedelivery/onedelivery-api/pkg/config"
	"github.com/onedelivery/onedelivery-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	oilTypeRepo := postgres.NewOilTypeRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	sessionRepo := postgres.NewLoadSessionRepository(pool)
	historyRepo := postgres.NewEditHistoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := appledger.NewDefaultResolver(sessionRepo)

	registerUC := appledger.NewRegisterTransactionUseCase(txRunner, branchRepo, oilTypeRepo, log)
	editUC := appledger.NewEditTransactionUseCase(txRunner, transactionRepo, branchRepo, oilTypeRepo, resolver, log)
	impactUC := appledger.NewInventoryImpactUseCase(transactionRepo, resolver)
	queryUC := appledger.NewQueryUseCase(transactionRepo, sessionRepo, historyRepo)

	branchUC := usecase.NewBranchUseCase(branchRepo)
	oilTypeUC := usecase.NewOilTypeUseCase(oilTypeRepo)

	exportUC := report.NewExportUseCase(transactionRepo, excel.NewTransactionBookWriter())
	statementUC := report.NewStatementUseCase(sessionRepo, transactionRepo, infrapdf.NewMarotoStatementGenerator())

	authUC := auth.NewAuthUseCase(userRepo, branchRepo, auth.JWTConfig{
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
		Title:    "OneDelivery API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		RegisterUC:  registerUC,
		EditUC:      editUC,
		ImpactUC:    impactUC,
		QueryUC:     queryUC,
		BranchUC:    branchUC,
		OilTypeUC:   oilTypeUC,
		ExportUC:    exportUC,
		StatementUC: statementUC,
		Users:       userRepo,
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
