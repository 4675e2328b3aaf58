// Command server runs the ComplyHub HTTP API.
//
// @title ComplyHub API
// @version 1.0
// @description Compliance task generation, evidence tracking, and status reconciliation for startups.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"fmt"
	"log"

	"complyhub/internal/compliance"
	"complyhub/internal/config"
	"complyhub/internal/handler"
	"complyhub/internal/notify/noop"
	"complyhub/internal/notify/ses"
	"complyhub/internal/port"
	"complyhub/internal/repository/postgres"
	"complyhub/internal/router"
	"complyhub/internal/service"
	s3storage "complyhub/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	startupRepo := postgres.NewStartupRepo(db)
	ruleRepo := postgres.NewRuleRepo(db)
	taskRepo := postgres.NewTaskRepo(db)
	uploadRepo := postgres.NewUploadRepo(db)
	userRepo := postgres.NewUserRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize notifier
	var notifier port.Notifier
	if cfg.Email.Provider == "ses" {
		notifier, err = ses.NewSESNotifier(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
	} else {
		notifier = noop.NewNoopNotifier()
	}

	// Initialize the compliance engine
	materializer := compliance.NewMaterializer(ruleRepo, taskRepo, startupRepo)
	reconciler := compliance.NewReconciler(materializer, taskRepo, uploadRepo, startupRepo)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	complianceSvc := service.NewComplianceService(reconciler, taskRepo, startupRepo, notifier)
	uploadSvc := service.NewUploadService(uploadRepo, taskRepo, s3Client, &cfg.S3)
	startupSvc := service.NewStartupService(startupRepo, reconciler)
	ruleSvc := service.NewRuleService(ruleRepo)
	userSvc := service.NewUserService(userRepo)
	exportSvc := service.NewExportService(complianceSvc, startupRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	startupH := handler.NewStartupHandler(startupSvc)
	complianceH := handler.NewComplianceHandler(complianceSvc, exportSvc)
	uploadH := handler.NewUploadHandler(uploadSvc)
	ruleH := handler.NewRuleHandler(ruleSvc)
	userH := handler.NewUserHandler(userSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, startupH, complianceH, uploadH, ruleH, userH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
