package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/sayednaweed/printing-mis-backend-go/internal/config"
	appHTTP "github.com/sayednaweed/printing-mis-backend-go/internal/handler/http"
	"github.com/sayednaweed/printing-mis-backend-go/internal/handler/http/middleware"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/cache"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/cron"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/database"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/email"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/jwt"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/oauth"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/storage"
	"github.com/sayednaweed/printing-mis-backend-go/internal/repository/postgresql"
	authService "github.com/sayednaweed/printing-mis-backend-go/internal/service/auth"
	employeeService "github.com/sayednaweed/printing-mis-backend-go/internal/service/employee"
	expenseService "github.com/sayednaweed/printing-mis-backend-go/internal/service/expense"
	"github.com/sayednaweed/printing-mis-backend-go/internal/service/file"
	inventoryService "github.com/sayednaweed/printing-mis-backend-go/internal/service/inventory"
	permissionService "github.com/sayednaweed/printing-mis-backend-go/internal/service/permission"
	preferenceService "github.com/sayednaweed/printing-mis-backend-go/internal/service/preference"
	reportService "github.com/sayednaweed/printing-mis-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	// Redis is optional: permission caching and table preferences degrade
	// gracefully without it.
	redisClient, err := cache.Connect(context.Background(), cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	permissionRepo := postgresql.NewPermissionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	itemRepo := postgresql.NewItemRepository(db)
	expenseRepo := postgresql.NewExpenseRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	permissionSvc := permissionService.NewPermissionService(permissionRepo, redisClient)
	authSvc := authService.NewAuthService(db, userRepo, jwtService, refreshTokenRepo, permissionSvc)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, fileService, emailService, cfg.App.FrontendURL)
	inventorySvc := inventoryService.NewItemService(db, itemRepo)
	expenseSvc := expenseService.NewExpenseService(expenseRepo, fileService)
	reportSvc := reportService.NewReportService(employeeRepo, itemRepo, expenseRepo)
	preferenceSvc := preferenceService.NewPreferenceService(redisClient)

	scheduler := cron.NewScheduler()
	maintenanceJobs := cron.NewMaintenanceJobs(refreshTokenRepo)
	if err := maintenanceJobs.RegisterJobs(scheduler); err != nil {
		log.Fatal("Failed to register cron jobs:", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(appHTTP.RouterDeps{
		JWTService:        jwtService,
		Guard:             middleware.NewGuard(permissionSvc),
		AuthHandler:       appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		MenuHandler:       appHTTP.NewMenuHandler(permissionSvc),
		EmployeeHandler:   appHTTP.NewEmployeeHandler(employeeSvc, preferenceSvc),
		InventoryHandler:  appHTTP.NewInventoryHandler(inventorySvc, preferenceSvc),
		ExpenseHandler:    appHTTP.NewExpenseHandler(expenseSvc, preferenceSvc),
		ReportHandler:     appHTTP.NewReportHandler(reportSvc),
		PreferenceHandler: appHTTP.NewPreferenceHandler(preferenceSvc),
		FrontendURL:       cfg.App.FrontendURL,
		Env:               cfg.App.Env,
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
