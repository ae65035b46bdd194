package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/employee"
	"github.com/sayednaweed/printing-mis-backend-go/internal/domain/permission"
	"github.com/sayednaweed/printing-mis-backend-go/internal/handler/http/middleware"
	"github.com/sayednaweed/printing-mis-backend-go/internal/pkg/jwt"
)

// Screen names as stored on permission rows. Guards key off these, and the
// client renders its sidebar from the same names.
const (
	ScreenEmployees = "employees"
	ScreenItems     = "items"
	ScreenExpenses  = "expenses"
	ScreenReports   = "reports"
)

type RouterDeps struct {
	JWTService        jwt.Service
	Guard             *middleware.Guard
	AuthHandler       AuthHandler
	MenuHandler       MenuHandler
	EmployeeHandler   EmployeeHandler
	InventoryHandler  InventoryHandler
	ExpenseHandler    ExpenseHandler
	ReportHandler     ReportHandler
	PreferenceHandler PreferenceHandler
	FrontendURL       string
	Env               string
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "printing-mis"),
		slog.String("version", "v1.0.0"),
		slog.String("env", deps.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	guard := deps.Guard

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", deps.AuthHandler.Login)
			r.Post("/refresh", deps.AuthHandler.RefreshToken)
			r.Post("/logout", deps.AuthHandler.Logout)
			r.Route("/oauth", func(r chi.Router) {
				r.Get("/google", deps.AuthHandler.LoginWithGoogle)
				r.Get("/callback/google", deps.AuthHandler.OAuthCallbackGoogle)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))
				r.Get("/me", deps.AuthHandler.Me)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(deps.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(deps.JWTService.JWTAuth()))

			r.Get("/menu", deps.MenuHandler.GetMenu)

			r.Route("/preferences/tables/{table}", func(r chi.Router) {
				r.Get("/page-size", deps.PreferenceHandler.GetPageSize)
				r.Put("/page-size", deps.PreferenceHandler.SetPageSize)
			})

			r.Route("/hr", func(r chi.Router) {
				r.Route("/employees", func(r chi.Router) {
					r.With(guard.RequireView(permission.PortalHR, ScreenEmployees)).
						Get("/", deps.EmployeeHandler.ListEmployees)
					r.With(guard.Require(permission.PortalHR, ScreenEmployees, permission.ActionAdd)).
						Post("/", deps.EmployeeHandler.CreateEmployee)

					// Onboarding wizard
					r.Route("/onboarding", func(r chi.Router) {
						r.Use(guard.Require(permission.PortalHR, ScreenEmployees, permission.ActionAdd))
						r.Post("/", deps.EmployeeHandler.StartOnboarding)
						r.Put("/{id}/personal", deps.EmployeeHandler.SavePersonalStep)
						r.Put("/{id}/position", deps.EmployeeHandler.SavePositionStep)
						r.Post("/{id}/complete", deps.EmployeeHandler.CompleteOnboarding)
					})

					r.Route("/{id}", func(r chi.Router) {
						r.With(guard.RequireView(permission.PortalHR, ScreenEmployees)).
							Get("/", deps.EmployeeHandler.GetEmployee)
						r.With(guard.Require(permission.PortalHR, ScreenEmployees, permission.ActionEdit)).
							Put("/", deps.EmployeeHandler.UpdateEmployee)
						r.With(guard.Require(permission.PortalHR, ScreenEmployees, permission.ActionDelete)).
							Delete("/", deps.EmployeeHandler.DeleteEmployee)

						// Documents tab
						r.Route("/documents", func(r chi.Router) {
							r.With(guard.RequireSub(permission.PortalHR, ScreenEmployees, employee.SubDocuments, permission.ActionView)).
								Get("/", deps.EmployeeHandler.ListDocuments)
							r.With(guard.RequireSub(permission.PortalHR, ScreenEmployees, employee.SubDocuments, permission.ActionAdd)).
								Post("/", deps.EmployeeHandler.UploadDocument)
						})

						// Promotion / demotion tab
						r.Route("/position-changes", func(r chi.Router) {
							r.With(guard.RequireSub(permission.PortalHR, ScreenEmployees, employee.SubPromotionDemotion, permission.ActionView)).
								Get("/", deps.EmployeeHandler.ListPositionChanges)
							r.With(guard.RequireSub(permission.PortalHR, ScreenEmployees, employee.SubPromotionDemotion, permission.ActionAdd)).
								Post("/", deps.EmployeeHandler.RecordPositionChange)
						})
					})

					r.Route("/documents/{documentID}", func(r chi.Router) {
						r.With(guard.RequireSub(permission.PortalHR, ScreenEmployees, employee.SubDocuments, permission.ActionView)).
							Get("/", deps.EmployeeHandler.DownloadDocument)
						r.With(guard.RequireSub(permission.PortalHR, ScreenEmployees, employee.SubDocuments, permission.ActionDelete)).
							Delete("/", deps.EmployeeHandler.DeleteDocument)
					})
				})

				r.With(guard.RequireView(permission.PortalHR, ScreenReports)).
					Get("/reports/employee-roster", deps.ReportHandler.EmployeeRoster)
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Route("/items", func(r chi.Router) {
					r.With(guard.RequireView(permission.PortalInventory, ScreenItems)).
						Get("/", deps.InventoryHandler.ListItems)
					r.With(guard.Require(permission.PortalInventory, ScreenItems, permission.ActionAdd)).
						Post("/", deps.InventoryHandler.CreateItem)

					r.Route("/{id}", func(r chi.Router) {
						r.With(guard.RequireView(permission.PortalInventory, ScreenItems)).
							Get("/", deps.InventoryHandler.GetItem)
						r.With(guard.Require(permission.PortalInventory, ScreenItems, permission.ActionEdit)).
							Put("/", deps.InventoryHandler.UpdateItem)
						r.With(guard.Require(permission.PortalInventory, ScreenItems, permission.ActionDelete)).
							Delete("/", deps.InventoryHandler.DeleteItem)

						r.With(guard.Require(permission.PortalInventory, ScreenItems, permission.ActionEdit)).
							Post("/adjustments", deps.InventoryHandler.AdjustStock)
						r.With(guard.RequireView(permission.PortalInventory, ScreenItems)).
							Get("/adjustments", deps.InventoryHandler.ListAdjustments)
					})
				})

				r.With(guard.RequireView(permission.PortalInventory, ScreenReports)).
					Get("/reports/stock-on-hand", deps.ReportHandler.StockOnHand)
			})

			r.Route("/expense", func(r chi.Router) {
				r.Route("/expenses", func(r chi.Router) {
					r.With(guard.RequireView(permission.PortalExpense, ScreenExpenses)).
						Get("/", deps.ExpenseHandler.ListExpenses)
					r.With(guard.Require(permission.PortalExpense, ScreenExpenses, permission.ActionAdd)).
						Post("/", deps.ExpenseHandler.CreateExpense)

					r.Route("/{id}", func(r chi.Router) {
						r.With(guard.RequireView(permission.PortalExpense, ScreenExpenses)).
							Get("/", deps.ExpenseHandler.GetExpense)
						r.With(guard.Require(permission.PortalExpense, ScreenExpenses, permission.ActionEdit)).
							Put("/", deps.ExpenseHandler.UpdateExpense)
						r.With(guard.Require(permission.PortalExpense, ScreenExpenses, permission.ActionDelete)).
							Delete("/", deps.ExpenseHandler.DeleteExpense)

						r.With(guard.Require(permission.PortalExpense, ScreenExpenses, permission.ActionEdit)).
							Post("/approve", deps.ExpenseHandler.ApproveExpense)
						r.With(guard.Require(permission.PortalExpense, ScreenExpenses, permission.ActionEdit)).
							Post("/reject", deps.ExpenseHandler.RejectExpense)

						r.With(guard.Require(permission.PortalExpense, ScreenExpenses, permission.ActionEdit)).
							Post("/receipt", deps.ExpenseHandler.UploadReceipt)
						r.With(guard.RequireView(permission.PortalExpense, ScreenExpenses)).
							Get("/receipt", deps.ExpenseHandler.DownloadReceipt)
					})
				})

				r.With(guard.RequireView(permission.PortalExpense, ScreenReports)).
					Get("/reports/expense-summary", deps.ReportHandler.ExpenseSummary)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return r
}
