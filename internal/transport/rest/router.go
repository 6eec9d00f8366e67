package rest

import (
	"log/slog"

	"github.com/frahmantamala/salary-calculator/internal/auth"
	"github.com/frahmantamala/salary-calculator/internal/employee"
	"github.com/frahmantamala/salary-calculator/internal/history"
	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/frahmantamala/salary-calculator/internal/theme"
	"github.com/frahmantamala/salary-calculator/internal/transport/middleware"
	"github.com/frahmantamala/salary-calculator/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// Handlers groups everything mounted under /api/v1. Nil handlers leave
// their routes out.
type Handlers struct {
	Health      *HealthHandler
	Auth        *auth.Handler
	Roles       *auth.RoleAuthorization
	Calculation *salary.Handler
	History     *history.Handler
	Employee    *employee.Handler
	Theme       *theme.Handler
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI document and Swagger UI at root
	router.Get(swagger.SpecPath, swagger.SpecHandler)
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		if h.Theme != nil {
			r.Get("/theme", h.Theme.GetTheme)
			r.Put("/theme", h.Theme.SetTheme)
			r.Post("/theme/toggle", h.Theme.ToggleTheme)
		}

		if h.Auth == nil {
			return
		}

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", h.Auth.Register)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Routes that need a signed-in user
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.SessionMiddleware)

			pr.Get("/users/me", h.Auth.Me)

			if h.Calculation != nil {
				pr.Get("/calculations/defaults", h.Calculation.DefaultRates)
				pr.Post("/calculations", h.Calculation.Calculate)
			}

			if h.History != nil {
				pr.Post("/calculations/save", h.History.SaveCalculation)
				pr.Route("/history", func(hr chi.Router) {
					hr.Get("/", h.History.ListHistory)
					hr.Get("/export", h.History.ExportHistory)
					hr.Delete("/{id}", h.History.DeleteHistory)
				})
			}

			if h.Employee != nil && h.Roles != nil {
				pr.Route("/employees", func(er chi.Router) {
					er.Use(h.Roles.RequireCompany())
					er.Get("/", h.Employee.ListEmployees)
					er.Post("/", h.Employee.CreateEmployee)
					er.Put("/{id}", h.Employee.UpdateEmployee)
					er.Delete("/{id}", h.Employee.DeleteEmployee)
					er.Post("/{id}/calculate", h.Employee.CalculateEmployee)
				})
			}
		})
	})
}
