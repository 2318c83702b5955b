package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/FACorreiaa/realestate-ads/app/middleware"
	"github.com/FACorreiaa/realestate-ads/internal/api"
	"github.com/FACorreiaa/realestate-ads/internal/api/announcement"
	"github.com/FACorreiaa/realestate-ads/internal/api/auth"
	"github.com/FACorreiaa/realestate-ads/internal/api/company"
	"github.com/FACorreiaa/realestate-ads/internal/api/user"
	"github.com/FACorreiaa/realestate-ads/internal/types"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler         *auth.AuthHandler
	AnnouncementHandler *announcement.AnnouncementHandler
	CompanyHandler      *company.CompanyHandler
	UserHandler         *user.HandlerImpl
	Gate                *auth.Gate
	AllowedOrigins      []string
	Logger              *slog.Logger
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (request id, logging, recoverer) are applied in
// main.go before this router is mounted.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()
	tokenHeader := cfg.Gate.Header()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", tokenHeader, "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{tokenHeader, "Link", api.TotalCountHeader, api.AlertHeader, api.ErrorHeader, api.ParamsHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Every route below goes through the gate; public paths are decided by
	// security.publicRoutes.
	r.Use(cfg.Gate.Authenticate)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/refresh", cfg.AuthHandler.RefreshToken)
			r.Get("/me", cfg.AuthHandler.Me)
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Get("/search", cfg.AnnouncementHandler.Search)
			r.Get("/{id}", cfg.AnnouncementHandler.GetAnnouncement)
			r.Post("/{id}/reports", cfg.AnnouncementHandler.ReportAnnouncement)
			r.Post("/{id}/images", cfg.AnnouncementHandler.UploadImage)
			r.With(appMiddleware.RequireRole(cfg.Logger, types.RoleAdmin)).
				Delete("/{id}", cfg.AnnouncementHandler.DeleteAnnouncement)
		})

		r.Route("/companies", func(r chi.Router) {
			r.Get("/search", cfg.CompanyHandler.Search)
			r.Get("/{id}", cfg.CompanyHandler.GetCompany)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/search", cfg.UserHandler.SearchUsers)
			r.Get("/{id}", cfg.UserHandler.GetUser)
		})
	})

	return r
}
