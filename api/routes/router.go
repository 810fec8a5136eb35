package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hardikraval/medlocate-backend/api/controllers"
	"github.com/hardikraval/medlocate-backend/api/middleware"
	"github.com/hardikraval/medlocate-backend/internal/auth"
	"github.com/hardikraval/medlocate-backend/internal/inventory"
	"github.com/hardikraval/medlocate-backend/internal/medicines"
	"github.com/hardikraval/medlocate-backend/internal/pharmacies"
	"github.com/hardikraval/medlocate-backend/internal/search"
	"github.com/hardikraval/medlocate-backend/internal/users"
	"github.com/hardikraval/medlocate-backend/pkg/auth/session"
	"github.com/hardikraval/medlocate-backend/pkg/config"
	"github.com/hardikraval/medlocate-backend/pkg/db"
	"github.com/hardikraval/medlocate-backend/pkg/gis"
	"github.com/hardikraval/medlocate-backend/pkg/logger"
	"github.com/hardikraval/medlocate-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           db.Pinger
	Redis        *redis.Client
	Sessions     session.Checker
	AuthService  auth.Service
	UserService  users.Service
	Pharmacies   pharmacies.Service
	Medicines    medicines.Service
	Inventory    inventory.Service
	Search       search.Service
	GIS          *gis.Client
	PromRegistry *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var cache db.Pinger
	if deps.Redis != nil {
		cache = deps.Redis
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, cache))
	})

	if deps.PromRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	// Discovery surface stays public.
	r.Route("/api/v1/search", func(r chi.Router) {
		r.Get("/", controllers.Search(deps.Search, logg))
	})

	r.Route("/api/v1/hospitals", func(r chi.Router) {
		r.Get("/nearby", controllers.HospitalsNearby(deps.GIS, logg))
	})

	r.Route("/api/v1/medicines", func(r chi.Router) {
		r.Get("/", controllers.MedicineList(deps.Medicines, logg))
		r.Get("/{medicineId}", controllers.MedicineGet(deps.Medicines, logg))
		r.With(middleware.Auth(cfg.JWT, deps.Sessions, logg)).Post("/", controllers.MedicineCreate(deps.Medicines, logg))
	})

	r.Route("/api/v1/pharmacies", func(r chi.Router) {
		r.Get("/{pharmacyId}", controllers.PharmacyGet(deps.Pharmacies, logg))
		r.Get("/{pharmacyId}/listings", controllers.InventoryList(deps.Inventory, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
			r.Get("/mine", controllers.PharmacyListMine(deps.Pharmacies, logg))
			r.Post("/", controllers.PharmacyCreate(deps.Pharmacies, logg))
			r.Patch("/{pharmacyId}", controllers.PharmacyUpdate(deps.Pharmacies, logg))
			r.Delete("/{pharmacyId}", controllers.PharmacyDelete(deps.Pharmacies, logg))
			r.Put("/{pharmacyId}/listings", controllers.InventoryUpsert(deps.Inventory, logg))
		})
	})

	r.Route("/api/v1/listings", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Delete("/{listingId}", controllers.InventoryDelete(deps.Inventory, logg))
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Get("/me", controllers.UserMe(deps.UserService, logg))
		r.Patch("/me", controllers.UserUpdateProfile(deps.UserService, logg))
		r.Post("/me/password", controllers.UserChangePassword(deps.UserService, logg))
		r.Delete("/me", controllers.UserDeleteAccount(deps.UserService, logg))
	})

	return r
}
