package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenbasket/farmmarket-backend/api/controllers"
	"github.com/greenbasket/farmmarket-backend/api/middleware"
	cartsvc "github.com/greenbasket/farmmarket-backend/internal/cart"
	catalogsvc "github.com/greenbasket/farmmarket-backend/internal/catalog"
	checkoutsvc "github.com/greenbasket/farmmarket-backend/internal/checkout"
	detectionsvc "github.com/greenbasket/farmmarket-backend/internal/detection"
	historysvc "github.com/greenbasket/farmmarket-backend/internal/history"
	identitysvc "github.com/greenbasket/farmmarket-backend/internal/identity"
	ordersvc "github.com/greenbasket/farmmarket-backend/internal/orders"
	settingsvc "github.com/greenbasket/farmmarket-backend/internal/settings"
	"github.com/greenbasket/farmmarket-backend/pkg/config"
	"github.com/greenbasket/farmmarket-backend/pkg/db"
	"github.com/greenbasket/farmmarket-backend/pkg/logger"
	"github.com/greenbasket/farmmarket-backend/pkg/metrics"
	"github.com/greenbasket/farmmarket-backend/pkg/uploads"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        db.Pinger
	Gatherer  prometheus.Gatherer
	HTTP      *metrics.HTTPMetrics
	Uploads   *uploads.Store
	Identity  identitysvc.Service
	Catalog   catalogsvc.Service
	Orders    ordersvc.Service
	Carts     *cartsvc.Manager
	Checkout  checkoutsvc.Service
	Settings  settingsvc.Service
	History   historysvc.Service
	Detection *detectionsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg, logg := deps.Config, deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTP),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", controllers.Register(deps.Identity, logg))
		r.Post("/login", controllers.Login(deps.Identity, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, logg))
			r.Post("/", controllers.CreateProduct(deps.Catalog, deps.Uploads, cfg.Uploads, logg))
			r.Get("/farmer/{farmerId}", controllers.ListFarmerProducts(deps.Catalog, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(deps.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(deps.Orders, logg))
			r.Get("/customer/{userId}", controllers.ListCustomerOrders(deps.Orders, logg))
			r.Get("/farmer/{farmerId}", controllers.ListFarmerOrders(deps.Orders, logg))
		})

		r.Route("/cart/{userId}", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Carts, logg))
			r.Post("/", controllers.AddCartItem(deps.Carts, logg))
			r.Delete("/", controllers.ClearCart(deps.Carts, logg))
			r.Put("/items/{productId}", controllers.UpdateCartItem(deps.Carts, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.Carts, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Route("/settings/{userId}", func(r chi.Router) {
			r.Get("/", controllers.GetSettings(deps.Settings, logg))
			r.Put("/", controllers.UpdateSettings(deps.Settings, logg))
		})

		r.Route("/search-history/{userId}", func(r chi.Router) {
			r.Get("/", controllers.ListSearchHistory(deps.History, logg))
			r.Post("/", controllers.AddSearchTerm(deps.History, logg))
			r.Delete("/", controllers.ClearSearchHistory(deps.History, logg))
		})

		r.Post("/detect-disease", controllers.DetectDisease(deps.Detection, cfg.Uploads, logg))
		r.Get("/ai-health", controllers.AIHealth(deps.Detection, logg))
	})

	return r
}
