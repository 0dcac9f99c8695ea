package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mobicorp/spaceplanner-backend/api/controllers"
	cartcontrollers "github.com/mobicorp/spaceplanner-backend/api/controllers/cart"
	plannercontrollers "github.com/mobicorp/spaceplanner-backend/api/controllers/planner"
	"github.com/mobicorp/spaceplanner-backend/api/middleware"
	"github.com/mobicorp/spaceplanner-backend/internal/cart"
	"github.com/mobicorp/spaceplanner-backend/internal/inventory"
	"github.com/mobicorp/spaceplanner-backend/internal/planner"
	"github.com/mobicorp/spaceplanner-backend/pkg/config"
	"github.com/mobicorp/spaceplanner-backend/pkg/logger"
	"github.com/mobicorp/spaceplanner-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	redisClient redis.Pinger,
	plannerService planner.Service,
	cartService cart.Service,
	catalog inventory.Catalog,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	var checks []controllers.ReadinessCheck
	if redisClient != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "redis", Check: redisClient.Ping})
	}

	r.Get("/", controllers.Root())
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, checks...))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.RecoverWith(logg, plannercontrollers.PanicFallback)).
			Post("/space-planner", plannercontrollers.SpacePlanner(plannerService, cartService, logg))
		r.Get("/catalog", controllers.CatalogList(catalog, logg))

		r.Route("/carts/{cartId}", func(r chi.Router) {
			r.Use(middleware.CartScope(logg))
			r.Get("/", cartcontrollers.CartFetch(cartService, logg))
			r.Put("/", cartcontrollers.CartReplace(cartService, logg))
			r.Delete("/", cartcontrollers.CartClear(cartService, logg))
			r.Get("/summary", cartcontrollers.CartOrderSummary(cartService, logg))
			r.Post("/items", cartcontrollers.CartAddItem(cartService, logg))
			r.Patch("/items/{productId}", cartcontrollers.CartSetQuantity(cartService, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(cartService, logg))
		})
	})

	return r
}
