package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenhollow/leafmarket-pricing/api/controllers"
	"github.com/greenhollow/leafmarket-pricing/api/middleware"
	cartsvc "github.com/greenhollow/leafmarket-pricing/internal/cart"
	"github.com/greenhollow/leafmarket-pricing/internal/discounts"
	"github.com/greenhollow/leafmarket-pricing/internal/promotions"
	"github.com/greenhollow/leafmarket-pricing/pkg/config"
	"github.com/greenhollow/leafmarket-pricing/pkg/db"
	"github.com/greenhollow/leafmarket-pricing/pkg/logger"
	"github.com/greenhollow/leafmarket-pricing/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient db.Pinger,
	redisClient *redis.Client,
	discountService discounts.Service,
	cartService cartsvc.Service,
	promotionService promotions.Service,
	metricsGatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	promoPolicy := middleware.NewPromoRateLimitPolicy(
		cfg.Promotions.ValidateWindow,
		cfg.Promotions.ValidateRateLimit,
	)

	readyDeps := map[string]controllers.Pinger{"db": dbClient}
	if redisClient != nil {
		readyDeps["redis"] = redisClient
	}
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	if metricsGatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(metricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/pricing/quote", controllers.PricingQuote(discountService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
			r.Put("/items/{productId}", controllers.CartItemUpsert(cartService, logg))
			r.Delete("/items/{productId}", controllers.CartItemRemove(cartService, logg))
		})

		r.With(middleware.PromoRateLimit(promoPolicy, redisClient, logg)).
			Post("/promotions/validate", controllers.PromotionValidate(promotionService, logg))

		r.Route("/discounts", func(r chi.Router) {
			r.Get("/", controllers.DiscountList(discountService, logg))
			r.Post("/", controllers.DiscountCreate(discountService, logg))
			r.Get("/{discountId}", controllers.DiscountFetch(discountService, logg))
			r.Patch("/{discountId}", controllers.DiscountUpdate(discountService, logg))
			r.Delete("/{discountId}", controllers.DiscountDelete(discountService, logg))
		})
	})

	return r
}
