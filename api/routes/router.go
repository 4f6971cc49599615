package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harborview/procurestock-backend/api/controllers"
	"github.com/harborview/procurestock-backend/api/middleware"
	authsvc "github.com/harborview/procurestock-backend/internal/auth"
	"github.com/harborview/procurestock-backend/internal/inventory"
	"github.com/harborview/procurestock-backend/internal/notifications"
	"github.com/harborview/procurestock-backend/internal/purchasing"
	"github.com/harborview/procurestock-backend/internal/receiving"
	"github.com/harborview/procurestock-backend/pkg/config"
	"github.com/harborview/procurestock-backend/pkg/db"
	"github.com/harborview/procurestock-backend/pkg/logger"
	"github.com/harborview/procurestock-backend/pkg/metrics"
	"github.com/harborview/procurestock-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DBPinger      db.Pinger
	Redis         *redis.Client
	AuthService   authsvc.Service
	Purchasing    purchasing.Service
	Receiving     receiving.Service
	Inventory     inventory.Service
	Notifications notifications.Service
	Metrics       *metrics.ReceivingMetrics
	Gatherer      prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	// A typed-nil *redis.Client must not reach handlers as a non-nil
	// interface value.
	var redisPinger redis.Pinger
	var idempotencyStore redis.IdempotencyStore
	if deps.Redis != nil {
		redisPinger = deps.Redis
		idempotencyStore = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, redisPinger))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(idempotencyStore, cfg.Receiving.IdempotencyTTL, logg))

		r.Route("/purchase-orders", func(r chi.Router) {
			r.Get("/", controllers.ListPurchaseOrders(deps.Purchasing, logg))
			r.Get("/{orderId}", controllers.PurchaseOrderDetail(deps.Purchasing, logg))
			r.Get("/{orderId}/reconciliation", controllers.PurchaseOrderReconciliation(deps.Receiving, logg))
			r.Post("/{orderId}/receipts", controllers.CreateReceipt(deps.Receiving, deps.Notifications, deps.Metrics, logg))
		})

		r.Route("/receipts", func(r chi.Router) {
			r.Get("/", controllers.ListReceipts(deps.Receiving, logg))
			r.Get("/{receiptId}", controllers.ReceiptDetail(deps.Receiving, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.ListInventory(deps.Inventory, logg))
			r.Get("/ledger", controllers.ListInventoryLedger(deps.Inventory, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(deps.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.Notifications, logg))
		})
	})

	return r
}
