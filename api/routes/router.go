package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chexseeds/chexseeds-backend/api/controllers"
	"github.com/chexseeds/chexseeds-backend/api/middleware"
	"github.com/chexseeds/chexseeds-backend/internal/cart"
	"github.com/chexseeds/chexseeds-backend/internal/checkout"
	"github.com/chexseeds/chexseeds-backend/internal/contact"
	"github.com/chexseeds/chexseeds-backend/internal/notifications"
	"github.com/chexseeds/chexseeds-backend/internal/orders"
	product "github.com/chexseeds/chexseeds-backend/internal/products"
	"github.com/chexseeds/chexseeds-backend/pkg/config"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
	"github.com/chexseeds/chexseeds-backend/pkg/metrics"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       controllers.Pinger
	HTTPMetrics *metrics.HTTPMetrics

	CartManager  *cart.Manager
	CheckoutFlow *checkout.Flow
	Products     product.Service
	Orders       orders.Service
	Emails       *notifications.EmailService
	WhatsApp     *notifications.WhatsAppService
	Contact      contact.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.Products, logg))
		r.Get("/products/{slug}", controllers.GetProduct(deps.Products, logg))

		r.Post("/contact", controllers.SubmitContact(deps.Contact, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(deps.CartManager, logg))
				r.Delete("/", controllers.ClearCart(deps.CartManager, logg))
				r.Post("/items", controllers.AddCartItem(deps.CartManager, deps.Products, logg))
				r.Patch("/items/{productID}", controllers.UpdateCartItem(deps.CartManager, logg))
				r.Delete("/items/{productID}", controllers.RemoveCartItem(deps.CartManager, logg))
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Patch("/customer-info", controllers.UpdateCustomerInfo(deps.CartManager, logg))
				r.Post("/step", controllers.SetCheckoutStep(deps.CartManager, logg))
				r.Post("/reset", controllers.ResetCheckout(deps.CartManager, logg))
			})

			r.Post("/orders", controllers.SubmitOrder(deps.CartManager, deps.CheckoutFlow, logg))
		})

		r.Get("/orders/{orderNumber}", controllers.GetOrder(deps.Orders, logg))
		r.Post("/order-confirmation", controllers.OrderConfirmation(deps.Orders, emailSender(deps.Emails), logg))
		r.Post("/notify-whatsapp", controllers.NotifyWhatsApp(deps.Orders, whatsAppSender(deps.WhatsApp), logg))
	})

	return r
}

// Typed-nil guards: a nil *EmailService stored in an interface would defeat
// the controllers' nil checks.
func emailSender(svc *notifications.EmailService) controllers.OrderEmailSender {
	if svc == nil {
		return nil
	}
	return svc
}

func whatsAppSender(svc *notifications.WhatsAppService) controllers.WhatsAppNotifier {
	if svc == nil {
		return nil
	}
	return svc
}
