package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/chexseeds/chexseeds-backend/api/routes"
	"github.com/chexseeds/chexseeds-backend/internal/cart"
	"github.com/chexseeds/chexseeds-backend/internal/checkout"
	"github.com/chexseeds/chexseeds-backend/internal/contact"
	"github.com/chexseeds/chexseeds-backend/internal/notifications"
	"github.com/chexseeds/chexseeds-backend/internal/orders"
	product "github.com/chexseeds/chexseeds-backend/internal/products"
	"github.com/chexseeds/chexseeds-backend/pkg/config"
	"github.com/chexseeds/chexseeds-backend/pkg/db"
	"github.com/chexseeds/chexseeds-backend/pkg/logger"
	"github.com/chexseeds/chexseeds-backend/pkg/metrics"
	"github.com/chexseeds/chexseeds-backend/pkg/migrate"
	"github.com/chexseeds/chexseeds-backend/pkg/ordernumber"
	"github.com/chexseeds/chexseeds-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	persister, err := cart.NewRedisPersister(redisClient, cfg.Cart.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart persister", err)
		os.Exit(1)
	}
	cartManager, err := cart.NewManager(persister)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	productService, err := product.NewService(product.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		dbClient,
		ordernumber.New(),
		orders.NewPricing(cfg.Shipping),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	var emailService *notifications.EmailService
	if cfg.Email.ResendAPIKey != "" {
		sender, err := notifications.NewResendSender(cfg.Email.ResendAPIKey)
		if err != nil {
			logg.Error(context.Background(), "failed to create email sender", err)
			os.Exit(1)
		}
		emailService, err = notifications.NewEmailService(sender, cfg.Email)
		if err != nil {
			logg.Error(context.Background(), "failed to create email service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "resend api key missing, email channel disabled")
	}

	var whatsAppService *notifications.WhatsAppService
	if cfg.WhatsApp.Complete() {
		sender, err := notifications.NewTwilioSender(cfg.WhatsApp.AccountSID, cfg.WhatsApp.AuthToken)
		if err != nil {
			logg.Error(context.Background(), "failed to create whatsapp sender", err)
			os.Exit(1)
		}
		whatsAppService = notifications.NewWhatsAppService(sender, cfg.WhatsApp)
	} else {
		logg.Warn(context.Background(), "twilio credentials missing, whatsapp channel disabled")
	}

	var contactService contact.Service
	if emailService != nil {
		contactService, err = contact.NewService(contact.NewRepository(dbClient.DB()), emailService, cfg.Contact)
		if err != nil {
			logg.Error(context.Background(), "failed to create contact service", err)
			os.Exit(1)
		}
	}

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)
	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	flow, err := checkout.NewFlow(orderService, flowEmails(emailService), flowWhatsApp(whatsAppService), checkoutMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout flow", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			DB:           dbClient,
			Redis:        redisClient,
			HTTPMetrics:  httpMetrics,
			CartManager:  cartManager,
			CheckoutFlow: flow,
			Products:     productService,
			Orders:       orderService,
			Emails:       emailService,
			WhatsApp:     whatsAppService,
			Contact:      contactService,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

// Typed-nil guards: storing a nil *Service in the interface would defeat
// the flow's channel checks.
func flowEmails(svc *notifications.EmailService) checkout.EmailNotifier {
	if svc == nil {
		return nil
	}
	return svc
}

func flowWhatsApp(svc *notifications.WhatsAppService) checkout.WhatsAppNotifier {
	if svc == nil {
		return nil
	}
	return svc
}
