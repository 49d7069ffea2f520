package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sefazor/funders-backend/internal/config"
	"github.com/sefazor/funders-backend/internal/handler"
	"github.com/sefazor/funders-backend/internal/router"
	"github.com/sefazor/funders-backend/internal/service"
	"github.com/sefazor/funders-backend/pkg/email"
	"github.com/sefazor/funders-backend/pkg/logger"
	"github.com/sefazor/funders-backend/pkg/mailinglist"
	"github.com/sefazor/funders-backend/pkg/payment"
	"github.com/sefazor/funders-backend/pkg/storage"
	"github.com/sefazor/funders-backend/pkg/utils"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration:\n%v", err)
	}

	zl, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	// External clients
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, payment.Options{
		Timeout: cfg.UpstreamTimeout,
		Logger:  zl.Named("stripe"),
	})
	mailchimp := mailinglist.NewMailchimp(cfg.Mailchimp.APIKey, cfg.Mailchimp.ListID, cfg.UpstreamTimeout)

	assetStore, assetKey, err := newAssetStore(cfg)
	if err != nil {
		zl.Fatal("failed to initialize asset storage", zap.Error(err))
	}

	var welcomeMailer service.WelcomeMailer
	if cfg.WelcomeEmailEnabled() {
		welcomeMailer = email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, zl)
	}

	// Services
	subscriptionService := service.NewSubscriptionService(mailchimp, welcomeMailer, zl)
	paymentService := service.NewPaymentService(stripeService, zl)
	downloadService := service.NewDownloadService(stripeService, assetStore, assetKey, zl)

	validator := utils.NewValidator()

	app := router.New(cfg, router.Handlers{
		Health:       handler.NewHealthHandler(),
		Subscription: handler.NewSubscriptionHandler(subscriptionService, validator, cfg.SubscribeErrorStyle),
		Payment:      handler.NewPaymentHandler(paymentService, validator),
		Download:     handler.NewDownloadHandler(downloadService, cfg.Asset.DownloadName),
	}, zl)

	go func() {
		zl.Info("server ready",
			zap.String("port", cfg.Port),
			zap.Strings("allowed_origins", cfg.AllowedOrigins),
			zap.String("asset_source", cfg.Asset.Source))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	zl.Info("server stopped")
}

func newAssetStore(cfg config.Config) (storage.AssetStore, string, error) {
	if cfg.Asset.Source == config.AssetSourceR2 {
		r2, err := storage.NewCloudflareStorage(context.Background(), cfg.Asset.R2)
		if err != nil {
			return nil, "", err
		}
		return r2, cfg.Asset.R2.AssetKey, nil
	}
	return storage.NewLocalStorage(cfg.Asset.Dir), cfg.Asset.File, nil
}
