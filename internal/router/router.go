package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sefazor/funders-backend/internal/config"
	"github.com/sefazor/funders-backend/internal/handler"
	"github.com/sefazor/funders-backend/internal/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Health       *handler.HealthHandler
	Subscription *handler.SubscriptionHandler
	Payment      *handler.PaymentHandler
	Download     *handler.DownloadHandler
}

func New(cfg config.Config, h Handlers, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "funders-backend",
		ErrorHandler:          handler.ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	app.Get("/", h.Health.Root)

	api := app.Group("/api")
	api.Post("/subscribe", h.Subscription.Subscribe)

	// Payment routes
	app.Post("/create-payment-intent", h.Payment.CreatePaymentIntent)
	app.Post("/update-payment-amount", h.Payment.UpdatePaymentAmount)
	app.Get("/secure-download-ebook", h.Download.SecureDownload)

	return app
}
