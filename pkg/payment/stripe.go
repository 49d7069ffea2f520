package payment

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"go.uber.org/zap"
)

// Options tunes the Stripe backend. URL is only set in tests.
type Options struct {
	Timeout time.Duration
	URL     string
	Logger  *zap.Logger
}

// CreateIntentInput describes a payment intent for a single product.
type CreateIntentInput struct {
	Amount       int64
	Currency     string
	ReceiptEmail string
	Metadata     map[string]string
}

type StripeService struct {
	api *client.API
}

func NewStripeService(secretKey string, opts Options) *StripeService {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	httpClient := &http.Client{Timeout: opts.Timeout}

	// GetBackendWithConfig mutates its config, so each backend gets its own.
	newConfig := func() *stripe.BackendConfig {
		return &stripe.BackendConfig{
			HTTPClient:        httpClient,
			LeveledLogger:     opts.Logger.Sugar(),
			MaxNetworkRetries: stripe.Int64(0),
		}
	}

	apiConfig := newConfig()
	if opts.URL != "" {
		apiConfig.URL = stripe.String(opts.URL)
	}

	api := &client.API{}
	api.Init(secretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, apiConfig),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, newConfig()),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, newConfig()),
	})

	return &StripeService{
		api: api,
	}
}

func (s *StripeService) CreatePaymentIntent(ctx context.Context, in CreateIntentInput) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(in.Amount),
		Currency: stripe.String(in.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	if in.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(in.ReceiptEmail)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	return s.api.PaymentIntents.New(params)
}

func (s *StripeService) GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	return s.api.PaymentIntents.Get(id, params)
}

func (s *StripeService) UpdatePaymentIntentAmount(ctx context.Context, id string, amount int64) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount: stripe.Int64(amount),
	}
	params.Context = ctx
	return s.api.PaymentIntents.Update(id, params)
}

// ErrorMessage extracts Stripe's human-readable message; stripe.Error.Error()
// renders the whole error as JSON.
func ErrorMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
