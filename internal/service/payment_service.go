package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sefazor/funders-backend/internal/models"
	"github.com/sefazor/funders-backend/pkg/payment"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

const (
	// EbookPrice is charged in minor units whatever the client sends.
	EbookPrice      int64 = 1499
	DefaultCurrency       = "usd"
)

var ebookMetadata = map[string]string{
	"product_id":   "top-funders-2025",
	"product_name": "Top Funders of 2025",
}

type PaymentIntentGetter interface {
	GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
}

type PaymentGateway interface {
	PaymentIntentGetter
	CreatePaymentIntent(ctx context.Context, in payment.CreateIntentInput) (*stripe.PaymentIntent, error)
	UpdatePaymentIntentAmount(ctx context.Context, id string, amount int64) (*stripe.PaymentIntent, error)
}

type PaymentService struct {
	gateway PaymentGateway
	logger  *zap.Logger
}

func NewPaymentService(gateway PaymentGateway, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		logger:  logger.Named("payment"),
	}
}

// CreatePaymentIntent does not send an idempotency key, so a retried request
// creates a second intent.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, req models.CreatePaymentIntentRequest) (*models.CreatePaymentIntentResponse, error) {
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}

	pi, err := s.gateway.CreatePaymentIntent(ctx, payment.CreateIntentInput{
		Amount:       EbookPrice,
		Currency:     currency,
		ReceiptEmail: req.EmailForReceipt,
		Metadata:     ebookMetadata,
	})
	if err != nil {
		s.logger.Error("create payment intent failed", zap.String("currency", currency), zap.Error(err))
		return nil, &Error{Kind: ErrUpstreamRequest, Msg: payment.ErrorMessage(err), Err: err}
	}

	s.logger.Info("payment intent created", zap.String("payment_intent_id", pi.ID))
	return &models.CreatePaymentIntentResponse{
		ClientSecret:    pi.ClientSecret,
		PaymentIntentID: pi.ID,
		Price:           EbookPrice,
		Currency:        currency,
	}, nil
}

// UpdatePaymentAmount only touches intents the customer has not confirmed yet.
func (s *PaymentService) UpdatePaymentAmount(ctx context.Context, req models.UpdatePaymentAmountRequest) (*models.UpdatePaymentAmountResponse, error) {
	if req.PaymentIntentID == "" {
		return nil, &Error{Kind: ErrValidation, Msg: "paymentIntentId is required"}
	}
	if req.NewAmountInCents <= 0 {
		return nil, &Error{Kind: ErrValidation, Msg: "newAmountInCents must be greater than 0"}
	}

	pi, err := s.gateway.GetPaymentIntent(ctx, req.PaymentIntentID)
	if err != nil {
		s.logger.Error("retrieve payment intent failed", zap.String("payment_intent_id", req.PaymentIntentID), zap.Error(err))
		return nil, &Error{Kind: ErrUpstreamRequest, Msg: payment.ErrorMessage(err), Err: err}
	}

	if !amountUpdatable(pi.Status) {
		s.logger.Warn("amount update refused",
			zap.String("payment_intent_id", pi.ID),
			zap.String("status", string(pi.Status)))
		return nil, &Error{
			Kind: ErrInvalidState,
			Msg:  fmt.Sprintf("Cannot update amount for payment intent with status: %s", pi.Status),
		}
	}

	updated, err := s.gateway.UpdatePaymentIntentAmount(ctx, req.PaymentIntentID, req.NewAmountInCents)
	if err != nil {
		s.logger.Error("update payment intent failed", zap.String("payment_intent_id", req.PaymentIntentID), zap.Error(err))
		return nil, &Error{Kind: ErrUpstreamRequest, Msg: payment.ErrorMessage(err), Err: err}
	}

	return &models.UpdatePaymentAmountResponse{
		Success:       true,
		UpdatedAmount: updated.Amount,
		ClientSecret:  updated.ClientSecret,
	}, nil
}

func amountUpdatable(status stripe.PaymentIntentStatus) bool {
	switch status {
	case stripe.PaymentIntentStatusRequiresPaymentMethod, stripe.PaymentIntentStatusRequiresConfirmation:
		return true
	}
	return false
}
