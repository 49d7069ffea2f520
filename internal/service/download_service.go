package service

import (
	"context"

	"github.com/sefazor/funders-backend/pkg/payment"
	"github.com/sefazor/funders-backend/pkg/storage"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

// DownloadService gates the ebook behind a succeeded payment intent.
//
// Only the intent id is checked: nothing ties the purchaser to the requester,
// so a leaked id of a paid intent allows unlimited downloads.
type DownloadService struct {
	intents  PaymentIntentGetter
	store    storage.AssetStore
	assetKey string
	logger   *zap.Logger
}

func NewDownloadService(intents PaymentIntentGetter, store storage.AssetStore, assetKey string, logger *zap.Logger) *DownloadService {
	return &DownloadService{
		intents:  intents,
		store:    store,
		assetKey: assetKey,
		logger:   logger.Named("download"),
	}
}

// OpenEbook returns the asset stream once the intent has succeeded. The caller
// owns the returned body.
func (s *DownloadService) OpenEbook(ctx context.Context, paymentIntentID string) (*storage.Object, error) {
	if paymentIntentID == "" {
		return nil, &Error{Kind: ErrValidation, Msg: "payment_intent_id is required"}
	}

	pi, err := s.intents.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		s.logger.Error("retrieve payment intent failed", zap.String("payment_intent_id", paymentIntentID), zap.Error(err))
		return nil, &Error{Kind: ErrUpstreamRequest, Msg: payment.ErrorMessage(err), Err: err}
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		s.logger.Warn("download refused",
			zap.String("payment_intent_id", paymentIntentID),
			zap.String("status", string(pi.Status)))
		return nil, &Error{Kind: ErrAccessDenied, Msg: "payment not confirmed"}
	}

	obj, err := s.store.Open(ctx, s.assetKey)
	if err != nil {
		s.logger.Error("open asset failed", zap.String("key", s.assetKey), zap.Error(err))
		return nil, &Error{Kind: ErrAssetIO, Msg: "asset unavailable", Err: err}
	}
	return obj, nil
}
