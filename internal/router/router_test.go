package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/funders-backend/internal/config"
	"github.com/sefazor/funders-backend/internal/handler"
	"github.com/sefazor/funders-backend/internal/service"
	"github.com/sefazor/funders-backend/internal/testutil"
	"github.com/sefazor/funders-backend/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*fiber.App, *testutil.MockPaymentGateway) {
	t.Helper()
	logger := zap.NewNop()
	v := utils.NewValidator()
	gw := &testutil.MockPaymentGateway{GetFunc: testutil.IntentWithStatus(stripe.PaymentIntentStatusSucceeded)}
	store := &testutil.MockAssetStore{Content: []byte("pdf")}

	cfg := config.Config{
		AllowedOrigins:      []string{"https://funders.example", "http://localhost:3000"},
		SubscribeErrorStyle: config.SubscribeErrorStyleStandard,
	}

	app := New(cfg, Handlers{
		Health:       handler.NewHealthHandler(),
		Subscription: handler.NewSubscriptionHandler(service.NewSubscriptionService(&testutil.MockMailingList{}, nil, logger), v, cfg.SubscribeErrorStyle),
		Payment:      handler.NewPaymentHandler(service.NewPaymentService(gw, logger), v),
		Download:     handler.NewDownloadHandler(service.NewDownloadService(gw, store, "book.pdf", logger), "Top-Funders-of-2025.pdf"),
	}, logger)
	return app, gw
}

func TestRoutes(t *testing.T) {
	app, _ := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodPost, "/api/subscribe", `{"email":"a@b.com"}`, http.StatusOK},
		{http.MethodPost, "/create-payment-intent", `{}`, http.StatusOK},
		{http.MethodPost, "/update-payment-amount", `{"paymentIntentId":"pi_1","newAmountInCents":10}`, http.StatusBadRequest},
		{http.MethodGet, "/secure-download-ebook?payment_intent_id=pi_1", "", http.StatusOK},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
		})
	}
}

func TestCORSAllowsConfiguredOriginsWithCredentials(t *testing.T) {
	app, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://funders.example")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "https://funders.example", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	app, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestCORSPreflight(t *testing.T) {
	app, gw := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/create-payment-intent", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowMethods), "POST")
	assert.Empty(t, gw.CreateCalls)
}

func TestRecoverTurnsPanicsIntoJSON(t *testing.T) {
	app, _ := newTestRouter(t)
	app.Get("/explode", func(c *fiber.Ctx) error {
		panic("kaboom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/explode", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, string(body))
}
