// Package testutil holds deterministic fakes for the external capabilities.
package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sefazor/funders-backend/pkg/mailinglist"
	"github.com/sefazor/funders-backend/pkg/payment"
	"github.com/sefazor/funders-backend/pkg/storage"
	"github.com/stripe/stripe-go/v74"
)

var ErrMockGateway = errors.New("mock gateway error")

// MockPaymentGateway records calls and delegates to the Func fields when set.
type MockPaymentGateway struct {
	mu sync.Mutex

	CreateFunc func(ctx context.Context, in payment.CreateIntentInput) (*stripe.PaymentIntent, error)
	GetFunc    func(ctx context.Context, id string) (*stripe.PaymentIntent, error)
	UpdateFunc func(ctx context.Context, id string, amount int64) (*stripe.PaymentIntent, error)

	CreateCalls []payment.CreateIntentInput
	GetCalls    []string
	UpdateCalls []int64
}

func (m *MockPaymentGateway) CreatePaymentIntent(ctx context.Context, in payment.CreateIntentInput) (*stripe.PaymentIntent, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, in)
	m.mu.Unlock()

	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return &stripe.PaymentIntent{
		ID:           "pi_test",
		ClientSecret: "pi_test_secret",
		Amount:       in.Amount,
		Currency:     stripe.Currency(in.Currency),
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
	}, nil
}

func (m *MockPaymentGateway) GetPaymentIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, id)
	m.mu.Unlock()

	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, ErrMockGateway
}

func (m *MockPaymentGateway) UpdatePaymentIntentAmount(ctx context.Context, id string, amount int64) (*stripe.PaymentIntent, error) {
	m.mu.Lock()
	m.UpdateCalls = append(m.UpdateCalls, amount)
	m.mu.Unlock()

	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, amount)
	}
	return &stripe.PaymentIntent{
		ID:           id,
		ClientSecret: id + "_secret",
		Amount:       amount,
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
	}, nil
}

// IntentWithStatus makes GetFunc return an intent in the given status.
func IntentWithStatus(status stripe.PaymentIntentStatus) func(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	return func(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
		return &stripe.PaymentIntent{
			ID:           id,
			ClientSecret: id + "_secret",
			Amount:       1499,
			Status:       status,
		}, nil
	}
}

type MockMailingList struct {
	mu      sync.Mutex
	Err     error
	Members []mailinglist.Member
}

func (m *MockMailingList) AddMember(ctx context.Context, member mailinglist.Member) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Members = append(m.Members, member)
	return m.Err
}

type MockMailer struct {
	mu   sync.Mutex
	Err  error
	Sent []string
}

func (m *MockMailer) SendWelcomeEmail(email, firstName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, email)
	return m.Err
}

// MockAssetStore serves Content from memory and counts opens.
type MockAssetStore struct {
	mu        sync.Mutex
	Content   []byte
	Err       error
	OpenCalls int
}

func (m *MockAssetStore) Open(ctx context.Context, key string) (*storage.Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OpenCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return &storage.Object{
		Body: io.NopCloser(bytes.NewReader(m.Content)),
		Size: int64(len(m.Content)),
	}, nil
}
