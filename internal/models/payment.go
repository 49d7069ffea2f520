package models

type CreatePaymentIntentRequest struct {
	Currency        string `json:"currency" validate:"omitempty,currency_code"`
	EmailForReceipt string `json:"email_for_receipt"`
}

type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
	Price           int64  `json:"price"`
	Currency        string `json:"currency"`
}

type UpdatePaymentAmountRequest struct {
	PaymentIntentID  string `json:"paymentIntentId" validate:"required"`
	NewAmountInCents int64  `json:"newAmountInCents" validate:"gt=0"`
}

type UpdatePaymentAmountResponse struct {
	Success       bool   `json:"success"`
	UpdatedAmount int64  `json:"updatedAmount"`
	ClientSecret  string `json:"clientSecret"`
}
