package models

type SubscribeRequest struct {
	Email     string `json:"email" validate:"required"`
	FirstName string `json:"firstName" validate:"omitempty,max=100"`
	LastName  string `json:"lastName" validate:"omitempty,max=100"`
}
