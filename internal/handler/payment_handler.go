package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/funders-backend/internal/models"
	"github.com/sefazor/funders-backend/internal/service"
	"github.com/sefazor/funders-backend/pkg/utils"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *utils.Validator
}

func NewPaymentHandler(paymentService *service.PaymentService, validator *utils.Validator) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	var req models.CreatePaymentIntentRequest
	// Every field is optional, so an empty body is fine.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(bodyError(err)))
		}
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(utils.FirstError(err)))
	}

	resp, err := h.paymentService.CreatePaymentIntent(c.UserContext(), req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(
			fmt.Sprintf("Failed to create payment intent: %s", service.Message(err)),
		))
	}

	return c.JSON(resp)
}

func (h *PaymentHandler) UpdatePaymentAmount(c *fiber.Ctx) error {
	var req models.UpdatePaymentAmountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(bodyError(err)))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(utils.FirstError(err)))
	}

	resp, err := h.paymentService.UpdatePaymentAmount(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidState):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(service.Message(err)))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(
				fmt.Sprintf("Failed to update payment amount: %s", service.Message(err)),
			))
		}
	}

	return c.JSON(resp)
}

// bodyError names the offending field when the JSON has the wrong type,
// e.g. a string where newAmountInCents expects a number.
func bodyError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type.Kind().String()))
	}
	return "Invalid request body"
}

func jsonKind(goKind string) string {
	switch goKind {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64", "float32", "float64":
		return "number"
	case "bool":
		return "boolean"
	default:
		return goKind
	}
}
