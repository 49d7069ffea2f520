package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/funders-backend/internal/config"
	"github.com/sefazor/funders-backend/internal/models"
	"github.com/sefazor/funders-backend/internal/service"
	"github.com/sefazor/funders-backend/pkg/utils"
)

// Client-facing messages per SUBSCRIBE_ERROR_STYLE.
const (
	msgSubscribed = "Thanks for subscribing!"

	msgLegacyMissingEmail  = "Please provide an email address"
	msgLegacyAlreadyMember = "This email is already subscribed"
	msgLegacyFailed        = "Something went wrong"

	msgMissingEmail = "Email is required."
	msgBadAPIKey    = "Invalid or disabled mailing list API key."
	msgFailed       = "Subscription failed."
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
	validator           *utils.Validator
	errorStyle          string
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService, validator *utils.Validator, errorStyle string) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
		validator:           validator,
		errorStyle:          errorStyle,
	}
}

func (h *SubscriptionHandler) Subscribe(c *fiber.Ctx) error {
	var req models.SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if req.Email == "" {
		msg := msgMissingEmail
		if h.legacy() {
			msg = msgLegacyMissingEmail
		}
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(msg))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(utils.FirstError(err)))
	}

	if err := h.subscriptionService.Subscribe(c.UserContext(), req); err != nil {
		status, msg := h.mapError(err)
		return c.Status(status).JSON(models.ErrorResponse(msg))
	}

	return c.JSON(models.SuccessResponse(nil, msgSubscribed))
}

func (h *SubscriptionHandler) legacy() bool {
	return h.errorStyle == config.SubscribeErrorStyleLegacy
}

// mapError: the legacy style only singles out existing members; the standard
// style only singles out credential problems.
func (h *SubscriptionHandler) mapError(err error) (int, string) {
	if h.legacy() {
		if errors.Is(err, service.ErrMemberExists) {
			return fiber.StatusBadRequest, msgLegacyAlreadyMember
		}
		return fiber.StatusBadRequest, msgLegacyFailed
	}

	if errors.Is(err, service.ErrUpstreamAuth) {
		return fiber.StatusUnauthorized, msgBadAPIKey
	}
	return fiber.StatusBadRequest, msgFailed
}
