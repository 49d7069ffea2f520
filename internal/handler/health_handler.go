package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/funders-backend/internal/models"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(models.MessageResponse{Message: "Server is Running"})
}
