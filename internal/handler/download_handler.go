package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/funders-backend/internal/service"
)

type DownloadHandler struct {
	downloadService *service.DownloadService
	downloadName    string
}

func NewDownloadHandler(downloadService *service.DownloadService, downloadName string) *DownloadHandler {
	return &DownloadHandler{
		downloadService: downloadService,
		downloadName:    downloadName,
	}
}

// SecureDownload answers in plain text because it is opened as a browser link.
func (h *DownloadHandler) SecureDownload(c *fiber.Ctx) error {
	obj, err := h.downloadService.OpenEbook(c.UserContext(), c.Query("payment_intent_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return c.Status(fiber.StatusBadRequest).SendString("Missing payment_intent_id")
		case errors.Is(err, service.ErrAccessDenied):
			return c.Status(fiber.StatusForbidden).SendString("Payment not confirmed")
		default:
			return c.Status(fiber.StatusInternalServerError).SendString("Error downloading file")
		}
	}

	// Past this point the response belongs to the stream: fasthttp writes and
	// closes the body after we return, and a failed write only drops the
	// connection. No error response may follow.
	c.Attachment(h.downloadName)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.SendStream(obj.Body, int(obj.Size))
}
