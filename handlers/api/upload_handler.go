package handlers // handlers/api paketi

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UploadHandler kart görsellerinin yüklenmesi için handler.
type UploadHandler struct {
	uploadService services.IUploadService
}

// NewUploadHandler yeni bir UploadHandler örneği oluşturur.
func NewUploadHandler() *UploadHandler {
	return &UploadHandler{uploadService: services.NewUploadService()}
}

// UploadImage multipart formdaki "file" alanını yükler ve kalıcı URL döner.
// Klasör "folder" form alanıyla seçilebilir.
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Yüklenecek dosya bulunamadı"})
	}
	folder := c.FormValue("folder")

	url, err := h.uploadService.UploadImage(c.UserContext(), fileHeader, folder)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUploadFileTooLarge),
			errors.Is(err, services.ErrUploadInvalidType),
			errors.Is(err, services.ErrUploadFileMissing):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrUploadNotConfigured):
			return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": err.Error()})
		default:
			configslog.Log.Error("Dosya yüklenemedi", zap.String("file", fileHeader.Filename), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Dosya yüklenemedi"})
		}
	}
	return c.JSON(fiber.Map{"url": url})
}
