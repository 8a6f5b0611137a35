package handlers

import (
	"errors"
	"fmt"
	"time"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelExportHandler CSV dışa aktarma ve cüzdan kartviziti önizlemesi için
// handler.
type PanelExportHandler struct {
	service services.IExportService
}

// NewPanelExportHandler yeni bir PanelExportHandler örneği oluşturur.
func NewPanelExportHandler(service services.IExportService) *PanelExportHandler {
	return &PanelExportHandler{service: service}
}

// ExportCSV firmanın tüm kartlarını CSV dosyası olarak indirir. Format içe
// aktarma şablonu ile aynıdır.
func (h *PanelExportHandler) ExportCSV(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	data, err := h.service.ExportCompanyCSV(c.UserContext(), companyID)
	if err != nil {
		configslog.Log.Error("ExportCSV hatası", zap.Uint("companyID", companyID), zap.Error(err))
		return serverError(c, "CSV dışa aktarma başarısız oldu")
	}

	filename := fmt.Sprintf("kartvizitler_%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

// WalletPreview kartın cüzdan kartviziti izdüşümünü döner. Binary pass
// üretimi dışarıdaki worker'ın işidir; burada yalnızca içerik modeli üretilir.
func (h *PanelExportHandler) WalletPreview(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	cardID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "geçersiz kart ID")
	}

	projection, err := h.service.ProjectWalletPass(c.UserContext(), cardID, companyID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrCardForbidden):
			return forbidden(c, err.Error())
		}
		configslog.Log.Error("WalletPreview hatası", zap.Uint("cardID", cardID), zap.Error(err))
		return serverError(c, "cüzdan önizlemesi üretilemedi")
	}
	return c.JSON(projection)
}
