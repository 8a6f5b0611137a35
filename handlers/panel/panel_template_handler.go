package handlers

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelTemplateHandler firma şablonu ve bölüm sırası için handler.
type PanelTemplateHandler struct {
	service services.ITemplateService
}

// NewPanelTemplateHandler yeni bir PanelTemplateHandler örneği oluşturur.
func NewPanelTemplateHandler() *PanelTemplateHandler {
	return &PanelTemplateHandler{
		service: services.NewTemplateService(),
	}
}

// GetTemplate firma şablonunu döner, yoksa varsayılanlarla oluşturur.
func (h *PanelTemplateHandler) GetTemplate(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	tpl, err := h.service.GetOrCreateTemplate(c.UserContext(), companyID, userID)
	if err != nil {
		configslog.Log.Error("GetTemplate hatası", zap.Uint("companyID", companyID), zap.Error(err))
		return serverError(c, "şablon bilgileri alınamadı")
	}
	return c.JSON(tpl)
}

// UpdateTemplate şablonu kısmi güncelleme ile kaydeder. Gövdede yer almayan
// alanlar dokunulmadan bırakılır.
func (h *PanelTemplateHandler) UpdateTemplate(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	var patch services.TemplatePatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	tpl, err := h.service.UpdateTemplate(c.UserContext(), companyID, userID, patch)
	if err != nil {
		configslog.Log.Error("UpdateTemplate hatası", zap.Uint("companyID", companyID), zap.Error(err))
		return serverError(c, err.Error())
	}
	return c.JSON(tpl)
}

// GetSectionOrder kart bölümlerinin gösterim sırasını döner.
func (h *PanelTemplateHandler) GetSectionOrder(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	if id, ok := paramID(c, "id"); !ok || id != companyID {
		return forbidden(c, "bu firma üzerinde yetkiniz yok")
	}

	order, err := h.service.GetSectionOrder(c.UserContext(), companyID)
	if err != nil {
		configslog.Log.Error("GetSectionOrder hatası", zap.Uint("companyID", companyID), zap.Error(err))
		return serverError(c, "bölüm sırası alınamadı")
	}
	return c.JSON(fiber.Map{"sections": order})
}

// sectionOrderRequest bölüm sırası kaydetme gövdesi.
type sectionOrderRequest struct {
	Sections []string `json:"sections"`
}

// SetSectionOrder beş bölümün tam bir permütasyonunu kaydeder. Eksik veya
// tekrarlı liste reddedilir, saklanan sıra değişmez.
func (h *PanelTemplateHandler) SetSectionOrder(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	if id, ok := paramID(c, "id"); !ok || id != companyID {
		return forbidden(c, "bu firma üzerinde yetkiniz yok")
	}

	var req sectionOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	if err := h.service.SetSectionOrder(c.UserContext(), companyID, userID, req.Sections); err != nil {
		if errors.Is(err, services.ErrInvalidSectionSet) {
			return badRequest(c, err.Error())
		}
		configslog.Log.Error("SetSectionOrder hatası", zap.Uint("companyID", companyID), zap.Error(err))
		return serverError(c, err.Error())
	}
	return c.JSON(fiber.Map{"sections": req.Sections})
}
