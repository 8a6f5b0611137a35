package handlers

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelJobHandler arka plan işi tetikleme ve durum polling'i için handler.
type PanelJobHandler struct {
	service services.IJobService
}

// NewPanelJobHandler yeni bir PanelJobHandler örneği oluşturur.
func NewPanelJobHandler() *PanelJobHandler {
	return &PanelJobHandler{
		service: services.NewJobService(),
	}
}

// jobTriggerRequest iş tetikleme gövdesi.
type jobTriggerRequest struct {
	TotalItems int `json:"total_items"`
}

func (h *PanelJobHandler) trigger(c *fiber.Ctx, fn func(userID, companyID uint, total int) error) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	var req jobTriggerRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	if err := fn(userID, companyID, req.TotalItems); err != nil {
		if errors.Is(err, services.ErrJobAlreadyRunning) {
			return conflict(c, err.Error())
		}
		configslog.Log.Error("İş tetikleme hatası", zap.Uint("companyID", companyID), zap.Error(err))
		return serverError(c, err.Error())
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// TriggerWalletSync cüzdan senkronizasyon işini kuyruğa yazar.
func (h *PanelJobHandler) TriggerWalletSync(c *fiber.Ctx) error {
	return h.trigger(c, func(userID, companyID uint, total int) error {
		_, err := h.service.TriggerWalletSync(c.UserContext(), companyID, userID, total)
		return err
	})
}

// TriggerBulkEmail toplu e-posta işini kuyruğa yazar.
func (h *PanelJobHandler) TriggerBulkEmail(c *fiber.Ctx) error {
	return h.trigger(c, func(userID, companyID uint, total int) error {
		_, err := h.service.TriggerBulkEmail(c.UserContext(), companyID, userID, total)
		return err
	})
}

// Status firmanın iş durumunu döner; UI bu ucu polling ile okur.
func (h *PanelJobHandler) Status(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	status, err := h.service.GetJobStatus(c.UserContext(), companyID)
	if err != nil {
		configslog.Log.Error("İş durumu okunamadı", zap.Uint("companyID", companyID), zap.Error(err))
		return serverError(c, "iş durumu alınamadı")
	}
	return c.JSON(status)
}
