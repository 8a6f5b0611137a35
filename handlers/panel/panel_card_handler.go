package handlers

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelCardHandler firmanın kartvizitleri için JSON API handler'ı.
type PanelCardHandler struct {
	service services.ICardService
}

// NewPanelCardHandler yeni bir PanelCardHandler örneği oluşturur.
func NewPanelCardHandler() *PanelCardHandler {
	return &PanelCardHandler{
		service: services.NewCardService(),
	}
}

// cardRequest kart oluşturma/güncelleme gövdesi.
type cardRequest struct {
	IsEnabled bool              `json:"is_enabled"`
	Detail    models.CardDetail `json:"detail"`
}

// ListCards firmanın kartvizitlerini sayfalayarak listeler.
func (h *PanelCardHandler) ListCards(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("ListCards: sorgu parametreleri okunamadı", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.service.GetCardsForCompanyPaginated(c.UserContext(), companyID, params)
	if err != nil {
		configslog.Log.Error("ListCards hatası", zap.Uint("companyID", companyID), zap.Error(err))
		return serverError(c, "kartvizitler listelenemedi")
	}
	return c.JSON(result)
}

// CreateCard yeni kartvizit oluşturur.
func (h *PanelCardHandler) CreateCard(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	var req cardRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	card, err := h.service.CreateCard(c.UserContext(), companyID, userID, req.Detail)
	if err != nil {
		configslog.Log.Error("CreateCard hatası", zap.Uint("companyID", companyID), zap.Error(err))
		return serverError(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(card)
}

// GetCard tek bir kartı döner.
func (h *PanelCardHandler) GetCard(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "geçersiz kart ID")
	}

	card, err := h.service.GetCardByID(c.UserContext(), id, companyID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrCardForbidden):
			return forbidden(c, err.Error())
		}
		configslog.Log.Error("GetCard hatası", zap.Uint("id", id), zap.Error(err))
		return serverError(c, "kart bilgileri alınamadı")
	}
	return c.JSON(card)
}

// ResolveCard kartın çözülmüş (şablon + kart birleşimi) önizlemesini döner.
func (h *PanelCardHandler) ResolveCard(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "geçersiz kart ID")
	}

	resolved, err := h.service.ResolveCard(c.UserContext(), id, companyID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrCardForbidden):
			return forbidden(c, err.Error())
		}
		configslog.Log.Error("ResolveCard hatası", zap.Uint("id", id), zap.Error(err))
		return serverError(c, "kart çözümlenemedi")
	}
	return c.JSON(resolved)
}

// ResolveTemplatePreview kart seçilmeden şablon önizlemesi döner.
func (h *PanelCardHandler) ResolveTemplatePreview(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	resolved, err := h.service.ResolveTemplatePreview(c.UserContext(), companyID)
	if err != nil {
		configslog.Log.Error("ResolveTemplatePreview hatası", zap.Uint("companyID", companyID), zap.Error(err))
		return serverError(c, "şablon önizlemesi üretilemedi")
	}
	return c.JSON(resolved)
}

// UpdateCard kart bilgilerini günceller.
func (h *PanelCardHandler) UpdateCard(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "geçersiz kart ID")
	}

	var req cardRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	err := h.service.UpdateCard(c.UserContext(), id, companyID, userID, req.Detail, req.IsEnabled)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrCardForbidden):
			return forbidden(c, err.Error())
		}
		configslog.Log.Error("UpdateCard hatası", zap.Uint("id", id), zap.Error(err))
		return serverError(c, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteCard kartviziti ve bağlı kayıtlarını siler.
func (h *PanelCardHandler) DeleteCard(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "geçersiz kart ID")
	}

	err := h.service.DeleteCard(c.UserContext(), id, companyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrCardForbidden):
			return forbidden(c, err.Error())
		}
		configslog.Log.Error("DeleteCard hatası", zap.Uint("id", id), zap.Error(err))
		return serverError(c, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
