package handlers

import (
	"errors"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/ownership"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelEntryHandler iletişim kayıtları için handler. Şablon ekranından gelen
// istekler firma varsayılanları üzerinde, kart ekranından gelenler karta özel
// kayıtlar üzerinde çalışır; ayrım mode alanı ile yapılır.
type PanelEntryHandler struct {
	service services.IEntryService
}

// NewPanelEntryHandler yeni bir PanelEntryHandler örneği oluşturur.
func NewPanelEntryHandler() *PanelEntryHandler {
	return &PanelEntryHandler{
		service: services.NewEntryService(),
	}
}

// entryRequest kayıt oluşturma/güncelleme gövdesi.
type entryRequest struct {
	CardID          *uint  `json:"card_id"`
	ListType        string `json:"list_type"`
	Label           string `json:"label"`
	LabelDE         string `json:"label_de"`
	Value           string `json:"value"`
	Note            string `json:"note"`
	IsHidden        bool   `json:"is_hidden"`
	TextColor       string `json:"text_color"`
	BackgroundColor string `json:"background_color"`
	Mode            string `json:"mode"`
}

func (r entryRequest) input() services.EntryInput {
	return services.EntryInput{
		ListType:        r.ListType,
		Label:           r.Label,
		LabelDE:         r.LabelDE,
		Value:           r.Value,
		Note:            r.Note,
		IsHidden:        r.IsHidden,
		TextColor:       r.TextColor,
		BackgroundColor: r.BackgroundColor,
	}
}

func (r entryRequest) mode() ownership.Mode {
	if r.Mode == string(ownership.ModeTemplate) {
		return ownership.ModeTemplate
	}
	return ownership.ModeCard
}

// entryError servis hatasını uygun HTTP cevabına çevirir.
func entryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEntryNotFound), errors.Is(err, services.ErrCardNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrEntryForbidden), errors.Is(err, services.ErrEntryOwnershipDenied):
		return forbidden(c, err.Error())
	case errors.Is(err, services.ErrEntryInvalidList),
		errors.Is(err, services.ErrEntryInvalidValue),
		errors.Is(err, services.ErrEntryInvalidInput),
		errors.Is(err, services.ErrEntryNotDefault):
		return badRequest(c, err.Error())
	case errors.Is(err, services.ErrEntryLimitExceeded):
		return conflict(c, err.Error())
	}
	configslog.Log.Error("İletişim kaydı işlemi hatası", zap.Error(err))
	return serverError(c, "iletişim kaydı işlemi başarısız oldu")
}

// ListCompanyDefaults firma varsayılanı kayıtları listeler.
func (h *PanelEntryHandler) ListCompanyDefaults(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	entries, err := h.service.GetCompanyDefaults(c.UserContext(), companyID)
	if err != nil {
		return entryError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries})
}

// ListCardEntries kartın görebileceği kayıtları listeler.
func (h *PanelEntryHandler) ListCardEntries(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	cardID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "geçersiz kart ID")
	}
	entries, err := h.service.GetEntriesForCard(c.UserContext(), companyID, cardID)
	if err != nil {
		return entryError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries})
}

// CreateEntry yeni bir iletişim kaydı oluşturur.
func (h *PanelEntryHandler) CreateEntry(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	entry, err := h.service.CreateEntry(c.UserContext(), companyID, req.CardID, userID, req.mode(), req.input())
	if err != nil {
		return entryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// UpdateEntry mevcut bir kaydı günceller.
func (h *PanelEntryHandler) UpdateEntry(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	entryID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "geçersiz kayıt ID")
	}

	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}

	if err := h.service.UpdateEntry(c.UserContext(), entryID, companyID, userID, req.mode(), req.input()); err != nil {
		return entryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteEntry kaydı siler.
func (h *PanelEntryHandler) DeleteEntry(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	entryID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "geçersiz kayıt ID")
	}

	mode := ownership.ModeCard
	if c.Query("mode") == string(ownership.ModeTemplate) {
		mode = ownership.ModeTemplate
	}

	if err := h.service.DeleteEntry(c.UserContext(), entryID, companyID, userID, mode); err != nil {
		return entryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HideDefault bir firma varsayılanını tek bir kart için gizler.
func (h *PanelEntryHandler) HideDefault(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	cardID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "geçersiz kart ID")
	}
	entryID, ok := paramID(c, "entryId")
	if !ok {
		return badRequest(c, "geçersiz kayıt ID")
	}

	if err := h.service.HideDefaultForCard(c.UserContext(), entryID, cardID, companyID, userID); err != nil {
		return entryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnhideDefault gizleme kaydını kaldırır.
func (h *PanelEntryHandler) UnhideDefault(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	cardID, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "geçersiz kart ID")
	}
	entryID, ok := paramID(c, "entryId")
	if !ok {
		return badRequest(c, "geçersiz kayıt ID")
	}

	if err := h.service.UnhideDefaultForCard(c.UserContext(), entryID, cardID, companyID); err != nil {
		return entryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
