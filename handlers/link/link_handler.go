package handlers

import (
	"errors"
	"fmt"
	"strings"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/merge"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LinkHandler public kart sayfası ve vCard indirme isteklerini yönetir.
type LinkHandler struct {
	cardService   services.ICardService
	exportService services.IExportService
}

// NewLinkHandler yeni bir LinkHandler örneği oluşturur.
func NewLinkHandler() *LinkHandler {
	cardService := services.NewCardService()
	return &LinkHandler{
		cardService:   cardService,
		exportService: services.NewExportService(cardService),
	}
}

// localeFromRequest ?lang parametresi veya Accept-Language başlığından
// dili seçer. Varsayılan İngilizce'dir.
func localeFromRequest(c *fiber.Ctx) merge.Locale {
	lang := c.Query("lang")
	if lang == "" {
		lang = c.Get(fiber.HeaderAcceptLanguage)
	}
	if strings.HasPrefix(strings.ToLower(lang), "de") {
		return merge.LocaleGerman
	}
	return merge.LocaleDefault
}

// ShowCard gelen :key parametresine göre public kart sayfasını gösterir.
func (h *LinkHandler) ShowCard(c *fiber.Ctx) error {
	key := c.Params("key")
	if len(key) < 8 {
		configslog.SLog.Warnf("Geçersiz formatta link anahtarı denendi: %s", key)
		return h.renderNotFound(c, "Geçersiz Link")
	}

	ctx := c.UserContext()
	resolved, err := h.cardService.ResolvePublicCard(ctx, key)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return h.renderNotFound(c, "Kartvizit Bulunamadı")
		}
		configslog.Log.Error("ShowCard: çözümleme hatası", zap.String("key", key), zap.Error(err))
		return h.renderError(c, "Kartvizit yüklenirken bir sorun oluştu.")
	}

	locale := localeFromRequest(c)
	localized := merge.Localize(resolved, locale)
	return c.Render("public/card_view", fiber.Map{
		"Title":    localized.FirstName + " " + localized.LastName,
		"Card":     localized,
		"Locale":   string(locale),
		"VCardURL": "/" + key + "/vcard?lang=" + string(locale),
	})
}

// DownloadVCard kartın vCard 3.0 dosyasını indirir.
func (h *LinkHandler) DownloadVCard(c *fiber.Ctx) error {
	key := c.Params("key")

	file, err := h.exportService.RenderVCard(c.UserContext(), key, localeFromRequest(c))
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return h.renderNotFound(c, "Kartvizit Bulunamadı")
		}
		configslog.Log.Error("DownloadVCard: üretim hatası", zap.String("key", key), zap.Error(err))
		return h.renderError(c, "vCard üretilirken bir sorun oluştu.")
	}

	c.Set(fiber.HeaderContentType, "text/vcard; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.FileName))
	return c.SendString(file.Content)
}

// renderNotFound standart 404 sayfasını render eder.
func (h *LinkHandler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Bulunamadı",
		"Message": message,
	})
}

// renderError standart 500 hata sayfasını render eder.
func (h *LinkHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": message,
	})
}
