package middlewares

import (
	"strconv"

	"kartvizit.link/configs/configslog"

	"github.com/gofiber/fiber/v2"
)

// Kimlik doğrulama dış sistemde yapılır; platforma istekler güvenilen
// reverse proxy üzerinden X-User-ID ve X-Company-ID başlıkları ile gelir.
// Bu middleware başlıkları okuyup Locals'a koyar, panel rotaları onların
// varlığını şart koşar.

// TrustedHeaders proxy başlıklarını Locals'a taşır.
func TrustedHeaders(c *fiber.Ctx) error {
	if userID := parseIDHeader(c.Get("X-User-ID")); userID > 0 {
		c.Locals("userID", userID)
	}
	if companyID := parseIDHeader(c.Get("X-Company-ID")); companyID > 0 {
		c.Locals("companyID", companyID)
	}
	return c.Next()
}

// RequireSession kimlik bilgisi olmayan istekleri panel rotalarına sokmaz.
func RequireSession(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	companyID, _ := c.Locals("companyID").(uint)
	if userID == 0 || companyID == 0 {
		configslog.SLog.Warnf("Kimliksiz panel isteği: %s %s", c.Method(), c.Path())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "oturum bilgileri geçersiz",
		})
	}
	return c.Next()
}

func parseIDHeader(raw string) uint {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
