package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// currentUser oturum middleware'inin Locals'a koyduğu kimliği okur.
// Kimlik yoksa 0 döner; handler 401 üretmekle yükümlüdür.
func currentUser(c *fiber.Ctx) (userID uint, companyID uint) {
	if v, ok := c.Locals("userID").(uint); ok {
		userID = v
	}
	if v, ok := c.Locals("companyID").(uint); ok {
		companyID = v
	}
	return userID, companyID
}

// requireSession kimlik bilgisi yoksa 401 cevabı yazar.
func requireSession(c *fiber.Ctx) (userID uint, companyID uint, ok bool) {
	userID, companyID = currentUser(c)
	if userID == 0 || companyID == 0 {
		_ = unauthorized(c)
		return 0, 0, false
	}
	return userID, companyID, true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "oturum bilgileri geçersiz",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": message})
}

func forbidden(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": message})
}

func conflict(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": message})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

// paramID :id benzeri bir path parametresini uint olarak okur.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
