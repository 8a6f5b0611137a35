package routes

import (
	link_handlers "kartvizit.link/handlers/link"

	"github.com/gofiber/fiber/v2"
)

// registerPublicLinkRoutes public kart sayfasını ve vCard indirmesini tanımlar.
func registerPublicLinkRoutes(app *fiber.App) {
	publicHandler := link_handlers.NewLinkHandler()

	// Bu rotalar özel gruplardan SONRA tanımlanmalı; /:key her yolu yakalar.
	app.Get("/:key", publicHandler.ShowCard)
	app.Get("/:key/vcard", publicHandler.DownloadVCard)
}
