package routes

import (
	"kartvizit.link/configs/configslog"
	panel_handlers "kartvizit.link/handlers/panel"
	"kartvizit.link/middlewares"
	"kartvizit.link/pkg/imagestore"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// registerPanelRoutes /panel altındaki JSON API rotalarını tanımlar.
// Kimlik bilgisi dış sistemden güvenilen başlıklarla gelir.
func registerPanelRoutes(app *fiber.App) {
	images, err := imagestore.NewLocalImageStore("./uploads/profiles", "/uploads/profiles")
	if err != nil {
		configslog.Log.Error("Profil görseli dizini hazırlanamadı", zap.Error(err))
	}

	cardService := services.NewCardService()
	cardHandler := panel_handlers.NewPanelCardHandler()
	templateHandler := panel_handlers.NewPanelTemplateHandler()
	entryHandler := panel_handlers.NewPanelEntryHandler()
	importHandler := panel_handlers.NewPanelImportHandler(services.NewImportService(images))
	exportHandler := panel_handlers.NewPanelExportHandler(services.NewExportService(cardService))
	jobHandler := panel_handlers.NewPanelJobHandler()

	panelGroup := app.Group("/panel")
	panelGroup.Use(middlewares.RequireSession)

	// --- Şablon ---
	panelGroup.Get("/template", templateHandler.GetTemplate)
	panelGroup.Put("/template", templateHandler.UpdateTemplate)
	panelGroup.Get("/template/preview", cardHandler.ResolveTemplatePreview)
	panelGroup.Get("/companies/:id/card-sections-order", templateHandler.GetSectionOrder)
	panelGroup.Post("/companies/:id/card-sections-order", templateHandler.SetSectionOrder)

	// --- Kartvizitler ---
	panelGroup.Get("/cards", cardHandler.ListCards)
	panelGroup.Post("/cards", cardHandler.CreateCard)
	panelGroup.Get("/cards/export", exportHandler.ExportCSV)
	panelGroup.Get("/cards/:id", cardHandler.GetCard)
	panelGroup.Put("/cards/:id", cardHandler.UpdateCard)
	panelGroup.Delete("/cards/:id", cardHandler.DeleteCard)
	panelGroup.Get("/cards/:id/resolved", cardHandler.ResolveCard)
	panelGroup.Get("/cards/:id/wallet", exportHandler.WalletPreview)

	// --- İletişim Kayıtları ---
	panelGroup.Get("/entries", entryHandler.ListCompanyDefaults)
	panelGroup.Post("/entries", entryHandler.CreateEntry)
	panelGroup.Put("/entries/:id", entryHandler.UpdateEntry)
	panelGroup.Delete("/entries/:id", entryHandler.DeleteEntry)
	panelGroup.Get("/cards/:id/entries", entryHandler.ListCardEntries)
	panelGroup.Post("/cards/:id/entries/:entryId/hide", entryHandler.HideDefault)
	panelGroup.Delete("/cards/:id/entries/:entryId/hide", entryHandler.UnhideDefault)

	// --- CSV İçe Aktarma Sihirbazı ---
	panelGroup.Post("/import", importHandler.Upload)
	panelGroup.Get("/import/:batchId", importHandler.GetBatch)
	panelGroup.Put("/import/:batchId/mapping", importHandler.SetMapping)
	panelGroup.Post("/import/:batchId/validate", importHandler.Validate)
	panelGroup.Patch("/import/:batchId/rows", importHandler.PatchRow)
	panelGroup.Post("/import/:batchId/confirm", importHandler.Confirm)
	panelGroup.Post("/import/:batchId/back", importHandler.Back)
	panelGroup.Post("/import/:batchId/commit", importHandler.Commit)
	panelGroup.Delete("/import/:batchId", importHandler.Cancel)

	// --- Arka Plan İşleri ---
	panelGroup.Post("/jobs/wallet-sync", jobHandler.TriggerWalletSync)
	panelGroup.Post("/jobs/bulk-email", jobHandler.TriggerBulkEmail)
	panelGroup.Get("/jobs/status", jobHandler.Status)
}
