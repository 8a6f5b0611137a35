package handlers

import (
	"errors"
	"io"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/csvimport"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelImportHandler CSV içe aktarma sihirbazı için handler. Sihirbaz
// durumu sunucu tarafında saklanır; istemci yalnızca batch ID taşır.
type PanelImportHandler struct {
	service services.IImportService
}

// NewPanelImportHandler yeni bir PanelImportHandler örneği oluşturur.
func NewPanelImportHandler(service services.IImportService) *PanelImportHandler {
	return &PanelImportHandler{service: service}
}

// importError sihirbaz hatasını uygun HTTP cevabına çevirir.
func importError(c *fiber.Ctx, err error) error {
	var missing *csvimport.MissingColumnsError
	var mapping csvimport.MappingError
	var stage csvimport.StageError
	switch {
	case errors.As(err, &missing):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": missing.Error()})
	case errors.As(err, &mapping), errors.As(err, &stage):
		return badRequest(c, err.Error())
	case errors.Is(err, services.ErrImportBatchNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrImportForbidden):
		return forbidden(c, err.Error())
	case errors.Is(err, services.ErrImportNoValidRows):
		return badRequest(c, err.Error())
	}
	configslog.Log.Error("İçe aktarma işlemi hatası", zap.Error(err))
	return serverError(c, "içe aktarma işlemi başarısız oldu")
}

// batchResponse sihirbaz adımlarının ortak cevabı.
func batchResponse(c *fiber.Ctx, batch *csvimport.Batch) error {
	return c.JSON(batch)
}

// Upload CSV dosyasını alır ve sihirbaz oturumunu başlatır.
func (h *PanelImportHandler) Upload(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "CSV dosyası bulunamadı")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return badRequest(c, "CSV dosyası açılamadı")
	}
	defer file.Close()

	batch, err := h.service.Upload(c.UserContext(), companyID, file)
	if err != nil {
		return importError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(batch)
}

// GetBatch oturumun güncel durumunu döner.
func (h *PanelImportHandler) GetBatch(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	batch, err := h.service.GetBatch(c.UserContext(), c.Params("batchId"), companyID)
	if err != nil {
		return importError(c, err)
	}
	return batchResponse(c, batch)
}

// mappingRequest sütun eşleme gövdesi.
type mappingRequest struct {
	Mapping map[string]string `json:"mapping"`
}

// SetMapping sütun eşlemelerini kaydeder.
func (h *PanelImportHandler) SetMapping(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	var req mappingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}
	batch, err := h.service.SetMapping(c.UserContext(), c.Params("batchId"), companyID, req.Mapping)
	if err != nil {
		return importError(c, err)
	}
	return batchResponse(c, batch)
}

// Validate doğrulama adımına geçer ve satır denetim sonuçlarını döner.
func (h *PanelImportHandler) Validate(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	batch, err := h.service.AdvanceToValidation(c.UserContext(), c.Params("batchId"), companyID)
	if err != nil {
		return importError(c, err)
	}
	return batchResponse(c, batch)
}

// patchRequest hücre düzeltme gövdesi.
type patchRequest struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// PatchRow doğrulama adımında tek bir hücreyi düzeltir.
func (h *PanelImportHandler) PatchRow(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	var req patchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "geçersiz istek gövdesi")
	}
	batch, err := h.service.PatchRow(c.UserContext(), c.Params("batchId"), companyID, req.Row, req.Field, req.Value)
	if err != nil {
		return importError(c, err)
	}
	return batchResponse(c, batch)
}

// Confirm onay adımına geçer ve içe aktarma özetini döner.
func (h *PanelImportHandler) Confirm(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	batch, summary, err := h.service.AdvanceToConfirm(c.UserContext(), c.Params("batchId"), companyID)
	if err != nil {
		return importError(c, err)
	}
	return c.JSON(fiber.Map{"batch": batch, "summary": summary})
}

// Back sihirbazda bir adım geri gider.
func (h *PanelImportHandler) Back(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	batch, err := h.service.Back(c.UserContext(), c.Params("batchId"), companyID)
	if err != nil {
		return importError(c, err)
	}
	return batchResponse(c, batch)
}

// Commit hatasız satırlardan kartları oluşturur. Profil görselleri
// multipart form ile alan adı = profile_image_name değeri olacak şekilde
// yüklenebilir.
func (h *PanelImportHandler) Commit(c *fiber.Ctx) error {
	userID, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}

	images, err := readImages(c)
	if err != nil {
		return badRequest(c, "profil görselleri okunamadı")
	}

	result, err := h.service.Commit(c.UserContext(), c.Params("batchId"), companyID, userID, images)
	if err != nil {
		return importError(c, err)
	}
	return c.JSON(result)
}

// Cancel oturumu kaydetmeden kapatır.
func (h *PanelImportHandler) Cancel(c *fiber.Ctx) error {
	_, companyID, ok := requireSession(c)
	if !ok {
		return nil
	}
	if err := h.service.Cancel(c.UserContext(), c.Params("batchId"), companyID); err != nil {
		return importError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// readImages multipart formdaki görsel dosyalarını isim→içerik olarak toplar.
func readImages(c *fiber.Ctx) (map[string][]byte, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Gövde multipart değilse görselsiz commit kabul edilir.
		return nil, nil
	}

	images := make(map[string][]byte)
	for _, headers := range form.File {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				return nil, err
			}
			images[fh.Filename] = data
		}
	}
	return images, nil
}
