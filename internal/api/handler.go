package api

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/superm123/SnapSpend/internal/billing"
	"github.com/superm123/SnapSpend/internal/currency"
	"github.com/superm123/SnapSpend/internal/extractor"
	"github.com/superm123/SnapSpend/internal/importer"
	"github.com/superm123/SnapSpend/internal/models"
	"github.com/superm123/SnapSpend/internal/parser"
	"github.com/superm123/SnapSpend/internal/store"
)

const Version = "1.0.0"

// Handler owns the HTTP surface. Parsing stays pure; everything stateful
// (extraction, persistence) happens here at the edge.
type Handler struct {
	Store    *store.Store
	Importer *importer.Importer
	Log      *zap.Logger
	Currency string
}

func New(st *store.Store, log *zap.Logger, currencyCode string) *Handler {
	return &Handler{
		Store:    st,
		Importer: importer.New(st, log),
		Log:      log,
		Currency: currencyCode,
	}
}

// Register wires the routes onto the app.
func (h *Handler) Register(app *fiber.App) {
	app.Use(requestLogger(h.Log))

	app.Get("/api/health", h.handleHealth)
	app.Post("/api/statement", h.handleStatement)
	app.Post("/api/receipt", h.handleReceipt)
	app.Post("/api/import", h.handleImport)
	app.Post("/api/receipt/import", h.handleReceiptImport)
	app.Get("/api/summary", h.handleSummary)
	app.Get("/api/categories", h.handleCategories)
	app.Get("/api/payments", h.handlePayments)
	app.Get("/api/settings", h.handleGetSettings)
	app.Put("/api/settings", h.handlePutSettings)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": Version,
	})
}

// statementResponse carries the editable candidate list plus the raw text
// so the client can show what the parser saw.
type statementResponse struct {
	Candidates []models.CandidateTransaction `json:"candidates"`
	Count      int                           `json:"count"`
	UsedOCR    bool                          `json:"usedOcr"`
	RawText    string                        `json:"rawText,omitempty"`
}

// handleStatement accepts a statement PDF (form field "file") or raw
// pre-extracted text (form field "text") and returns candidates. When the
// text layer parses to zero candidates the whole document is re-extracted
// through OCR and parsed again.
func (h *Handler) handleStatement(c *fiber.Ctx) error {
	p := &parser.StatementParser{Today: time.Now()}

	if text := c.FormValue("text"); text != "" {
		cands := p.Parse(text)
		return c.JSON(statementResponse{Candidates: emptyIfNil(cands), Count: len(cands), RawText: text})
	}

	path, cleanup, err := h.saveUpload(c, ".pdf")
	if err != nil {
		return err
	}
	defer cleanup()

	pages, err := extractor.ExtractText(path)
	if err != nil {
		h.Log.Warn("text layer extraction failed, trying ocr", zap.Error(err))
	}
	text := strings.Join(pages, "\n")
	cands := p.Parse(text)

	usedOCR := false
	if len(cands) == 0 {
		ocrPages, ocrErr := extractor.ExtractTextOCR(path)
		if ocrErr != nil {
			if err != nil {
				return fiber.NewError(fiber.StatusUnprocessableEntity,
					fmt.Sprintf("extraction failed: %v; ocr fallback failed: %v", err, ocrErr))
			}
			h.Log.Warn("ocr fallback failed", zap.Error(ocrErr))
		} else {
			text = strings.Join(ocrPages, "\n")
			cands = p.Parse(text)
			usedOCR = true
		}
	}

	return c.JSON(statementResponse{
		Candidates: emptyIfNil(cands),
		Count:      len(cands),
		UsedOCR:    usedOCR,
		RawText:    text,
	})
}

// handleReceipt accepts a receipt image (form field "file") or OCR text
// (form field "text") and returns the merchant plus itemized entries.
func (h *Handler) handleReceipt(c *fiber.Ctx) error {
	p := &parser.ReceiptParser{Suggest: h.Store}

	text := c.FormValue("text")
	if text == "" {
		path, cleanup, err := h.saveUpload(c, "")
		if err != nil {
			return err
		}
		defer cleanup()

		text, err = extractor.OCRImage(path)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("ocr failed: %v", err))
		}
	}

	rec := p.Parse(text)
	rec.Items = emptyIfNil(rec.Items)
	return c.JSON(fiber.Map{"receipt": rec, "rawText": text})
}

type importRequest struct {
	Candidates []models.CandidateTransaction `json:"candidates"`
	UserID     int64                         `json:"userId"`
}

func (h *Handler) handleImport(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Candidates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no candidates to import")
	}

	userID, err := h.resolveUser(req.UserID)
	if err != nil {
		return err
	}

	res, err := h.Importer.ImportStatement(req.Candidates, userID)
	if err != nil {
		// The batch is atomic: on failure nothing was written and the
		// client keeps its candidate list for retry.
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(res)
}

type receiptImportRequest struct {
	Receipt      models.Receipt `json:"receipt"`
	UserID       int64          `json:"userId"`
	ReceiptImage string         `json:"receiptImage"`
}

func (h *Handler) handleReceiptImport(c *fiber.Ctx) error {
	var req receiptImportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Receipt.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no items to import")
	}

	userID, err := h.resolveUser(req.UserID)
	if err != nil {
		return err
	}

	res, err := h.Importer.ImportReceipt(req.Receipt, userID, req.ReceiptImage)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(res)
}

// handleSummary reports the active billing-cycle window and totals by
// category and payment method for the current user.
func (h *Handler) handleSummary(c *fiber.Ctx) error {
	settings, err := h.Store.GetSettings()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	window, err := billing.Compute(settings.BillingCycleStart, time.Now())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	userID, err := h.resolveUser(int64(c.QueryInt("userId")))
	if err != nil {
		return err
	}

	byCategory, err := h.Store.SummarizeByCategory(window, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	byPayment, err := h.Store.SummarizeByPaymentMethod(window, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"window":          window,
		"byCategory":      byCategory,
		"byPaymentMethod": byPayment,
		"currency":        h.Currency,
		"currencySymbol":  currency.Symbol(h.Currency),
	})
}

func (h *Handler) handleCategories(c *fiber.Ctx) error {
	cats, err := h.Store.GetCategories()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(cats)
}

func (h *Handler) handlePayments(c *fiber.Ctx) error {
	pms, err := h.Store.GetPaymentMethods()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(pms)
}

func (h *Handler) handleGetSettings(c *fiber.Ctx) error {
	settings, err := h.Store.GetSettings()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(settings)
}

func (h *Handler) handlePutSettings(c *fiber.Ctx) error {
	var req struct {
		BillingCycleStart int `json:"billingCycleStart"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.Store.UpdateBillingCycleStart(req.BillingCycleStart); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	settings, err := h.Store.GetSettings()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(settings)
}

// resolveUser falls back to the first (default) user when the client
// passed no id.
func (h *Handler) resolveUser(id int64) (int64, error) {
	if id != 0 {
		return id, nil
	}
	u, err := h.Store.FirstUser()
	if err != nil {
		return 0, fiber.NewError(fiber.StatusInternalServerError, "no user configured")
	}
	return u.ID, nil
}

// saveUpload writes the multipart "file" field to a temp file. wantExt
// restricts the extension when non-empty.
func (h *Handler) saveUpload(c *fiber.Ctx, wantExt string) (string, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
	}
	if wantExt != "" && !strings.HasSuffix(strings.ToLower(fh.Filename), wantExt) {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("only %s files are supported", wantExt))
	}

	tmp, err := os.CreateTemp("", "snapspend-upload-*"+strings.ToLower(wantExt))
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusInternalServerError, "failed to create temp file")
	}
	tmp.Close()

	if err := c.SaveFile(fh, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fiber.NewError(fiber.StatusInternalServerError, "failed to save upload")
	}
	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}

func emptyIfNil(c []models.CandidateTransaction) []models.CandidateTransaction {
	if c == nil {
		return []models.CandidateTransaction{}
	}
	return c
}
