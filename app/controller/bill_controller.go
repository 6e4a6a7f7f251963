package controller

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"dealdesk/service"
)

// BillController serves generated bill documents
type BillController struct {
	documents service.DocumentServiceInterface
}

// NewBillController creates a new BillController
func NewBillController(documents service.DocumentServiceInterface) *BillController {
	return &BillController{documents: documents}
}

// DownloadPDF handles GET /bills/{id}/pdf?lang=he
func (c *BillController) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	lang := r.URL.Query().Get("lang")
	zap.S().Infof("📥 DownloadBill: bill=%d lang=%q", id, lang)

	pdfData, err := c.documents.RenderPDF(r.Context(), id, lang)
	if err != nil {
		writeError(w, err)
		return
	}

	filename := fmt.Sprintf("bill_%d.pdf", id)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdfData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdfData); err != nil {
		zap.S().Errorf("❌ DownloadBill: Error writing PDF: %v", err)
	}
}

// RenderHTML handles GET /bills/{id}/html
func (c *BillController) RenderHTML(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	htmlContent, err := c.documents.RenderHTML(r.Context(), id, r.URL.Query().Get("lang"))
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(htmlContent)); err != nil {
		zap.S().Errorf("❌ RenderBill: Error writing HTML: %v", err)
	}
}
