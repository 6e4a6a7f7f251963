package controller

import (
	"net/http"

	"go.uber.org/zap"

	"dealdesk/models"
	"dealdesk/service"
)

// DealController handles HTTP requests for stored deals
type DealController struct {
	deals service.DealServiceInterface
}

// NewDealController creates a new DealController
func NewDealController(deals service.DealServiceInterface) *DealController {
	return &DealController{deals: deals}
}

// GetDeal handles GET /deals/{id}
func (c *DealController) GetDeal(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	deal, err := c.deals.GetDeal(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

// Preview handles POST /deals/preview
// Example request:
// {"dealType": "used_sale", "fields": {"carId": 4, "sellingPrice": "60000", "lossAmount": "2000"}}
// Example response:
// {"dealType": "used_sale", "amount": 8000, "missingFields": ["Customer", "Title"], "isValid": false, ...}
func (c *DealController) Preview(w http.ResponseWriter, r *http.Request) {
	zap.S().Debugf("📥 PreviewDeal: Received %s request to %s", r.Method, r.URL.Path)

	var req models.DealPreviewRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	preview, err := c.deals.Preview(r.Context(), req.DealType, req.Fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}
