package controller

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dealdesk/models"
	"dealdesk/pricing"
	"dealdesk/service"
)

const maxUploadMemory = 32 << 20

// DealFormController handles HTTP requests for deal form sessions
type DealFormController struct {
	sessions *service.SessionStore
	deals    service.DealServiceInterface
}

// NewDealFormController creates a new DealFormController
func NewDealFormController(sessions *service.SessionStore, deals service.DealServiceInterface) *DealFormController {
	return &DealFormController{
		sessions: sessions,
		deals:    deals,
	}
}

// DealFormResponse is the state of a deal form session
type DealFormResponse struct {
	ID      string          `json:"id"`
	Preview pricing.Preview `json:"preview"`
}

// Create handles POST /deal-forms
// Example request:
// {"dealType": "used_sale"}
func (c *DealFormController) Create(w http.ResponseWriter, r *http.Request) {
	zap.S().Infof("📥 CreateDealForm: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateDealFormRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	sess, err := c.sessions.NewDealForm(req.DealType)
	if err != nil {
		writeError(w, err)
		return
	}
	c.respond(w, http.StatusCreated, sess)
}

// Get handles GET /deal-forms/{id}
func (c *DealFormController) Get(w http.ResponseWriter, r *http.Request) {
	sess, err := c.sessions.DealForm(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	c.respond(w, http.StatusOK, sess)
}

// SetType handles PUT /deal-forms/{id}/type
func (c *DealFormController) SetType(w http.ResponseWriter, r *http.Request) {
	var req models.SetDealTypeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c.update(w, r, func(ctrl *pricing.DealFormController) error {
		return ctrl.SetDealType(req.DealType)
	})
}

// SelectVehicle handles PUT /deal-forms/{id}/vehicle
// Example request:
// {"id": 12}
func (c *DealFormController) SelectVehicle(w http.ResponseWriter, r *http.Request) {
	var req models.SelectEntityRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var vehicle *models.Vehicle
	if req.ID != nil {
		v, err := c.deals.Vehicle(r.Context(), *req.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		vehicle = v
	}
	c.update(w, r, func(ctrl *pricing.DealFormController) error {
		ctrl.SelectVehicle(vehicle)
		return nil
	})
}

// SelectCustomer handles PUT /deal-forms/{id}/customer
func (c *DealFormController) SelectCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.SelectEntityRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var customer *models.Customer
	if req.ID != nil {
		cust, err := c.deals.Customer(r.Context(), *req.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		customer = cust
	}
	c.update(w, r, func(ctrl *pricing.DealFormController) error {
		ctrl.SelectCustomer(customer)
		return nil
	})
}

// EditSellingPrice handles PUT /deal-forms/{id}/selling-price
func (c *DealFormController) EditSellingPrice(w http.ResponseWriter, r *http.Request) {
	var req models.SellingPriceRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	c.update(w, r, func(ctrl *pricing.DealFormController) error {
		return ctrl.EditSellingPrice(req.SellingPrice)
	})
}

// ApplyFields handles PUT /deal-forms/{id}/fields
// Example request (exchange):
// {"title": "Exchange", "lossAmount": "500", "oldCar": {"manufacturer": "Kia", "name": "Rio", "year": 2015, "purchasePrice": "30000"}}
func (c *DealFormController) ApplyFields(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if !json.Valid(raw) {
		writeError(w, fmt.Errorf("%w: invalid JSON", errBadRequest))
		return
	}
	c.update(w, r, func(ctrl *pricing.DealFormController) error {
		return ctrl.ApplyFields(raw)
	})
}

// Submit handles POST /deal-forms/{id}/submit
// Files may be sent as multipart/form-data: the form field name is the
// attachment slot (car_license, driver_license, transfer_document) or "files".
func (c *DealFormController) Submit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	zap.S().Infof("📥 SubmitDeal: Received %s request for form %s", r.Method, id)

	sess, err := c.sessions.DealForm(id)
	if err != nil {
		writeError(w, err)
		return
	}

	files, err := readUploads(r)
	if err != nil {
		writeError(w, err)
		return
	}

	ctrl, err := sess.Begin()
	if err != nil {
		writeError(w, err)
		return
	}
	defer sess.End()

	result, err := c.deals.Submit(r.Context(), ctrl, files)
	if err != nil {
		zap.S().Warnf("❌ SubmitDeal: form %s: %v", id, err)
		writeError(w, err)
		return
	}

	c.sessions.DeleteDealForm(id)
	writeJSON(w, http.StatusCreated, result)
}

func (c *DealFormController) update(w http.ResponseWriter, r *http.Request, fn func(*pricing.DealFormController) error) {
	sess, err := c.sessions.DealForm(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := sess.Update(fn); err != nil {
		writeError(w, err)
		return
	}
	c.respond(w, http.StatusOK, sess)
}

func (c *DealFormController) respond(w http.ResponseWriter, status int, sess *service.DealFormSession) {
	var resp DealFormResponse
	err := sess.View(func(ctrl *pricing.DealFormController) error {
		preview, err := ctrl.Preview()
		resp = DealFormResponse{ID: sess.ID, Preview: preview}
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, resp)
}

// readUploads collects attachment files from a multipart body; other bodies carry none
func readUploads(r *http.Request) ([]service.UploadFile, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return nil, nil
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	var files []service.UploadFile
	for field, headers := range r.MultipartForm.File {
		slot := field
		if field == "files" {
			slot = ""
		}
		for _, h := range headers {
			f, err := h.Open()
			if err != nil {
				return nil, fmt.Errorf("failed to open upload %s: %w", h.Filename, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("failed to read upload %s: %w", h.Filename, err)
			}
			files = append(files, service.UploadFile{
				Slot:        slot,
				FileName:    h.Filename,
				ContentType: h.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}
	return files, nil
}
