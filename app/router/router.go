package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dealdesk/app/controller"
)

type Controllers struct {
	Deal        *controller.DealController
	DealForm    *controller.DealFormController
	BookingForm *controller.BookingFormController
	Bill        *controller.BillController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)
	r.Handle("/metrics", promhttp.Handler())

	// Deals
	r.Route("/deals", func(r chi.Router) {
		r.Post("/preview", controllers.Deal.Preview)
		r.Get("/{id}", controllers.Deal.GetDeal)
	})

	// Deal form sessions
	r.Route("/deal-forms", func(r chi.Router) {
		r.Post("/", controllers.DealForm.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", controllers.DealForm.Get)
			r.Put("/type", controllers.DealForm.SetType)
			r.Put("/vehicle", controllers.DealForm.SelectVehicle)
			r.Put("/customer", controllers.DealForm.SelectCustomer)
			r.Put("/selling-price", controllers.DealForm.EditSellingPrice)
			r.Put("/fields", controllers.DealForm.ApplyFields)
			r.Post("/submit", controllers.DealForm.Submit)
		})
	})

	// Booking form sessions
	r.Route("/booking-forms", func(r chi.Router) {
		r.Post("/", controllers.BookingForm.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", controllers.BookingForm.Get)
			r.Put("/type", controllers.BookingForm.SetType)
			r.Put("/destination", controllers.BookingForm.SetDestination)
			r.Put("/trip", controllers.BookingForm.SetTrip)
			r.Put("/participants", controllers.BookingForm.SetParticipants)
			r.Put("/admin-target", controllers.BookingForm.SetAdminTarget)
			r.Post("/services/toggle", controllers.BookingForm.ToggleService)
			r.Put("/services/{index}", controllers.BookingForm.UpdateSelection)
			r.Put("/services/{index}/rate", controllers.BookingForm.SetRateType)
			r.Post("/confirm", controllers.BookingForm.Confirm)
		})
	})
	r.Get("/bookings/{reference}", controllers.BookingForm.GetBooking)
	r.Get("/destinations", controllers.BookingForm.ListDestinations)
	r.Get("/offerings/{category}", controllers.BookingForm.ListOfferings)

	// Documents
	r.Get("/bills/{id}/pdf", controllers.Bill.DownloadPDF)
	r.Get("/bills/{id}/html", controllers.Bill.RenderHTML)

	return r
}
