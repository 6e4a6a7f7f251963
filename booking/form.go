package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"dealdesk/models"
)

// Missing field labels reported by Validate
const (
	FieldTripDate     = "Trip date"
	FieldStudents     = "Number of students"
	FieldCrew         = "Number of crew"
	FieldDestination  = "Destination"
	FieldTargetSchool = "Target school"
	FieldTargetUser   = "Target user"
	FieldAnyService   = "At least one service"
)

// Form is the in-memory state of one booking being planned
type Form struct {
	BookingType      *models.BookingType
	Destination      *models.Destination
	TripDate         *time.Time
	NumberOfStudents int
	NumberOfCrew     int

	// set when an administrator books on behalf of a school
	AdminOverride  bool
	TargetSchoolID string
	TargetUserID   string

	Selections []Selection
}

// SetBookingType switches the booking type. Selections and a destination the
// new type cannot carry are dropped.
func (f *Form) SetBookingType(t models.BookingType) error {
	cfg, err := ConfigFor(t)
	if err != nil {
		return fmt.Errorf("%w: %q", err, t)
	}
	f.BookingType = &t
	if !cfg.AllowsDestination {
		f.Destination = nil
	}
	f.dropHiddenSelections()
	return nil
}

// SetDestination selects d, or clears the destination when d is nil.
// Selections the new destination no longer shows are dropped.
func (f *Form) SetDestination(d *models.Destination) error {
	if d == nil {
		f.Destination = nil
		f.dropHiddenSelections()
		return nil
	}
	if f.BookingType != nil && !typeConfigs[*f.BookingType].AllowsDestination {
		return fmt.Errorf("%w: %s", ErrDestinationNotAllowed, *f.BookingType)
	}
	snapshot := *d
	snapshot.Requirements = append([]models.ServiceCategory(nil), d.Requirements...)
	f.Destination = &snapshot
	f.dropHiddenSelections()
	return nil
}

func (f *Form) dropHiddenSelections() {
	f.Selections = lo.Filter(f.Selections, func(s Selection, _ int) bool {
		return f.ShouldShowServiceCategory(s.Type)
	})
}

func (f *Form) SetTripDate(date *time.Time) {
	f.TripDate = date
}

func (f *Form) SetParticipants(students, crew int) error {
	if students < 0 || crew < 0 {
		return ErrNegativeParticipants
	}
	f.NumberOfStudents = students
	f.NumberOfCrew = crew
	return nil
}

func (f *Form) SetAdminTarget(override bool, schoolID, userID string) {
	f.AdminOverride = override
	f.TargetSchoolID = strings.TrimSpace(schoolID)
	f.TargetUserID = strings.TrimSpace(userID)
}

// ToggleService adds or removes an offering of category. Hidden categories are rejected.
func (f *Form) ToggleService(category models.ServiceCategory, offering models.ServiceOffering) error {
	if !category.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if !f.ShouldShowServiceCategory(category) {
		return fmt.Errorf("%w: %s", ErrCategoryHidden, category)
	}
	f.Selections = Toggle(f.Selections, category, offering)
	return nil
}

// SetRateType reprices the selection at index from its offering's base rates
func (f *Form) SetRateType(index int, rateType string) error {
	if index < 0 || index >= len(f.Selections) {
		return fmt.Errorf("%w: %d", ErrSelectionIndex, index)
	}
	sel := &f.Selections[index]
	if !hasRateTiers(sel.Type) {
		return fmt.Errorf("%w: %s", ErrRateNotSwitchable, sel.Type)
	}
	if !validRateType(rateType) {
		return fmt.Errorf("%w: %q", ErrUnknownRateType, rateType)
	}
	cost, err := RateCost(sel.Offering, rateType)
	if err != nil {
		return err
	}
	sel.RateType = rateType
	sel.Cost = cost
	return nil
}

// SelectionUpdate carries the editable inputs of a selection line; nil leaves a value as is
type SelectionUpdate struct {
	Quantity *int
	Hours    *int
	Days     *int
}

// UpdateSelection changes quantity, hours or days of the selection at index
func (f *Form) UpdateSelection(index int, upd SelectionUpdate) error {
	if index < 0 || index >= len(f.Selections) {
		return fmt.Errorf("%w: %d", ErrSelectionIndex, index)
	}
	if upd.Quantity != nil && *upd.Quantity < 1 {
		return ErrInvalidQuantity
	}
	sel := &f.Selections[index]
	if upd.Quantity != nil {
		sel.Quantity = *upd.Quantity
	}
	if upd.Hours != nil {
		h := *upd.Hours
		sel.Hours = &h
	}
	if upd.Days != nil {
		d := *upd.Days
		sel.Days = &d
	}
	return nil
}

// ShouldShowServiceCategory applies the visibility table to the current form
func (f *Form) ShouldShowServiceCategory(category models.ServiceCategory) bool {
	return ShouldShowServiceCategory(f.BookingType, f.Destination, category)
}

// VisibleCategories lists the service sections to offer, in display order
func (f *Form) VisibleCategories() []models.ServiceCategory {
	return lo.Filter(models.AllServiceCategories, func(c models.ServiceCategory, _ int) bool {
		return f.ShouldShowServiceCategory(c)
	})
}

// Total is recomputed from the current inputs on every call
func (f *Form) Total() float64 {
	var pricing *models.DestinationPricing
	if f.Destination != nil {
		pricing = &f.Destination.Pricing
	}
	return ComputeTotal(f.Selections, f.NumberOfStudents, f.NumberOfCrew, pricing)
}

// Validation is the outcome of Validate
type Validation struct {
	IsValid       bool     `json:"isValid"`
	MissingFields []string `json:"missingFields"`
}

// Validate collects every outstanding problem, not just the first
func (f *Form) Validate() Validation {
	missing := []string{}

	if f.TripDate == nil || f.TripDate.IsZero() {
		missing = append(missing, FieldTripDate)
	}

	var cfg TypeConfig
	if f.BookingType != nil {
		cfg = typeConfigs[*f.BookingType]
		if *f.BookingType == models.BookingTypeFullTrip {
			if f.NumberOfStudents <= 0 {
				missing = append(missing, FieldStudents)
			}
			if f.NumberOfCrew <= 0 {
				missing = append(missing, FieldCrew)
			}
		}
		if cfg.RequiresDestination && f.Destination == nil {
			missing = append(missing, FieldDestination)
		}
	}

	if f.AdminOverride {
		if f.TargetSchoolID == "" {
			missing = append(missing, FieldTargetSchool)
		}
		if f.TargetUserID == "" {
			missing = append(missing, FieldTargetUser)
		}
	}

	switch {
	case f.BookingType == nil:
		// legacy full trip: the destination declares what must be booked
		if f.Destination != nil {
			missing = append(missing, f.missingCategories(f.Destination.Requirements)...)
		}
	case *f.BookingType == models.BookingTypeEducationOnly:
		if len(f.Selections) == 0 {
			missing = append(missing, FieldAnyService)
		}
	default:
		missing = append(missing, f.missingCategories(cfg.RequiredServices)...)
	}

	return Validation{IsValid: len(missing) == 0, MissingFields: missing}
}

func (f *Form) missingCategories(required []models.ServiceCategory) []string {
	var out []string
	for _, c := range lo.Uniq(required) {
		if !lo.ContainsBy(f.Selections, func(s Selection) bool { return s.Type == c }) {
			out = append(out, CategoryLabel(c))
		}
	}
	return out
}

// Build produces the booking row and its service lines.
// Only selections of persistable categories become lines.
func (f *Form) Build(reference string) (models.Booking, []models.BookingServiceLine) {
	b := models.Booking{
		Reference:        reference,
		NumberOfStudents: f.NumberOfStudents,
		NumberOfCrew:     f.NumberOfCrew,
		TotalPrice:       f.Total(),
		Status:           models.BookingStatusPending,
	}
	if f.BookingType != nil {
		b.BookingType = *f.BookingType
	} else {
		b.BookingType = models.BookingTypeFullTrip
	}
	if f.Destination != nil {
		id := f.Destination.ID
		b.DestinationID = &id
	}
	if f.TripDate != nil {
		b.TripDate = *f.TripDate
	}
	if f.AdminOverride {
		school, user := f.TargetSchoolID, f.TargetUserID
		b.SchoolID, b.UserID = &school, &user
	}

	lines := lo.FilterMap(f.Selections, func(s Selection, _ int) (models.BookingServiceLine, bool) {
		if !lo.Contains(PersistableCategories, s.Type) {
			return models.BookingServiceLine{}, false
		}
		return models.BookingServiceLine{
			ServiceType: s.Type,
			ServiceID:   s.ID,
			Name:        s.Name,
			Quantity:    s.Quantity,
			RateType:    s.RateType,
			Cost:        s.Cost,
			Hours:       s.Hours,
			Days:        s.Days,
		}, true
	})

	return b, lines
}
