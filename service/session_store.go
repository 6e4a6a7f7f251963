package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"dealdesk/booking"
	"dealdesk/models"
	"dealdesk/pricing"
)

// FormSession is the server-side state of one form being filled in.
// Mutations are rejected while a submission of the form is in flight.
type FormSession[T any] struct {
	ID string

	mu       sync.Mutex
	state    T
	inFlight bool
}

type (
	DealFormSession    = FormSession[*pricing.DealFormController]
	BookingFormSession = FormSession[*booking.Form]
)

// Update runs fn with exclusive access to the form state
func (s *FormSession[T]) Update(fn func(T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrSubmitInFlight
	}
	return fn(s.state)
}

// View runs fn with exclusive access; fn must not mutate the state
func (s *FormSession[T]) View(fn func(T) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// Begin marks the form as submitting and hands out its state.
// Every successful Begin must be paired with End.
func (s *FormSession[T]) Begin() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		var zero T
		return zero, ErrSubmitInFlight
	}
	s.inFlight = true
	return s.state, nil
}

func (s *FormSession[T]) End() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

const (
	dealFormPrefix    = "deal-form:"
	bookingFormPrefix = "booking-form:"
)

// SessionStore keeps form sessions in memory; each access extends a session's lifetime
type SessionStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		cache: cache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

// NewDealForm opens a deal form of type t
func (s *SessionStore) NewDealForm(t models.DealType) (*DealFormSession, error) {
	ctrl, err := pricing.NewDealFormController(t)
	if err != nil {
		return nil, err
	}
	sess := &DealFormSession{ID: uuid.NewString(), state: ctrl}
	s.cache.Set(dealFormPrefix+sess.ID, sess, s.ttl)
	return sess, nil
}

func (s *SessionStore) DealForm(id string) (*DealFormSession, error) {
	return lookup[*DealFormSession](s, dealFormPrefix+id)
}

func (s *SessionStore) DeleteDealForm(id string) {
	s.cache.Delete(dealFormPrefix + id)
}

// NewBookingForm opens an empty booking form. A nil bookingType starts the legacy full trip flow.
func (s *SessionStore) NewBookingForm(bookingType *models.BookingType) (*BookingFormSession, error) {
	form := &booking.Form{}
	if bookingType != nil {
		if err := form.SetBookingType(*bookingType); err != nil {
			return nil, err
		}
	}
	sess := &BookingFormSession{ID: uuid.NewString(), state: form}
	s.cache.Set(bookingFormPrefix+sess.ID, sess, s.ttl)
	return sess, nil
}

func (s *SessionStore) BookingForm(id string) (*BookingFormSession, error) {
	return lookup[*BookingFormSession](s, bookingFormPrefix+id)
}

func (s *SessionStore) DeleteBookingForm(id string) {
	s.cache.Delete(bookingFormPrefix + id)
}

func lookup[T any](s *SessionStore, key string) (T, error) {
	var zero T
	v, ok := s.cache.Get(key)
	if !ok {
		return zero, ErrSessionNotFound
	}
	sess, ok := v.(T)
	if !ok {
		return zero, ErrSessionNotFound
	}
	s.cache.Set(key, v, s.ttl)
	return sess, nil
}
