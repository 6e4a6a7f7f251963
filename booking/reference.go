package booking

import (
	"fmt"
	"math/rand/v2"
	"time"

	"dealdesk/models"
	"dealdesk/utils"
)

// ReferenceGenerator builds booking references. Now and Intn default to the
// wall clock and math/rand when nil.
type ReferenceGenerator struct {
	Now  func() time.Time
	Intn func(n int) int
}

// Generate returns prefix + last six digits of the epoch millis + two random digits.
// A nil booking type gets the default BK prefix.
func (g ReferenceGenerator) Generate(t *models.BookingType) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	intn := rand.IntN
	if g.Intn != nil {
		intn = g.Intn
	}

	var prefix string
	if t != nil {
		prefix = utils.BookingReferencePrefix(*t)
	} else {
		prefix = utils.BookingReferencePrefix("")
	}

	millis := now().UnixMilli() % 1_000_000
	return fmt.Sprintf("%s%06d%02d", prefix, millis, intn(100))
}
