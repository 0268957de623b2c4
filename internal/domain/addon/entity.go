package addon

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInactive = errors.New("add-on is inactive")

// AddOn is a priced extra attachable to a reservation (child seat, GPS, ...).
// The catalog price here is a point-in-time value; reservations capture their
// own copy so later catalog changes never rewrite booking history.
type AddOn struct {
	id         uuid.UUID
	name       string
	priceCents int64
	active     bool
}

func Reconstruct(id uuid.UUID, name string, priceCents int64, active bool) *AddOn {
	return &AddOn{
		id:         id,
		name:       name,
		priceCents: priceCents,
		active:     active,
	}
}

func (a *AddOn) ID() uuid.UUID     { return a.id }
func (a *AddOn) Name() string      { return a.name }
func (a *AddOn) PriceCents() int64 { return a.priceCents }
func (a *AddOn) IsActive() bool    { return a.active }
