package reservation

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStartNotBeforeEnd = errors.New("start date must be before end date")
	ErrStartInPast       = errors.New("start date cannot be in the past")
	ErrNegativeMoney     = errors.New("money cannot be negative")
	ErrInvalidQuantity   = errors.New("add-on quantity must be at least 1")
	ErrNegativeItemPrice = errors.New("add-on item price cannot be negative")
)

const millisPerDay = 86_400_000

// DateRange is the half-open booking interval [start, end).
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end, now time.Time) (DateRange, error) {
	if !start.Before(end) {
		return DateRange{}, ErrStartNotBeforeEnd
	}
	today := now.Truncate(24 * time.Hour)
	if start.Before(today) {
		return DateRange{}, ErrStartInPast
	}
	return DateRange{start: start, end: end}, nil
}

// ReconstructDateRange rebuilds a stored range without the not-in-the-past
// check; persisted reservations legitimately have past dates.
func ReconstructDateRange(start, end time.Time) DateRange {
	return DateRange{start: start, end: end}
}

func (dr DateRange) Start() time.Time { return dr.start }
func (dr DateRange) End() time.Time   { return dr.end }

// Overlaps applies the half-open rule: [s,e) and [S,E) overlap
// iff s < E && e > S. Touching endpoints do not overlap.
func (dr DateRange) Overlaps(other DateRange) bool {
	return other.start.Before(dr.end) && other.end.After(dr.start)
}

// Days is the calendar-day ceiling of the range; a partial day counts whole.
func (dr DateRange) Days() int64 {
	millis := dr.end.Sub(dr.start).Milliseconds()
	if millis < 0 {
		millis = -millis
	}
	return int64(math.Ceil(float64(millis) / float64(millisPerDay)))
}

func (dr DateRange) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", dr.start.Format(time.RFC3339), dr.end.Format(time.RFC3339))
}

// HoursUntilStart may be negative once the range has begun.
func (dr DateRange) HoursUntilStart(now time.Time) float64 {
	return dr.start.Sub(now).Hours()
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func ZeroMoney() Money {
	return Money{}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MulInt(n int64) Money {
	return Money{cents: m.cents * n}
}

type PaymentInfo struct {
	TransactionID string
	Method        string
	Status        PaymentStatus
}

// AddOnLine captures an add-on at booking time; itemPrice is the catalog
// price frozen when the line was added.
type AddOnLine struct {
	addOnID   uuid.UUID
	quantity  int32
	itemPrice Money
}

func NewAddOnLine(addOnID uuid.UUID, quantity int32, itemPriceCents int64) (AddOnLine, error) {
	if quantity < 1 {
		return AddOnLine{}, ErrInvalidQuantity
	}
	price, err := NewMoney(itemPriceCents)
	if err != nil {
		return AddOnLine{}, ErrNegativeItemPrice
	}
	return AddOnLine{addOnID: addOnID, quantity: quantity, itemPrice: price}, nil
}

func (l AddOnLine) AddOnID() uuid.UUID { return l.addOnID }
func (l AddOnLine) Quantity() int32    { return l.quantity }
func (l AddOnLine) ItemPrice() Money   { return l.itemPrice }

func (l AddOnLine) Subtotal() Money {
	return l.itemPrice.MulInt(int64(l.quantity))
}

// NewReservationNumber builds the human-facing booking code
// RES-<unix-millis>-<3-digit-random>.
func NewReservationNumber(now time.Time) string {
	return fmt.Sprintf("RES-%d-%03d", now.UnixMilli(), randomInt(1000))
}

func randomInt(n int64) int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0
	}
	v := int64(binary.BigEndian.Uint64(b[:]) >> 1)
	return v % n
}
