package kernel

import (
	"time"

	"warehouse/internal/pkg/errs"

	"cloud.google.com/go/civil"
)

// ErrDateIsNotConstructed is returned when a zero-value Date is used.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError(
	"date must be created via NewDate, ParseDate or DateOf constructors")

// MaxDate is the latest representable calendar date. Pallets without boxes report it
// as their expire date, meaning "never expires".
var MaxDate = Date{date: civil.Date{Year: 9999, Month: time.December, Day: 31}}

// Date is an immutable calendar date without time-of-day or location.
// It wraps civil.Date to keep date arithmetic and ISO formatting in one place.
// The zero value is invalid; use one of the constructors.
//
// Example:
//
//	production, _ := kernel.NewDate(2023, time.January, 1)
//	expire := production.AddDays(100)
//	fmt.Println(expire) // 2023-04-11
type Date struct {
	date civil.Date
}

// NewDate creates a Date from its parts. Returns a validation error when the parts do
// not describe an existing day (for example February 30).
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := civil.Date{Year: year, Month: month, Day: day}
	if !d.IsValid() {
		return Date{}, errs.NewValueIsInvalidError("date " + d.String())
	}
	return Date{date: d}, nil
}

// MustDate is NewDate for literals known to be valid; it panics otherwise.
func MustDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(value string) (Date, error) {
	d, err := civil.ParseDate(value)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}
	return Date{date: d}, nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date{date: civil.DateOf(t)}
}

// Validate checks that the date was created through a constructor.
func (d Date) Validate() error {
	if !d.date.IsValid() {
		return ErrDateIsNotConstructed
	}
	return nil
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{date: d.date.AddDays(n)}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.date.Before(other.date)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.date.After(other.date)
}

// IsEqual reports whether both values denote the same day.
func (d Date) IsEqual(other Date) bool {
	return d.date == other.date
}

// Compare returns -1, 0 or +1 when d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	switch {
	case d.Before(other):
		return -1
	case d.After(other):
		return 1
	default:
		return 0
	}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return d.date.In(time.UTC)
}

// String returns the ISO-8601 form, e.g. "2024-03-15".
func (d Date) String() string {
	return d.date.String()
}
