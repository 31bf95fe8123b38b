package domain

import "time"

// dateLayout is the only accepted wire format for calendar dates.
const dateLayout = "2006-01-02"

// DefaultMaxStayNights caps a single stay unless overridden by config.
const DefaultMaxStayNights = 14

// StayRange is a half-open date interval [CheckIn, CheckOut). The exclusive
// end means back-to-back stays (checkout day equals the next guest's check-in
// day) do not conflict.
type StayRange struct {
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
}

// Overlaps reports whether two half-open intervals intersect.
func (s StayRange) Overlaps(o StayRange) bool {
	return s.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(s.CheckOut)
}

// Midnight truncates t to the start of its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseStayRange validates raw check-in/check-out strings against business
// rules and returns the normalized interval. Pure and deterministic given
// now, which the caller supplies so "today" is testable.
func ParseStayRange(checkInRaw, checkOutRaw string, now time.Time, maxNights int) (StayRange, error) {
	if maxNights <= 0 {
		maxNights = DefaultMaxStayNights
	}

	checkIn, err := time.ParseInLocation(dateLayout, checkInRaw, time.UTC)
	if err != nil {
		return StayRange{}, ErrInvalidDate
	}
	checkOut, err := time.ParseInLocation(dateLayout, checkOutRaw, time.UTC)
	if err != nil {
		return StayRange{}, ErrInvalidDate
	}

	if !checkOut.After(checkIn) {
		return StayRange{}, ErrNonPositiveStay
	}
	if checkIn.Before(Midnight(now)) {
		return StayRange{}, ErrPastCheckIn
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights > maxNights {
		return StayRange{}, ErrStayTooLong
	}

	return StayRange{CheckIn: checkIn, CheckOut: checkOut, Nights: nights}, nil
}
