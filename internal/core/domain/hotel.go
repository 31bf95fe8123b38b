package domain

import "fmt"

// Hotel is read-only reference data.
type Hotel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Room belongs to a hotel and carries a flat per-night rate. Availability is
// never stored on the room: a room is free for an interval iff no booking for
// it overlaps that interval.
type Room struct {
	ID         int64  `json:"id"`
	HotelID    int64  `json:"hotel_id"`
	Category   string `json:"category"`
	RoomNumber string `json:"room_number"`
	PriceCents int64  `json:"price_cents"`
}

// CategoryAvailability is one row of the per-category availability aggregate.
type CategoryAvailability struct {
	Category      string `json:"category"`
	MinPriceCents int64  `json:"min_price_cents"`
	Count         int64  `json:"count"`
}

// TotalCents is the booking price for a stay: flat rate times nights.
// Prices are integer cents throughout, so multiplication is exact.
func TotalCents(priceCents int64, nights int) int64 {
	return priceCents * int64(nights)
}

// FormatCents renders an amount of cents as a decimal string, e.g. 29997 -> "299.97".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
