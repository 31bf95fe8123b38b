package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createReservationRequest struct {
	HotelID  int64  `json:"hotel_id"  validate:"required,gt=0"`
	Category string `json:"category"  validate:"required"`
	CheckIn  string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

type createReservationResponse struct {
	BookingID  string `json:"booking_id"`
	RoomNumber string `json:"room_number"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Nights     int    `json:"nights"`
	TotalPrice string `json:"total_price"`
}

type activeReservationResponse struct {
	BookingID  string `json:"booking_id"`
	HotelID    int64  `json:"hotel_id"`
	RoomNumber string `json:"room_number"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	TotalPrice string `json:"total_price"`
	CreatedAt  string `json:"created_at"`
}

type categoryAvailabilityResponse struct {
	Category string `json:"category"`
	MinPrice string `json:"min_price"`
	Count    int64  `json:"count"`
}
