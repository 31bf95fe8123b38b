package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hbsystem/booking-api/internal/core/ports"
)

// AvailabilityHandler serves the read-only per-category availability
// aggregate. No authentication required; the data answers "what could I
// book", not "book it".
type AvailabilityHandler struct {
	service ports.AvailabilityService
}

func NewAvailabilityHandler(service ports.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// Check handles GET /v1/availability?hotel_id=&check_in=.
//
// @Summary      Check room availability per category
// @Tags         availability
// @Produce      json
// @Param        hotel_id  query     int     true  "Hotel id"
// @Param        check_in  query     string  true  "Check-in date (YYYY-MM-DD)"
// @Success      200       {array}   categoryAvailabilityResponse
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/availability [get]
func (h *AvailabilityHandler) Check(c echo.Context) error {
	hotelID, err := strconv.ParseInt(c.QueryParam("hotel_id"), 10, 64)
	if err != nil || hotelID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "hotel_id must be a positive integer")
	}

	rows, err := h.service.CheckAvailability(c.Request().Context(), hotelID, c.QueryParam("check_in"))
	if err != nil {
		return err
	}

	resp := make([]categoryAvailabilityResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, categoryAvailabilityResponse{
			Category: row.Category,
			MinPrice: formatPrice(row.MinPriceCents),
			Count:    row.Count,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
