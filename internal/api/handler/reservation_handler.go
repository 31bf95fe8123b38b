package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hbsystem/booking-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

// ReservationHandler handles HTTP requests for booking operations.
type ReservationHandler struct {
	service ports.ReservationService
}

func NewReservationHandler(service ports.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

// Create handles POST /v1/reservations.
//
// @Summary      Reserve a room
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReservationRequest  true  "Reservation details"
// @Success      201   {object}  createReservationResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/reservations [post]
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.CreateReservation(c.Request().Context(), ports.CreateReservationInput{
		UserID:   userID,
		HotelID:  req.HotelID,
		Category: req.Category,
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createReservationResponse{
		BookingID:  result.BookingID,
		RoomNumber: result.RoomNumber,
		CheckIn:    result.CheckIn.Format(dateLayout),
		CheckOut:   result.CheckOut.Format(dateLayout),
		Nights:     result.Nights,
		TotalPrice: formatPrice(result.TotalCents),
	})
}

// Active handles GET /v1/reservations/active. Responds 204 when the user has
// no active booking, which is an expected outcome rather than an error.
//
// @Summary      Get the caller's active reservation
// @Tags         reservations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  activeReservationResponse
// @Success      204  "no active reservation"
// @Failure      401  {object}  errorResponse
// @Router       /v1/reservations/active [get]
func (h *ReservationHandler) Active(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	booking, err := h.service.GetActiveReservation(c.Request().Context(), userID)
	if err != nil {
		if isNotFound(err) {
			return c.NoContent(http.StatusNoContent)
		}
		return err
	}

	return c.JSON(http.StatusOK, activeReservationResponse{
		BookingID:  booking.ID,
		HotelID:    booking.HotelID,
		RoomNumber: booking.RoomNumber,
		CheckIn:    booking.CheckIn.Format(dateLayout),
		CheckOut:   booking.CheckOut.Format(dateLayout),
		TotalPrice: formatPrice(booking.TotalCents),
		CreatedAt:  booking.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// Cancel handles DELETE /v1/reservations/:id.
//
// @Summary      Cancel a reservation
// @Tags         reservations
// @Security     BearerAuth
// @Param        id  path  string  true  "Booking id"
// @Success      204  "cancelled"
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.CancelReservation(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
