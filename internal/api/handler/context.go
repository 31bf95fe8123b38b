package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/hbsystem/booking-api/internal/core/domain"
)

// ctxUserID extracts the authenticated principal injected by the Auth
// middleware. A zero or missing id means the middleware did not run or the
// token carried no usable subject; either way the request is unauthorized.
func ctxUserID(c echo.Context) (int64, error) {
	userID, _ := c.Get("user_id").(int64)
	if userID == 0 {
		return 0, domain.ErrUnauthorized
	}
	return userID, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrBookingNotFound)
}

// formatPrice renders integer cents as a decimal string for API responses so
// prices never round-trip through floating point.
func formatPrice(cents int64) string {
	return domain.FormatCents(cents)
}
