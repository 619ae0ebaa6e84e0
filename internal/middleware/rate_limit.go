package middleware

import (
	"strconv"
	"time"

	"github.com/0xSujith18/Talkit/internal/apperrors"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimit throttles an endpoint per authenticated identity, falling back
// to the client address for unauthenticated callers. The shared store
// evicts expired windows, so the counter map stays bounded. Exceeding the
// limit fails fast with the rate_limited kind; nothing is queued.
func RateLimit(requestsPerWindow int, window time.Duration) echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(window / time.Duration(requestsPerWindow)),
		Burst:     requestsPerWindow,
		ExpiresIn: window,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if identity := GetIdentity(c); identity.UserID != 0 {
				return "user:" + strconv.FormatUint(uint64(identity.UserID), 10), nil
			}
			return "ip:" + c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.Wrap(apperrors.KindInternal, "rate limiter", err)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return apperrors.RateLimited("too many requests, please try again later")
		},
	})
}
