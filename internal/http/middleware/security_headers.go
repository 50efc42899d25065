package middleware

import (
	"github.com/labstack/echo/v4"
)

const (
	// The API only ever returns JSON, so nothing may be loaded or framed.
	contentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'"
	strictTransport       = "max-age=31536000; includeSubDomains"
	permissionsPolicy     = "geolocation=(), microphone=(), camera=(), payment=(), usb=()"
)

// SecurityHeaders adds hardening headers to all responses. Authenticated
// responses must not be cached by intermediaries.
func SecurityHeaders() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderContentSecurityPolicy, contentSecurityPolicy)
			h.Set(echo.HeaderStrictTransportSecurity, strictTransport)
			h.Set(echo.HeaderXContentTypeOptions, "nosniff")
			h.Set(echo.HeaderXFrameOptions, "DENY")
			h.Set(echo.HeaderReferrerPolicy, "no-referrer")
			h.Set("Permissions-Policy", permissionsPolicy)
			h.Set(echo.HeaderCacheControl, "no-store")
			h.Del(echo.HeaderServer)

			return next(c)
		}
	}
}
