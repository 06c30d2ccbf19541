package auth

import "github.com/labstack/echo/v4"

// identityKey is the echo context key the auth middleware stores claims under.
const identityKey = "admin"

// SetIdentity stores the verified claims on the request context.
func SetIdentity(c echo.Context, claims *Claims) {
	c.Set(identityKey, claims)
}

// IdentityFromContext returns the verified admin claims for the request, if
// the auth middleware ran and accepted a token.
func IdentityFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(identityKey).(*Claims)
	return claims, ok
}
