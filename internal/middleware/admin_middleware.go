package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
)

// AdminPasswordHeader carries the shared staff secret on admin requests.
const AdminPasswordHeader = "X-Admin-Password"

// NewAdminCheck builds the shared-secret comparison used as the only admin
// capability in the system. An empty configured secret denies everything,
// so a misconfigured deployment fails closed.
func NewAdminCheck(secret string) func(credential string) bool {
	return func(credential string) bool {
		if secret == "" || credential == "" {
			return false
		}
		return subtle.ConstantTimeCompare([]byte(secret), []byte(credential)) == 1
	}
}

// AdminCredential extracts the supplied secret from the request headers.
func AdminCredential(c echo.Context) string {
	return c.Request().Header.Get(AdminPasswordHeader)
}
