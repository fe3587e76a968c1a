package middleware

// identity.go holds the context accessors shared by the middleware and the
// handlers.  JWTAuth stores the subject under "user_id"; everything else
// reads it through Subject so the key lives in one place.

import (
    "crypto/sha1"
    "encoding/hex"
    "strings"

    "github.com/labstack/echo/v4"
)

// Subject returns the authenticated subject (a guest session id or
// "admin"), or "anon" when the request carried no token.
func Subject(c echo.Context) string {
    if s, ok := c.Get("user_id").(string); ok && s != "" {
        return s
    }
    return "anon"
}

// Role returns the role claim of the current request, or "" when absent.
func Role(c echo.Context) string {
    r, _ := c.Get("role").(string)
    return r
}

// callerKey identifies the caller for rate limiting.  It prefers the
// verified subject and falls back to a digest of the bearer token, so
// middleware running before JWTAuth still tells sessions apart.
func callerKey(c echo.Context) string {
    if s := Subject(c); s != "anon" {
        return s
    }
    auth := c.Request().Header.Get("Authorization")
    if raw := strings.TrimPrefix(auth, "Bearer "); raw != auth && raw != "" {
        sum := sha1.Sum([]byte(raw))
        return "tok-" + hex.EncodeToString(sum[:8])
    }
    return "anon"
}
