// Package middleware contains reusable Echo middleware: the bearer-token
// gate for protected routes and the Redis response cache.
package middleware

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dkowalski/wardrobe-api/internal/repository"
	"github.com/dkowalski/wardrobe-api/internal/utils"
)

// ContextUserID is the context key under which the authenticated user's id
// is stored for downstream handlers.
const ContextUserID = "user_id"

// TokenAuth returns an Echo middleware that validates a Bearer access token
// and injects the resolved user id into the request context. The provided
// secret must match the one used when issuing tokens.
//
// A missing header, a tampered or expired token, and a token whose subject
// no longer exists all produce the same 401 body: the response must not
// reveal which check failed. Only a storage outage during the subject
// lookup is reported differently, as a 503.
func TokenAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return unauthorized(c)
			}

			// The token is only as good as the account behind it: a subject
			// deleted since issuance must not keep a working credential.
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if _, err := users.GetByID(ctx, uid); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return unauthorized(c)
				}
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "storage unavailable"})
			}

			c.Set(ContextUserID, uid)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
}
