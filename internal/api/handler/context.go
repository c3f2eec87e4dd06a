package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agencyops/crm-system/internal/core/domain"
)

// ctxActor rebuilds the acting user from the claims injected by the Auth
// middleware. Role presence proves the middleware ran; without it the
// request never authenticated and is rejected before any service call.
func ctxActor(c echo.Context) (*domain.User, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	id, _ := c.Get("user_id").(int)
	if id == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	username, _ := c.Get("username").(string)
	return &domain.User{ID: id, Username: username, Role: role}, nil
}

// ctxToken returns the token id and its remaining lifetime, for revocation
// on logout. A token already past expiry reports zero remaining.
func ctxToken(c echo.Context) (jti string, remaining time.Duration) {
	jti, _ = c.Get("jti").(string)
	expiry, ok := c.Get("token_expiry").(time.Time)
	if !ok {
		return jti, 0
	}
	remaining = time.Until(expiry)
	if remaining < 0 {
		remaining = 0
	}
	return jti, remaining
}
