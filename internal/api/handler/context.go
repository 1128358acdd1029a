package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenharbor/greennest-backend/internal/api/middleware"
	"github.com/greenharbor/greennest-backend/internal/core/ports"
)

// ctxIdentity extracts the authenticated identity injected by the Auth
// middleware and performs a fast-fail check before any service call: a
// missing role or user id means the gate did not run or the token carried no
// usable subject, and the request is rejected rather than handled with
// default claims.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	role, _ := c.Get(middleware.CtxRole).(string)
	userID, _ := c.Get(middleware.CtxUserID).(string)
	email, _ := c.Get(middleware.CtxEmail).(string)

	if role == "" || userID == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return ports.Identity{UserID: userID, Email: email, Role: role}, nil
}
