package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the identity injected by the Auth middleware. A token
// missing user_id or tenant_id is rejected with 401 before any repository
// query sees an empty tenant.
func ctxClaims(c echo.Context) (actorID, tenantID, role string, err error) {
	actorID, _ = c.Get("user_id").(string)
	tenantID, _ = c.Get("tenant_id").(string)
	role, _ = c.Get("role").(string)

	if actorID == "" || tenantID == "" {
		return "", "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return actorID, tenantID, role, nil
}
