package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studiolume/pos-backoffice/internal/core/domain"
)

// ctxPrincipal extracts the principal injected by the Auth (or Unscoped)
// middleware and performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - a collaborator requires an operator id; without it the JWT is
//     structurally valid but cannot be scoped — reject with 401.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	operatorID, _ := c.Get("operator_id").(string)
	if role == domain.RoleCollaborator && operatorID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing operator identity")
	}

	return domain.Principal{ID: operatorID, Role: role}, nil
}
