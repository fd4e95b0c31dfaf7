// Package handler contains the HTTP handlers for the reservation API.
package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/christianq-alva/laboratorios-sub000/internal/service"
)

// userIDFrom extracts the numeric user id stored by the JWT
// middleware.  Numeric JWT claims decode as float64.
func userIDFrom(c echo.Context) (uint64, bool) {
    switch v := c.Get("user_id").(type) {
    case uint64:
        return v, true
    case int64:
        return uint64(v), true
    case float64:
        return uint64(v), true
    case string:
        if n, err := strconv.ParseUint(v, 10, 64); err == nil {
            return n, true
        }
    }
    return 0, false
}

// callerFrom builds the service-level caller identity from the request
// context populated by the JWTAuth and LabScope middleware.
func callerFrom(c echo.Context) (service.Caller, bool) {
    uid, ok := userIDFrom(c)
    if !ok {
        return service.Caller{}, false
    }
    scope, _ := c.Get("lab_scope").(service.LabScope)
    return service.Caller{UserID: uid, Scope: scope}, true
}

// scopeFrom returns just the lab scope loaded by the LabScope
// middleware.
func scopeFrom(c echo.Context) service.LabScope {
    scope, _ := c.Get("lab_scope").(service.LabScope)
    return scope
}

// writeEngineError translates a service error into the HTTP response
// contract: validation 400, forbidden 403, not found 404, conflict and
// insufficient stock 409.  Detail payloads ride alongside the error
// kind so clients can render precise messages.
func writeEngineError(c echo.Context, err error) error {
    se, ok := err.(*service.Error)
    if !ok {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
    body := echo.Map{"error": se.Kind, "message": se.Message}
    if se.Conflict != nil {
        body["conflict"] = se.Conflict
    }
    if se.Stock != nil {
        body["stock"] = se.Stock
    }
    switch se.Kind {
    case service.KindValidation:
        return c.JSON(http.StatusBadRequest, body)
    case service.KindForbidden:
        return c.JSON(http.StatusForbidden, body)
    case service.KindNotFound:
        return c.JSON(http.StatusNotFound, body)
    case service.KindConflict, service.KindInsufficientStock:
        return c.JSON(http.StatusConflict, body)
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
    return strconv.ParseUint(c.Param("id"), 10, 64)
}
