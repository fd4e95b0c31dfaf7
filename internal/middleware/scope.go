package middleware

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/christianq-alva/laboratorios-sub000/internal/model"
    "github.com/christianq-alva/laboratorios-sub000/internal/repository"
    "github.com/christianq-alva/laboratorios-sub000/internal/service"
)

// LabScope resolves the caller's permitted lab set once per request
// and stores it in the context under "lab_scope" as a
// service.LabScope.  ADMIN callers get a nil (unrestricted) scope;
// everyone else gets the labs assigned to them, which may be empty.
// Must run after JWTAuth.
func LabScope(labs *repository.LabRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, _ := c.Get("role").(string)
            if role == model.RoleAdmin {
                c.Set("lab_scope", service.LabScope(nil))
                return next(c)
            }
            userID, ok := contextUserID(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }
            ids, err := labs.PermittedLabIDs(c.Request().Context(), userID)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load lab scope"})
            }
            c.Set("lab_scope", service.LabScope(ids))
            return next(c)
        }
    }
}

// contextUserID extracts the numeric user id stored by JWTAuth.  JWT
// numeric claims decode as float64, but the value may also arrive as a
// string or integer depending on how the token was minted.
func contextUserID(c echo.Context) (uint64, bool) {
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
