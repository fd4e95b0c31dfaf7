// Package router wires HTTP routes to their handlers and middleware.
package router

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/christianq-alva/laboratorios-sub000/internal/config"
    "github.com/christianq-alva/laboratorios-sub000/internal/handler"
    "github.com/christianq-alva/laboratorios-sub000/internal/middleware"
    "github.com/christianq-alva/laboratorios-sub000/internal/model"
    "github.com/christianq-alva/laboratorios-sub000/internal/repository"
)

// Deps carries everything the route table needs.
type Deps struct {
    Cfg      config.Config
    CacheCfg config.CacheConfig
    RateCfg  config.RateLimitConfig
    RDB      *redis.Client
    Labs     *repository.LabRepo
    Auth     *handler.AuthHandler
    Resv     *handler.ReservationHandler
    Supply   *handler.SupplyHandler
}

// Register sets up the full route table: a public health check, the
// auth endpoints under /v1/auth, and the protected reservation and
// inventory endpoints under /v1.
func Register(e *echo.Echo, d Deps) {
    e.Use(middleware.RateLimit(d.RateCfg, d.RDB))

    e.GET("/healthz", handler.Health)

    // Session management does not require an existing session.
    authGroup := e.Group("/v1/auth")
    authGroup.POST("/register", d.Auth.Register)
    authGroup.POST("/login", d.Auth.Login)
    authGroup.POST("/refresh", d.Auth.Refresh)
    authGroup.POST("/logout", d.Auth.Logout)

    // Everything else requires a valid access token, a known role, and
    // the caller's lab scope resolved up front.
    v1 := e.Group("/v1")
    v1.Use(middleware.JWTAuth(d.Cfg.JWTSecret))
    v1.Use(middleware.RequireRole(model.RoleAdmin, model.RoleTech))
    v1.Use(middleware.LabScope(d.Labs))

    v1.GET("/me", d.Auth.Me)

    v1.GET("/availability", d.Resv.CheckAvailability, middleware.CacheGET(d.CacheCfg, d.RDB))
    v1.GET("/reservations", d.Resv.List)
    v1.GET("/reservations/:id", d.Resv.Get)
    v1.POST("/reservations", d.Resv.Create)
    v1.PUT("/reservations/:id", d.Resv.Update)
    v1.DELETE("/reservations/:id", d.Resv.Delete)

    v1.POST("/supply-items", d.Supply.CreateItem)
    v1.POST("/labs/:id/stock-entries", d.Supply.AddStock)
    v1.GET("/labs/:id/stock", d.Supply.Stock, middleware.CacheGET(d.CacheCfg, d.RDB))
    v1.GET("/labs/:id/movements", d.Supply.Movements)
}
