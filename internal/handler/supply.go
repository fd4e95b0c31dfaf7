package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/christianq-alva/laboratorios-sub000/internal/config"
    "github.com/christianq-alva/laboratorios-sub000/internal/middleware"
    "github.com/christianq-alva/laboratorios-sub000/internal/repository"
    "github.com/christianq-alva/laboratorios-sub000/internal/service"
)

// SupplyHandler exposes the supply catalog and the per-lab inventory
// ledger over HTTP.
type SupplyHandler struct {
    Svc      *service.SupplyService
    Repo     *repository.InventoryRepo
    CacheCfg config.CacheConfig
    RDB      *redis.Client
}

func NewSupplyHandler(svc *service.SupplyService, repo *repository.InventoryRepo, cacheCfg config.CacheConfig, rdb *redis.Client) *SupplyHandler {
    return &SupplyHandler{Svc: svc, Repo: repo, CacheCfg: cacheCfg, RDB: rdb}
}

// ----- DTOs -----

type initialStockReq struct {
    LabID    uint64 `json:"lab_id"`
    Quantity int64  `json:"quantity"`
}

type supplyItemReq struct {
    Name         string            `json:"name"`
    Description  string            `json:"description"`
    Unit         string            `json:"unit"`
    InitialStock []initialStockReq `json:"initial_stock"`
}

type stockEntryReq struct {
    SupplyItemID uint64 `json:"supply_item_id"`
    Quantity     int64  `json:"quantity"`
    Note         string `json:"note"`
}

// CreateItem handles POST /v1/supply-items. Opening balances are
// seeded in the same transaction as the catalog row.
func (h *SupplyHandler) CreateItem(c echo.Context) error {
    caller, ok := callerFrom(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
    }
    var req supplyItemReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    in := service.SupplyItemInput{
        Name:        req.Name,
        Description: req.Description,
        Unit:        req.Unit,
    }
    for _, s := range req.InitialStock {
        in.InitialStock = append(in.InitialStock, service.InitialStockInput{LabID: s.LabID, Quantity: s.Quantity})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    item, err := h.Svc.CreateItem(ctx, caller, in)
    if err != nil {
        return writeEngineError(c, err)
    }

    middleware.InvalidateCache(h.CacheCfg, h.RDB, c)
    return c.JSON(http.StatusCreated, echo.Map{
        "id":   item.ID,
        "name": item.Name,
        "unit": item.Unit,
    })
}

// AddStock handles POST /v1/labs/:id/stock-entries. Records a manual
// restock as an ENTRY movement and raises the balance.
func (h *SupplyHandler) AddStock(c echo.Context) error {
    caller, ok := callerFrom(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
    }
    labID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lab id"})
    }
    var req stockEntryReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    if err := h.Svc.AddStock(ctx, caller, labID, req.SupplyItemID, req.Quantity, req.Note); err != nil {
        return writeEngineError(c, err)
    }

    middleware.InvalidateCache(h.CacheCfg, h.RDB, c)
    return c.JSON(http.StatusCreated, echo.Map{
        "lab_id":         labID,
        "supply_item_id": req.SupplyItemID,
        "quantity":       req.Quantity,
    })
}

// Stock handles GET /v1/labs/:id/stock. Returns the current balance of
// every supply item held by the lab.
func (h *SupplyHandler) Stock(c echo.Context) error {
    labID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lab id"})
    }
    if !scopeFrom(c).Allows(labID) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "lab outside caller scope"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    balances, err := h.Repo.BalancesByLab(ctx, labID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"lab_id": labID, "stock": balances})
}

// Movements handles GET /v1/labs/:id/movements. Returns the lab's
// ledger rows, newest first, capped by the limit query parameter.
func (h *SupplyHandler) Movements(c echo.Context) error {
    labID, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lab id"})
    }
    if !scopeFrom(c).Allows(labID) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "lab outside caller scope"})
    }
    limit := 0
    if v := c.QueryParam("limit"); v != "" {
        n, err := strconv.Atoi(v)
        if err != nil || n < 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
        }
        limit = n
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    movements, err := h.Repo.MovementsByLab(ctx, labID, limit)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"lab_id": labID, "movements": movements})
}
