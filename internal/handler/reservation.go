package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/christianq-alva/laboratorios-sub000/internal/config"
    "github.com/christianq-alva/laboratorios-sub000/internal/middleware"
    "github.com/christianq-alva/laboratorios-sub000/internal/queue"
    "github.com/christianq-alva/laboratorios-sub000/internal/repository"
    "github.com/christianq-alva/laboratorios-sub000/internal/service"
)

// ReservationHandler exposes the reservation engine over HTTP.
type ReservationHandler struct {
    Svc      *service.ReservationService
    Repo     *repository.ReservationRepo
    CacheCfg config.CacheConfig
    RDB      *redis.Client
}

func NewReservationHandler(svc *service.ReservationService, repo *repository.ReservationRepo, cacheCfg config.CacheConfig, rdb *redis.Client) *ReservationHandler {
    return &ReservationHandler{Svc: svc, Repo: repo, CacheCfg: cacheCfg, RDB: rdb}
}

// ----- DTOs -----

type supplyLineReq struct {
    SupplyItemID uint64 `json:"supply_item_id"`
    Quantity     int64  `json:"quantity"`
}

type reservationReq struct {
    LabID        uint64          `json:"lab_id"`
    InstructorID uint64          `json:"instructor_id"`
    GroupID      uint64          `json:"group_id"`
    SchoolID     uint64          `json:"school_id"`
    CycleID      uint64          `json:"cycle_id"`
    Description  string          `json:"description"`
    StartsAt     string          `json:"starts_at"` // RFC 3339
    EndsAt       string          `json:"ends_at"`   // RFC 3339
    Headcount    uint32          `json:"headcount"`
    Supplies     []supplyLineReq `json:"supplies"`
}

// toInput parses the request into engine input. Time strings must be
// RFC 3339; parse failures are reported as 400s by the caller.
func (req *reservationReq) toInput() (service.ReservationInput, error) {
    starts, err := time.Parse(time.RFC3339, req.StartsAt)
    if err != nil {
        return service.ReservationInput{}, errors.New("starts_at must be RFC 3339")
    }
    ends, err := time.Parse(time.RFC3339, req.EndsAt)
    if err != nil {
        return service.ReservationInput{}, errors.New("ends_at must be RFC 3339")
    }
    in := service.ReservationInput{
        LabID:        req.LabID,
        InstructorID: req.InstructorID,
        GroupID:      req.GroupID,
        SchoolID:     req.SchoolID,
        CycleID:      req.CycleID,
        Description:  req.Description,
        StartsAt:     starts.UTC(),
        EndsAt:       ends.UTC(),
        Headcount:    req.Headcount,
    }
    for _, s := range req.Supplies {
        in.Supplies = append(in.Supplies, service.SupplyLineInput{SupplyItemID: s.SupplyItemID, Quantity: s.Quantity})
    }
    return in, nil
}

// Create handles POST /v1/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
    caller, ok := callerFrom(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
    }
    var req reservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    in, err := req.toInput()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    res, err := h.Svc.Create(ctx, caller, in)
    if err != nil {
        return writeEngineError(c, err)
    }

    middleware.InvalidateCache(h.CacheCfg, h.RDB, c)
    h.publish(queue.EventReservationCreated, res.ID, caller.UserID, in, res.Echo)

    return c.JSON(http.StatusCreated, res)
}

// Update handles PUT /v1/reservations/:id.
func (h *ReservationHandler) Update(c echo.Context) error {
    caller, ok := callerFrom(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req reservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    in, err := req.toInput()
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    echoOut, err := h.Svc.Update(ctx, caller, id, in)
    if err != nil {
        return writeEngineError(c, err)
    }

    middleware.InvalidateCache(h.CacheCfg, h.RDB, c)
    h.publish(queue.EventReservationUpdated, id, caller.UserID, in, *echoOut)

    return c.JSON(http.StatusOK, echo.Map{"id": id, "echo": echoOut})
}

// Delete handles DELETE /v1/reservations/:id.
func (h *ReservationHandler) Delete(c echo.Context) error {
    caller, ok := callerFrom(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
    }
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    // Load display names before the rows disappear; best effort, the
    // event is skipped if the lookup fails.
    detail, _ := h.Repo.GetDetail(ctx, id)

    summary, err := h.Svc.Delete(ctx, caller, id)
    if err != nil {
        return writeEngineError(c, err)
    }

    middleware.InvalidateCache(h.CacheCfg, h.RDB, c)
    if detail != nil {
        ev := queue.ReservationEvent{
            Kind:           queue.EventReservationDeleted,
            ReservationID:  id,
            UserID:         caller.UserID,
            LabID:          detail.LabID,
            LabName:        detail.LabName,
            GroupID:        detail.GroupID,
            GroupName:      detail.GroupName,
            InstructorID:   detail.InstructorID,
            InstructorName: detail.InstructorName,
            StartsAt:       detail.StartsAt,
            EndsAt:         detail.EndsAt,
            OccurredAt:     time.Now().UTC().Format(time.RFC3339),
        }
        go func() { _ = queue.PublishReservationEvent(context.Background(), ev) }()
    }

    return c.JSON(http.StatusOK, summary)
}

// Get handles GET /v1/reservations/:id.
func (h *ReservationHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    detail, err := h.Repo.GetDetail(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !scopeFrom(c).Allows(detail.LabID) {
        return c.JSON(http.StatusForbidden, echo.Map{"error": "lab outside caller scope"})
    }
    return c.JSON(http.StatusOK, detail)
}

// List handles GET /v1/reservations with optional lab_id, from and to
// query filters. Results are always restricted to the caller's scope.
func (h *ReservationHandler) List(c echo.Context) error {
    var labID uint64
    if v := c.QueryParam("lab_id"); v != "" {
        n, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid lab_id"})
        }
        labID = n
    }
    var from, to time.Time
    if v := c.QueryParam("from"); v != "" {
        t, err := time.Parse(time.RFC3339, v)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be RFC 3339"})
        }
        from = t
    }
    if v := c.QueryParam("to"); v != "" {
        t, err := time.Parse(time.RFC3339, v)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be RFC 3339"})
        }
        to = t
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    details, err := h.Repo.List(ctx, labID, from, to, scopeFrom(c))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"reservations": details})
}

// CheckAvailability handles GET /v1/availability. The verdict is
// advisory; the authoritative check runs inside the write transaction.
func (h *ReservationHandler) CheckAvailability(c echo.Context) error {
    labID, err := strconv.ParseUint(c.QueryParam("lab_id"), 10, 64)
    if err != nil || labID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "lab_id required"})
    }
    instructorID, err := strconv.ParseUint(c.QueryParam("instructor_id"), 10, 64)
    if err != nil || instructorID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "instructor_id required"})
    }
    starts, err := time.Parse(time.RFC3339, c.QueryParam("starts_at"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "starts_at must be RFC 3339"})
    }
    ends, err := time.Parse(time.RFC3339, c.QueryParam("ends_at"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_at must be RFC 3339"})
    }
    var excludeID uint64
    if v := c.QueryParam("exclude_reservation_id"); v != "" {
        n, err := strconv.ParseUint(v, 10, 64)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exclude_reservation_id"})
        }
        excludeID = n
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    verdict, err := h.Svc.CheckAvailability(ctx, labID, instructorID, starts.UTC(), ends.UTC(), excludeID)
    if err != nil {
        return writeEngineError(c, err)
    }
    return c.JSON(http.StatusOK, verdict)
}

// publish fires a reservation event in the background. Failures are
// logged by the queue package and otherwise ignored; the write has
// already committed.
func (h *ReservationHandler) publish(kind string, id, userID uint64, in service.ReservationInput, names service.ReservationEcho) {
    ev := queue.ReservationEvent{
        Kind:           kind,
        ReservationID:  id,
        UserID:         userID,
        LabID:          in.LabID,
        LabName:        names.Lab,
        GroupID:        in.GroupID,
        GroupName:      names.Group,
        InstructorID:   in.InstructorID,
        InstructorName: names.Instructor,
        StartsAt:       in.StartsAt.Format(time.RFC3339),
        EndsAt:         in.EndsAt.Format(time.RFC3339),
        OccurredAt:     time.Now().UTC().Format(time.RFC3339),
    }
    for _, s := range in.Supplies {
        ev.Supplies = append(ev.Supplies, queue.SupplySummary{SupplyItemID: s.SupplyItemID, Quantity: s.Quantity})
    }
    go func() { _ = queue.PublishReservationEvent(context.Background(), ev) }()
}
