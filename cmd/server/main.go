package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/christianq-alva/laboratorios-sub000/internal/config"
    "github.com/christianq-alva/laboratorios-sub000/internal/database"
    "github.com/christianq-alva/laboratorios-sub000/internal/handler"
    "github.com/christianq-alva/laboratorios-sub000/internal/queue"
    "github.com/christianq-alva/laboratorios-sub000/internal/repository"
    "github.com/christianq-alva/laboratorios-sub000/internal/router"
    "github.com/christianq-alva/laboratorios-sub000/internal/service"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()
    cacheCfg := config.LoadCacheConfig()
    rateCfg := config.LoadRateLimitConfig()

    db, err := database.Open(cfg)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    rdb := config.NewRedisClient() // nil when Redis is unreachable; caching degrades to no-op

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    labs := repository.NewLabRepo(db)
    reservations := repository.NewReservationRepo(db)
    inventory := repository.NewInventoryRepo(db)

    uow := repository.NewUnitOfWork(db)
    reader := repository.NewStore(db)

    resvSvc := service.NewReservationService(uow, reader)
    supplySvc := service.NewSupplyService(uow)

    authH := handler.NewAuthHandler(cfg, users, tokens)
    resvH := handler.NewReservationHandler(resvSvc, reservations, cacheCfg, rdb)
    supplyH := handler.NewSupplyHandler(supplySvc, inventory, cacheCfg, rdb)

    // Audit-log consumer runs for the lifetime of the process and
    // reconnects on broker failures.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    e.HideBanner = true
    router.Register(e, router.Deps{
        Cfg:      cfg,
        CacheCfg: cacheCfg,
        RateCfg:  rateCfg,
        RDB:      rdb,
        Labs:     labs,
        Auth:     authH,
        Resv:     resvH,
        Supply:   supplyH,
    })

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
