package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/mlovren/tourism-scheduler/internal/config"
	"github.com/mlovren/tourism-scheduler/internal/database"
	"github.com/mlovren/tourism-scheduler/internal/handler"
	"github.com/mlovren/tourism-scheduler/internal/middleware"
	"github.com/mlovren/tourism-scheduler/internal/queue"
	"github.com/mlovren/tourism-scheduler/internal/repository"
	"github.com/mlovren/tourism-scheduler/internal/router"
)

func main() {
	// Load .env in local development; a missing file is fine in prod.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis backs the schedule-view cache and the rate limiter; both degrade
	// to pass-through when it is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	// Background consumer appending audit messages to logs/schedule.log.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	roomRepo := repository.NewRoomRepo(db)
	classRepo := repository.NewClassRepo(db)
	eventRepo := repository.NewEventRepo(db)
	exceptionRepo := repository.NewExceptionRepo(db)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg), cfg.JWTSecret)
	router.RegisterSchedule(e, router.Handlers{
		Rooms:      handler.NewRoomHandler(roomRepo),
		Classes:    handler.NewClassHandler(classRepo, roomRepo),
		Events:     handler.NewEventHandler(eventRepo, classRepo, roomRepo),
		Exceptions: handler.NewExceptionHandler(exceptionRepo, classRepo),
		Schedule:   handler.NewScheduleHandler(roomRepo, classRepo, eventRepo, exceptionRepo),
	}, cfg.JWTSecret, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
