package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/prajwalrk/seatmaster/internal/config"
	"github.com/prajwalrk/seatmaster/internal/database"
	"github.com/prajwalrk/seatmaster/internal/generator"
	"github.com/prajwalrk/seatmaster/internal/handler"
	"github.com/prajwalrk/seatmaster/internal/middleware"
	"github.com/prajwalrk/seatmaster/internal/queue"
	"github.com/prajwalrk/seatmaster/internal/repository"
	"github.com/prajwalrk/seatmaster/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	rosterRepo := repository.NewRosterRepo(db)
	qpMapRepo := repository.NewQPMapRepo(db)
	qpDocRepo := repository.NewQPDocRepo(db)
	runRepo := repository.NewRunRepo(db)

	gen := generator.New(roomRepo, rosterRepo, qpMapRepo, qpDocRepo, runRepo)

	authH := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	dataH := handler.NewDatasetHandler(cfg, roomRepo, rosterRepo, qpMapRepo, qpDocRepo)
	runH := handler.NewRunHandler(gen, runRepo)

	// Redis backs the rate limiter and the report cache. Both degrade
	// to pass-through when no client is available.
	rdb := config.NewRedisClient()
	var limiter, cache echo.MiddlewareFunc
	if rdb != nil {
		limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	go func() {
		if err := queue.StartGenerationConsumer(); err != nil {
			log.Printf("generation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, limiter)
	router.RegisterAPI(e, authH, dataH, runH, cfg.JWTSecret, cache, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
