package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/soundhaus/booking-api/internal/config"
	"github.com/soundhaus/booking-api/internal/database"
	"github.com/soundhaus/booking-api/internal/handler"
	"github.com/soundhaus/booking-api/internal/middleware"
	"github.com/soundhaus/booking-api/internal/queue"
	"github.com/soundhaus/booking-api/internal/repository"
	"github.com/soundhaus/booking-api/internal/router"
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

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	events := repository.NewEventRepo(db)
	bookings := repository.NewEventBookingRepo(db)
	payments := repository.NewPaymentRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	catalogH := handler.NewCatalogHandler(events, bookings)
	bookingH := handler.NewBookingHandler(events, bookings)
	adminEventH := handler.NewAdminEventHandler(events)
	paymentH := handler.NewPaymentHandler(payments)
	dashH := handler.NewDashboardHandler(users, events, bookings, payments)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterCatalog(e, catalogH, cfg.JWTSecret)
	router.RegisterBookings(e, bookingH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminEventH, paymentH, dashH, cfg.JWTSecret, cacheMW)

	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
