package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticketing/internal/config"
	"github.com/iliyamo/cinema-ticketing/internal/database"
	"github.com/iliyamo/cinema-ticketing/internal/handler"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
	"github.com/iliyamo/cinema-ticketing/internal/router"
	"github.com/iliyamo/cinema-ticketing/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open store %s: %v", cfg.DBPath, err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.InitSchema(ctx, db); err != nil {
		log.Fatal(err)
	}
	if cfg.Seed {
		if err := database.Seed(ctx, db, cfg.BcryptCost); err != nil {
			log.Fatal(err)
		}
	}

	accounts := repository.NewAccountRepo(db)
	movies := repository.NewMovieRepo(db)
	schedules := repository.NewScheduleRepo(db)
	tickets := repository.NewTicketRepo(db)

	var events service.TicketEventPublisher
	if cfg.AMQPURL != "" {
		events = service.NewAMQPTicketPublisher(cfg.AMQPURL)
	}
	booking := service.New(accounts, movies, schedules, tickets, cfg.BcryptCost, events)

	e := echo.New()
	rdb := config.NewRedisClient() // nil disables cache and rate limiting
	router.Register(e, router.Handlers{
		Auth:    handler.NewAuthHandler(cfg, booking),
		Catalog: handler.NewCatalogHandler(booking),
		Booking: handler.NewBookingHandler(booking),
		Admin:   handler.NewAdminHandler(booking),
	}, cfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.DBPath)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
