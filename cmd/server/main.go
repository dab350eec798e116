package main // Entry point for the wardrobe API server

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dkowalski/wardrobe-api/internal/config"
	"github.com/dkowalski/wardrobe-api/internal/database"
	"github.com/dkowalski/wardrobe-api/internal/handler"
	"github.com/dkowalski/wardrobe-api/internal/queue"
	"github.com/dkowalski/wardrobe-api/internal/repository"
	"github.com/dkowalski/wardrobe-api/internal/router"
	"github.com/dkowalski/wardrobe-api/internal/service"
)

func main() {
	// .env is a development convenience; in production the variables come
	// from the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	items := repository.NewItemRepo(db)

	// Redis is optional: with no reachable server the response cache and
	// its invalidation consumer are simply disabled.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	if rdb == nil {
		log.Println("redis unavailable, response cache disabled")
	} else {
		go func() {
			if err := queue.StartClosetConsumer(rdb, cacheCfg.Prefix); err != nil {
				log.Printf("closet consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	authH := handler.NewAuthHandler(cfg, users)
	itemH := handler.NewItemHandler(items, service.NewAMQPPublisher())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, users)
	router.RegisterItems(e, itemH, cfg.JWTSecret, users, cacheCfg, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
