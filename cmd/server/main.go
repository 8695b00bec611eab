package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avelina-cafes/cafewifi/internal/config"
	"github.com/avelina-cafes/cafewifi/internal/database"
	"github.com/avelina-cafes/cafewifi/internal/handler"
	"github.com/avelina-cafes/cafewifi/internal/repository"
	"github.com/avelina-cafes/cafewifi/internal/router"
	"github.com/avelina-cafes/cafewifi/internal/session"
	"github.com/avelina-cafes/cafewifi/internal/view"
)

func main() {
	// .env is a development convenience; deployed environments set
	// variables directly
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	cafes := repository.NewCafeRepo(db)
	users := repository.NewUserRepo(db)

	// Sessions live in Redis when one is configured so logins survive
	// restarts; otherwise the in-process store does fine for a single
	// instance.
	var store session.Store
	if rdb := config.NewRedisClient(); rdb != nil {
		store = session.NewRedisStore(rdb)
		log.Printf("sessions: redis at %s", rdb.Options().Addr)
	} else {
		store = session.NewMemoryStore()
		log.Printf("sessions: in-memory store")
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = view.NewRenderer()
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.Register(e,
		handler.NewCafeHandler(cfg, cafes),
		handler.NewAuthHandler(cfg, users, store),
		store, users, cfg.SessionSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
