package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/marceloamor/reading-list-manager/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/marceloamor/reading-list-manager/internal/cache"
	"github.com/marceloamor/reading-list-manager/internal/config"
	"github.com/marceloamor/reading-list-manager/internal/db"
	"github.com/marceloamor/reading-list-manager/internal/handler"
	"github.com/marceloamor/reading-list-manager/internal/model"
	"github.com/marceloamor/reading-list-manager/internal/repository"
	"github.com/marceloamor/reading-list-manager/internal/router"
	"github.com/marceloamor/reading-list-manager/internal/service"
	"github.com/marceloamor/reading-list-manager/internal/session"
)

// @title Reading List Manager API
// @version 1.0
// @description Personal reading lists with session auth and anonymised community statistics.
// @host localhost:8080
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Book{}, &model.Account{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(&model.Account{}, &model.Book{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessionStore := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(accountRepo, sessionStore, cacheClient, cfg.BcryptCost, cfg.SessionTTL)
	bookService := service.NewBookService(bookRepo, cacheClient)
	statsService := service.NewStatsService(bookRepo, accountRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL, cfg.DevMode)
	bookHandler := handler.NewBookHandler(bookService, cfg.DevMode)
	statsHandler := handler.NewStatsHandler(statsService, cfg.DevMode)
	seedHandler := handler.NewSeedHandler(authService, bookService, cfg.DevMode)

	// Register routes
	router.Register(e, cfg, sessionStore, authHandler, bookHandler, statsHandler, seedHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
