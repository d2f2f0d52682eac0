package main

import (
	"context"
	"log"

	"github.com/marceloamor/reading-list-manager/internal/cache"
	"github.com/marceloamor/reading-list-manager/internal/config"
	"github.com/marceloamor/reading-list-manager/internal/db"
	"github.com/marceloamor/reading-list-manager/internal/model"
	"github.com/marceloamor/reading-list-manager/internal/repository"
	"github.com/marceloamor/reading-list-manager/internal/seed"
	"github.com/marceloamor/reading-list-manager/internal/service"
	"github.com/marceloamor/reading-list-manager/internal/session"
)

func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.Account{}, &model.Book{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	// Seeding goes through the real services; sessions created along the way
	// stay in-process and are discarded on exit.
	sessionStore := session.NewMemoryStore()

	accountRepo := repository.NewAccountRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)

	authService := service.NewAuthService(accountRepo, sessionStore, cacheClient, cfg.BcryptCost, cfg.SessionTTL)
	bookService := service.NewBookService(bookRepo, cacheClient)

	accounts, books, err := seed.Demo(context.Background(), authService, bookService)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seeded %d accounts and %d books", accounts, books)
}
