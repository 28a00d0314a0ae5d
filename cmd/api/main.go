package main

import (
	"log"

	"shynora-backend/internal/auth"
	"shynora-backend/internal/config"
	"shynora-backend/internal/db"
	"shynora-backend/internal/email"
	"shynora-backend/internal/handlers"
	"shynora-backend/internal/store"
)

func main() {
	cfg := config.Load()

	database, cleanup, err := db.Connect(cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Fatalf("mongodb: %v", err)
	}
	defer cleanup()
	log.Println("connected to MongoDB")

	users := store.NewUsers(database)
	products := store.NewProducts(database)
	categories := store.NewCategories(database)
	carts := store.NewCarts(database, users, products)
	wishlists := store.NewWishlists(database, users, products)

	mailer := email.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	secret := []byte(cfg.JWTSecret)
	authSvc := auth.NewService(users, carts, wishlists, mailer, secret)
	oauth := auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleCallbackURL, users, secret)
	if !oauth.Enabled() {
		log.Println("Google OAuth credentials not found, Google login disabled")
	}

	h := handlers.New(cfg, authSvc, oauth, products, categories, carts, wishlists)

	log.Printf("listening on :%s", cfg.Port)
	if err := h.Router().Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
