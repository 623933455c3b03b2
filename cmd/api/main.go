package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"herdflow/auth"
	"herdflow/db"
	"herdflow/herd"
	"herdflow/lifecycle"
)

func main() {
	ctx := context.Background()

	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}
	}

	pool, err := db.NewPool(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	validate := validator.New()

	animalRepo := herd.NewRepository(pool)
	herdService := herd.NewService(animalRepo, validate)
	lifecycleService := lifecycle.NewService(animalRepo, validate)
	authService := auth.NewService(auth.NewRepository(pool), os.Getenv("JWT_SECRET"))

	log.Printf("herdflow services ready: herd=%v lifecycle=%v auth=%v",
		herdService != nil, lifecycleService != nil, authService != nil)
}
