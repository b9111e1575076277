package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"playlist-backend/internal/api/middleware"
	"playlist-backend/internal/database"
	playlistEnv "playlist-backend/internal/env"
	"playlist-backend/internal/events"
	playlistHttp "playlist-backend/internal/http"
	"playlist-backend/internal/logging"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

const defaultPort = "8080"

func main() {
	// Initialize logger
	logger := logging.New()

	// Create db connection
	logger.Info("Connecting to database")
	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		logger.Error("DB_URL environment variable is not set")
		os.Exit(1)
	}
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(30*time.Second))
	defer cancel()
	db, err := database.NewDatabase(ctx, dbUrl)
	if err != nil {
		logger.Error("Failed to create database connection pool", "error", err)
		os.Exit(1)
	}

	// Apply schema
	logger.Info("Applying schema")
	if err := db.Migrate(ctx); err != nil {
		logger.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	// Event publishing is optional; without REDIS_URL events are dropped
	var rdb *redis.Client
	if redisUrl := os.Getenv("REDIS_URL"); redisUrl != "" {
		opts, err := redis.ParseURL(redisUrl)
		if err != nil {
			logger.Error("Invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		rdb = redis.NewClient(opts)
	}

	env := playlistEnv.New(logger, db, events.New(rdb), playlistHttp.New())
	defer env.Database.Close()

	// Create HTTP Handler
	port := os.Getenv("PORT")
	if port == "" {
		logger.Info("PORT not set, defaulting to port " + defaultPort)
		port = defaultPort
	}
	router := mux.NewRouter()
	middleware.AddRoutes(router, env)

	logger.Info("Serving at " + "0.0.0.0:" + port)
	http.Handle("/", router)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, nil))
}
