// Package for environmental dependencies

package env

import (
	"log/slog"

	"playlist-backend/internal/database"
	"playlist-backend/internal/events"
	playlistHttp "playlist-backend/internal/http"
	"playlist-backend/internal/logging"
)

const Key = "env"

// Holds the dependencies for the environment
type Env struct {
	*slog.Logger
	Database *database.Database
	Events   *events.Publisher
	Client   *playlistHttp.Client
}

// Constructs an Env object with the provided parameters
func New(logger *slog.Logger, database *database.Database, events *events.Publisher, client *playlistHttp.Client) *Env {
	if logger == nil {
		logger = slog.New(logging.NullLogger())
	}

	return &Env{
		Logger:   logger,
		Database: database,
		Events:   events,
		Client:   client,
	}
}

// Constructs a null instance
func Null() *Env {
	return &Env{
		Logger: slog.New(logging.NullLogger()),
	}
}
