package database

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// PEM-encoded RSA key used to sign access tokens. The newest row wins.
type PrivateKey struct {
	ID        int64
	Value     string
	CreatedAt time.Time
}

type Playlist struct {
	ID           int64
	UserID       uuid.UUID
	Title        string
	TimeMinutes  int32
	GeneralGenre string
	CreatedAt    time.Time
}

type Song struct {
	ID     int64
	UserID uuid.UUID
	Name   string
	Artist string
}

type Tag struct {
	ID     int64
	UserID uuid.UUID
	Name   string
}

// Playlist row together with its associated songs and tags
type PlaylistDetail struct {
	Playlist
	Songs []Song
	Tags  []Tag
}
