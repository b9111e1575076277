// Package for handler response structs

package responses

import (
	"time"

	"github.com/google/uuid"
)

type RegisterUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type Song struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ListSongs struct {
	Songs []Song `json:"songs"`
}

type ListTags struct {
	Tags []Tag `json:"tags"`
}

// Summary shape used by the playlist listing
type Playlist struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	TimeMinutes  int32  `json:"time_minutes"`
	GeneralGenre string `json:"general_genre"`
}

// Detail shape used everywhere else: nested songs and tags included
type PlaylistDetail struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	TimeMinutes  int32     `json:"time_minutes"`
	GeneralGenre string    `json:"general_genre"`
	CreatedAt    time.Time `json:"created_at"`
	Songs        []Song    `json:"songs"`
	Tags         []Tag     `json:"tags"`
}

type ListPlaylists struct {
	Playlists []Playlist `json:"playlists"`
}
