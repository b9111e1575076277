// Package for handler request structs

package requests

type RegisterUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type CreateToken struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateSong struct {
	Name   string `json:"name" validate:"required"`
	Artist string `json:"artist"`
}

type UpdateSong struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Artist *string `json:"artist"`
}

type UpdateTag struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
}

// Nested song reference on a playlist write. Resolved get-or-create
// within the owner's scope.
type SongRef struct {
	Name   string `json:"name" validate:"required"`
	Artist string `json:"artist"`
}

type TagRef struct {
	Name string `json:"name" validate:"required"`
}

type CreatePlaylist struct {
	Title        string    `json:"title" validate:"required"`
	TimeMinutes  int32     `json:"time_minutes" validate:"gte=0"`
	GeneralGenre string    `json:"general_genre"`
	Songs        []SongRef `json:"songs" validate:"omitempty,dive"`
	Tags         []TagRef  `json:"tags" validate:"omitempty,dive"`
}

type UpdatePlaylist struct {
	Title        *string    `json:"title" validate:"omitempty,min=1"`
	TimeMinutes  *int32     `json:"time_minutes" validate:"omitempty,gte=0"`
	GeneralGenre *string    `json:"general_genre"`
	Songs        *[]SongRef `json:"songs" validate:"omitempty,dive"`
	Tags         *[]TagRef  `json:"tags" validate:"omitempty,dive"`
}
