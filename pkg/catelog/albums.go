package catelog

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// Album is a single music release in the catalogue.
type Album struct {
	ID          int         `json:"id" db:"id"`
	Rank        int         `json:"rank" db:"rank"`
	Artist      null.String `json:"artist" db:"artist"`
	ReleaseYear int         `json:"releaseYear" db:"release_year"`
	Genre       null.String `json:"genre" db:"genre"`
	AlbumTitle  null.String `json:"albumTitle" db:"album_title"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty" db:"created_at"`
	UpdatedAt   *time.Time  `json:"updatedAt,omitempty" db:"updated_at"`
}

// GetAlbumReq identifies a single album by its path id.
type GetAlbumReq struct {
	AlbumID int
}

// UpdateAlbumReq carries the path id and the decoded body of an update.
type UpdateAlbumReq struct {
	AlbumID int
	Album   Album
}
