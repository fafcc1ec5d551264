package post

import "time"

// Post is a lost-or-found report. Coordinates and event date are optional;
// the search pipeline must cope with their absence.
type Post struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Headline     string    `json:"headline"`
	Description  string    `json:"description"`
	LocationText string    `json:"location_text"`
	Lat          *float64  `json:"location_lat,omitempty"`
	Lon          *float64  `json:"location_lon,omitempty"`
	EventDate    *string   `json:"event_date,omitempty"`
	StatusID     int       `json:"status_id"`
	SpeciesID    int       `json:"species_id"`
	BreedID      *int      `json:"breed_id,omitempty"`
	SexID        *int      `json:"sex_id,omitempty"`
	ColorIDs     []int     `json:"color_ids,omitempty"`
	Images       []Image   `json:"images,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`

	// Derived fields written by the search pipeline.
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	IsFavorite      bool     `json:"is_favorite"`
	UserDisplayName string   `json:"user_display_name,omitempty"`
}

type Image struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	MaxHeadlineLength    = 50
	MaxDescriptionLength = 2000
	MinDescriptionLength = 10
	MaxLocationLength    = 200
	DefaultLimit         = 30
	MaxLimit             = 200
)
