package savedsearch

import (
	"encoding/json"
	"time"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/search"
)

const (
	MaxNameLength      = 100
	MaxSearchesPerUser = 20
)

type SavedSearch struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Filters   Payload   `json:"filters"`
	CreatedAt time.Time `json:"created_at"`
}

// Payload is the stored filter set. Only fields the user actually chose
// end up in the JSONB column; "keine_angabe" survives a round trip as
// itself and never decays to an absent field.
type Payload struct {
	SearchQuery string           `json:"search_query,omitempty"`
	StatusID    search.Selection `json:"status_id,omitempty"`
	SpeciesID   search.Selection `json:"species_id,omitempty"`
	BreedID     search.Selection `json:"breed_id,omitempty"`
	SexID       search.Selection `json:"sex_id,omitempty"`
	Colors      []int            `json:"colors,omitempty"`
}

func (p Payload) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if p.SearchQuery != "" {
		out["search_query"] = p.SearchQuery
	}
	for key, sel := range map[string]search.Selection{
		"status_id":  p.StatusID,
		"species_id": p.SpeciesID,
		"breed_id":   p.BreedID,
		"sex_id":     p.SexID,
	} {
		if !sel.IsUnset() {
			out[key] = sel
		}
	}
	if len(p.Colors) > 0 {
		out["colors"] = p.Colors
	}
	return json.Marshal(out)
}

func (p *Payload) UnmarshalJSON(data []byte) error {
	type alias Payload
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Payload(a)
	return nil
}

// Replay converts a stored payload back into live search parameters.
func (p Payload) Replay() search.Params {
	return search.Params{
		Query:     p.SearchQuery,
		StatusID:  p.StatusID,
		SpeciesID: p.SpeciesID,
		BreedID:   p.BreedID,
		SexID:     p.SexID,
		Colors:    p.Colors,
	}
}

type SaveRequest struct {
	Name    string  `json:"name"`
	Filters Payload `json:"filters"`
}
