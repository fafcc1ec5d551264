package search

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/db"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/post"
)

const (
	SortCreatedDesc = "created_at_desc"
	SortCreatedAsc  = "created_at_asc"
	SortEventDesc   = "event_date_desc"
	SortEventAsc    = "event_date_asc"
	SortDistance    = "distance"
)

// Params carries one search invocation's filter state.
type Params struct {
	Query     string    `json:"search_query,omitempty"`
	StatusID  Selection `json:"status_id,omitempty"`
	SpeciesID Selection `json:"species_id,omitempty"`
	BreedID   Selection `json:"breed_id,omitempty"`
	SexID     Selection `json:"sex_id,omitempty"`
	Colors    []int     `json:"colors,omitempty"`
	Location  string    `json:"location,omitempty"`
	CenterLat *float64  `json:"center_lat,omitempty"`
	CenterLon *float64  `json:"center_lon,omitempty"`
	RadiusKm  float64   `json:"radius_km,omitempty"`
	Sort      string    `json:"sort,omitempty"`
	Limit     int       `json:"limit,omitempty"`
}

// FavoriteSource yields the favorite post ids of a user.
type FavoriteSource interface {
	IDs(ctx context.Context, userID string) (map[string]bool, error)
}

// ProfileSource resolves user ids to display names.
type ProfileSource interface {
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}

type Service struct {
	db        db.Querier
	posts     *post.Service
	favorites FavoriteSource
	profiles  ProfileSource
}

func NewService(db db.Querier, posts *post.Service, favorites FavoriteSource, profiles ProfileSource) *Service {
	return &Service{db: db, posts: posts, favorites: favorites, profiles: profiles}
}

// Search runs the full pipeline: SQL pre-filter, text/city/color/radius
// filters, sort, favorite marking, display-name enrichment. Enrichment
// failures degrade the result, never fail it.
func (s *Service) Search(ctx context.Context, params Params, userID string) ([]post.Post, error) {
	items, err := s.queryPosts(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := s.posts.AttachRelations(ctx, items); err != nil {
		return nil, err
	}

	items = FilterBySearch(items, params.Query)
	items = FilterByCity(items, params.Location)
	items = FilterByColors(items, params.Colors)

	if params.CenterLat != nil && params.CenterLon != nil {
		if params.RadiusKm > 0 {
			items = FilterByRadius(items, *params.CenterLat, *params.CenterLon, params.RadiusKm)
		} else {
			items = EnrichWithDistance(items, *params.CenterLat, *params.CenterLon)
		}
	}

	switch params.Sort {
	case SortEventDesc:
		items = SortByEventDate(items, true)
	case SortEventAsc:
		items = SortByEventDate(items, false)
	case SortDistance:
		items = SortByDistance(items)
	}

	favoriteIDs := map[string]bool{}
	if userID != "" && s.favorites != nil {
		ids, err := s.favorites.IDs(ctx, userID)
		if err != nil {
			log.Printf("loading favorite ids failed: %v", err)
		} else {
			favoriteIDs = ids
		}
	}
	items = MarkFavorites(items, favoriteIDs)

	s.enrichDisplayNames(ctx, items)
	return items, nil
}

// Matches reports whether a single post satisfies the in-memory filters of
// params. The alert hub uses it to replay saved searches against new posts.
func Matches(p post.Post, params Params) bool {
	if id, ok := params.StatusID.ID(); ok && p.StatusID != id {
		return false
	}
	if id, ok := params.SpeciesID.ID(); ok && p.SpeciesID != id {
		return false
	}
	if !selectionMatches(params.SexID, p.SexID) {
		return false
	}
	if !selectionMatches(params.BreedID, p.BreedID) {
		return false
	}

	single := []post.Post{p}
	if len(FilterBySearch(single, params.Query)) == 0 {
		return false
	}
	if len(FilterByCity(single, params.Location)) == 0 {
		return false
	}
	if len(FilterByColors(single, params.Colors)) == 0 {
		return false
	}
	if params.CenterLat != nil && params.CenterLon != nil && params.RadiusKm > 0 {
		if len(FilterByRadius(single, *params.CenterLat, *params.CenterLon, params.RadiusKm)) == 0 {
			return false
		}
	}
	return true
}

func selectionMatches(sel Selection, field *int) bool {
	if sel.IsNone() {
		return field == nil
	}
	if id, ok := sel.ID(); ok {
		return field != nil && *field == id
	}
	return true
}

func (s *Service) queryPosts(ctx context.Context, params Params) ([]post.Post, error) {
	limit := params.Limit
	if limit <= 0 || limit > post.MaxLimit {
		limit = post.DefaultLimit
	}

	conds := []string{"is_active"}
	var args []any
	addArg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if id, ok := params.StatusID.ID(); ok {
		conds = append(conds, "post_status_id = "+addArg(id))
	}
	if id, ok := params.SpeciesID.ID(); ok {
		conds = append(conds, "species_id = "+addArg(id))
	}
	conds = appendNullable(conds, "sex_id", params.SexID, addArg)
	conds = appendNullable(conds, "breed_id", params.BreedID, addArg)

	order := "created_at DESC"
	if params.Sort == SortCreatedAsc {
		order = "created_at ASC"
	}

	sql := fmt.Sprintf(`
		SELECT
			id, user_id, headline, description, location_text,
			location_lat, location_lon, event_date::text,
			post_status_id, species_id, breed_id, sex_id, is_active, created_at
		FROM post
		WHERE %s
		ORDER BY %s
		LIMIT %s
	`, strings.Join(conds, " AND "), order, addArg(limit))

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []post.Post
	for rows.Next() {
		var p post.Post
		err := rows.Scan(&p.ID, &p.UserID, &p.Headline, &p.Description, &p.LocationText,
			&p.Lat, &p.Lon, &p.EventDate,
			&p.StatusID, &p.SpeciesID, &p.BreedID, &p.SexID, &p.IsActive, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

// appendNullable handles the three-state sex/breed filters: "no value" maps
// to IS NULL, a concrete id to equality, anything else to no condition.
func appendNullable(conds []string, column string, sel Selection, addArg func(any) string) []string {
	if sel.IsNone() {
		return append(conds, column+" IS NULL")
	}
	if id, ok := sel.ID(); ok {
		return append(conds, column+" = "+addArg(id))
	}
	return conds
}

func (s *Service) enrichDisplayNames(ctx context.Context, items []post.Post) {
	if len(items) == 0 || s.profiles == nil {
		return
	}
	seen := map[string]bool{}
	var ids []string
	for _, it := range items {
		if it.UserID != "" && !seen[it.UserID] {
			seen[it.UserID] = true
			ids = append(ids, it.UserID)
		}
	}
	if len(ids) == 0 {
		return
	}
	names, err := s.profiles.DisplayNames(ctx, ids)
	if err != nil {
		log.Printf("loading display names failed: %v", err)
		return
	}
	for i := range items {
		items[i].UserDisplayName = names[items[i].UserID]
	}
}
