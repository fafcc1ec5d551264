package post

import (
	"context"
	"errors"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/db"

	"github.com/google/uuid"
)

// Notifier is told about newly created posts. The alert hub implements it;
// a nil notifier disables fan-out.
type Notifier interface {
	PostCreated(p Post)
}

type Service struct {
	db       db.Querier
	notifier Notifier
}

func NewService(db db.Querier, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

const postColumns = `
	id, user_id, headline, description, location_text,
	location_lat, location_lon, event_date::text,
	post_status_id, species_id, breed_id, sex_id, is_active, created_at`

func (s *Service) Create(ctx context.Context, input Post) (Post, error) {
	if err := validatePost(input); err != nil {
		return Post{}, err
	}
	input.ID = uuid.NewString()
	input.IsActive = true

	row := s.db.QueryRow(ctx, `
		INSERT INTO post (id, user_id, headline, description, location_text,
		                  location_lat, location_lon, event_date,
		                  post_status_id, species_id, breed_id, sex_id, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8::date,$9,$10,$11,$12,$13)
		RETURNING created_at
	`, input.ID, input.UserID, input.Headline, input.Description, input.LocationText,
		input.Lat, input.Lon, input.EventDate,
		input.StatusID, input.SpeciesID, input.BreedID, input.SexID, input.IsActive)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Post{}, err
	}

	if len(input.ColorIDs) > 0 {
		if err := s.ReplaceColors(ctx, input.ID, input.ColorIDs); err != nil {
			return Post{}, err
		}
	}

	if s.notifier != nil {
		s.notifier.PostCreated(input)
	}
	return input, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Post) (Post, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if patch.Headline != "" {
		p.Headline = patch.Headline
	}
	if patch.Description != "" {
		p.Description = patch.Description
	}
	if patch.LocationText != "" {
		p.LocationText = patch.LocationText
	}
	if patch.Lat != nil {
		p.Lat = patch.Lat
	}
	if patch.Lon != nil {
		p.Lon = patch.Lon
	}
	if patch.EventDate != nil {
		p.EventDate = patch.EventDate
	}
	if patch.StatusID != 0 {
		p.StatusID = patch.StatusID
	}
	if patch.SpeciesID != 0 {
		p.SpeciesID = patch.SpeciesID
	}
	if patch.BreedID != nil {
		p.BreedID = patch.BreedID
	}
	if patch.SexID != nil {
		p.SexID = patch.SexID
	}
	if err := validatePost(p); err != nil {
		return Post{}, err
	}

	_, err = s.db.Exec(ctx, `
		UPDATE post
		SET headline=$2, description=$3, location_text=$4,
		    location_lat=$5, location_lon=$6, event_date=$7::date,
		    post_status_id=$8, species_id=$9, breed_id=$10, sex_id=$11
		WHERE id=$1
	`, p.ID, p.Headline, p.Description, p.LocationText,
		p.Lat, p.Lon, p.EventDate,
		p.StatusID, p.SpeciesID, p.BreedID, p.SexID)
	if err != nil {
		return Post{}, err
	}

	if patch.ColorIDs != nil {
		if err := s.ReplaceColors(ctx, p.ID, patch.ColorIDs); err != nil {
			return Post{}, err
		}
		p.ColorIDs = patch.ColorIDs
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Post, error) {
	row := s.db.QueryRow(ctx, `SELECT`+postColumns+` FROM post WHERE id=$1`, id)
	p, err := scanPost(row)
	if err != nil {
		return Post{}, err
	}
	colors, err := s.loadColors(ctx, []string{p.ID})
	if err != nil {
		return Post{}, err
	}
	images, err := s.loadImages(ctx, []string{p.ID})
	if err != nil {
		return Post{}, err
	}
	p.ColorIDs = colors[p.ID]
	p.Images = images[p.ID]
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM post WHERE id=$1`, id)
	return err
}

// All returns active posts, newest first, capped at limit.
func (s *Service) All(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	rows, err := s.db.Query(ctx, `
		SELECT`+postColumns+`
		FROM post WHERE is_active
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if err := s.AttachRelations(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Service) MyPosts(ctx context.Context, userID string) ([]Post, error) {
	rows, err := s.db.Query(ctx, `
		SELECT`+postColumns+`
		FROM post WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if err := s.AttachRelations(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ByIDs loads the given posts with their relations, newest first.
// Missing ids are silently absent from the result.
func (s *Service) ByIDs(ctx context.Context, ids []string) ([]Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT`+postColumns+`
		FROM post WHERE id = ANY($1)
		ORDER BY created_at DESC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := scanPosts(rows)
	if err != nil {
		return nil, err
	}
	if err := s.AttachRelations(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ReplaceColors swaps the color set of a post. There is no update-in-place
// for association rows; delete and re-insert keeps the set exact.
func (s *Service) ReplaceColors(ctx context.Context, postID string, colorIDs []int) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM post_color WHERE post_id=$1`, postID); err != nil {
		return err
	}
	for _, colorID := range colorIDs {
		_, err := s.db.Exec(ctx, `
			INSERT INTO post_color (post_id, color_id)
			VALUES ($1,$2)
			ON CONFLICT DO NOTHING
		`, postID, colorID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) AttachImage(ctx context.Context, postID, url string) (Image, error) {
	img := Image{
		ID:     uuid.NewString(),
		PostID: postID,
		URL:    url,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO post_image (id, post_id, url)
		VALUES ($1,$2,$3)
		RETURNING created_at
	`, img.ID, img.PostID, img.URL)
	if err := row.Scan(&img.CreatedAt); err != nil {
		return Image{}, err
	}
	return img, nil
}

// AttachRelations fills colors and images for the given posts in place.
// The search service reuses it after its own pre-filtered query.
func (s *Service) AttachRelations(ctx context.Context, posts []Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	colors, err := s.loadColors(ctx, ids)
	if err != nil {
		return err
	}
	images, err := s.loadImages(ctx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].ColorIDs = colors[posts[i].ID]
		posts[i].Images = images[posts[i].ID]
	}
	return nil
}

func (s *Service) loadColors(ctx context.Context, postIDs []string) (map[string][]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT post_id, color_id
		FROM post_color WHERE post_id = ANY($1)
		ORDER BY color_id
	`, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	colors := map[string][]int{}
	for rows.Next() {
		var postID string
		var colorID *int
		if err := rows.Scan(&postID, &colorID); err != nil {
			return nil, err
		}
		// association rows without a color id are skipped, not an error
		if colorID == nil {
			continue
		}
		colors[postID] = append(colors[postID], *colorID)
	}
	return colors, nil
}

func (s *Service) loadImages(ctx context.Context, postIDs []string) (map[string][]Image, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, post_id, url, created_at
		FROM post_image WHERE post_id = ANY($1)
		ORDER BY created_at
	`, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := map[string][]Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.PostID, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		images[img.PostID] = append(images[img.PostID], img)
	}
	return images, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.UserID, &p.Headline, &p.Description, &p.LocationText,
		&p.Lat, &p.Lon, &p.EventDate,
		&p.StatusID, &p.SpeciesID, &p.BreedID, &p.SexID, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

func scanPosts(rows interface {
	Next() bool
	Scan(dest ...any) error
}) ([]Post, error) {
	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

func validatePost(p Post) error {
	if p.Headline == "" || len([]rune(p.Headline)) > MaxHeadlineLength {
		return errors.New("headline required, max 50 characters")
	}
	if n := len([]rune(p.Description)); n < MinDescriptionLength || n > MaxDescriptionLength {
		return errors.New("description must be 10 to 2000 characters")
	}
	if len([]rune(p.LocationText)) > MaxLocationLength {
		return errors.New("location text too long")
	}
	if p.StatusID <= 0 || p.SpeciesID <= 0 {
		return errors.New("status_id and species_id required")
	}
	return nil
}
