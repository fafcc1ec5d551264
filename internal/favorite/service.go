package favorite

import (
	"context"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/db"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/post"
)

// Service manages the user_id/post_id favorites association. Add and
// Remove are idempotent so double taps in the client are harmless.
type Service struct {
	db    db.Querier
	posts *post.Service
}

func NewService(db db.Querier, posts *post.Service) *Service {
	return &Service{db: db, posts: posts}
}

func (s *Service) Add(ctx context.Context, userID, postID string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO favorites (user_id, post_id)
		VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, userID, postID)
	return err
}

func (s *Service) Remove(ctx context.Context, userID, postID string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM favorites WHERE user_id=$1 AND post_id=$2
	`, userID, postID)
	return err
}

// IDs returns the set of post ids the user has favorited. The search
// service uses it to mark results.
func (s *Service) IDs(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := s.db.Query(ctx, `
		SELECT post_id FROM favorites WHERE user_id=$1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := map[string]bool{}
	for rows.Next() {
		var postID string
		if err := rows.Scan(&postID); err != nil {
			return nil, err
		}
		ids[postID] = true
	}
	return ids, rows.Err()
}

// List returns the user's favorited posts with relations attached.
func (s *Service) List(ctx context.Context, userID string) ([]post.Post, error) {
	ids, err := s.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	ordered := make([]string, 0, len(ids))
	for id := range ids {
		ordered = append(ordered, id)
	}
	posts, err := s.posts.ByIDs(ctx, ordered)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].IsFavorite = true
	}
	return posts, nil
}
