package comment

import (
	"context"
	"errors"
	"strings"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/db"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/i18n"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
	tr *i18n.Translator
}

func NewService(db db.Querier, tr *i18n.Translator) *Service {
	if tr == nil {
		tr = i18n.New(i18n.DefaultLanguage)
	}
	return &Service{db: db, tr: tr}
}

func (s *Service) Create(ctx context.Context, postID, userID string, req CreateRequest) (Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return Comment{}, errors.New(s.tr.T("field.empty", s.tr.T("comment.text")))
	}
	if len([]rune(text)) > MaxTextLength {
		return Comment{}, errors.New(s.tr.T("field.too_long", s.tr.T("comment.text"), MaxTextLength))
	}

	// Replies stay one level deep. A reply to a reply is attached to the
	// top-level parent instead.
	parentID := req.ParentID
	if parentID != nil {
		var grandparent *string
		err := s.db.QueryRow(ctx, `SELECT parent_id FROM comments WHERE id=$1`, *parentID).Scan(&grandparent)
		if err != nil {
			return Comment{}, errors.New("parent comment not found")
		}
		if grandparent != nil {
			parentID = grandparent
		}
	}

	c := Comment{
		ID:       uuid.NewString(),
		PostID:   postID,
		UserID:   userID,
		ParentID: parentID,
		Text:     text,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO comments (id, post_id, user_id, parent_id, text)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, c.ID, c.PostID, c.UserID, c.ParentID, c.Text)
	if err := row.Scan(&c.CreatedAt); err != nil {
		return Comment{}, err
	}
	return c, nil
}

// ListByPost returns top-level comments with their replies nested and
// reaction counts attached.
func (s *Service) ListByPost(ctx context.Context, postID string) ([]Comment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, post_id, user_id, parent_id, text, created_at
		FROM comments WHERE post_id=$1
		ORDER BY created_at
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flat []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.ParentID, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		flat = append(flat, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	reactions, err := s.loadReactions(ctx, postID)
	if err != nil {
		return nil, err
	}
	for i := range flat {
		flat[i].Reactions = reactions[flat[i].ID]
	}
	return nest(flat), nil
}

func (s *Service) Delete(ctx context.Context, commentID, userID string) error {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM comments WHERE id=$1 AND user_id=$2
	`, commentID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("comment not found or not yours")
	}
	return nil
}

// ToggleReaction adds the user's emoji reaction, or removes it when it
// already exists. Returns true when the reaction is now present.
func (s *Service) ToggleReaction(ctx context.Context, commentID, userID, emoji string) (bool, error) {
	if strings.TrimSpace(emoji) == "" {
		return false, errors.New("emoji required")
	}

	tag, err := s.db.Exec(ctx, `
		DELETE FROM comment_reactions
		WHERE comment_id=$1 AND user_id=$2 AND emoji=$3
	`, commentID, userID, emoji)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO comment_reactions (comment_id, user_id, emoji)
		VALUES ($1,$2,$3)
		ON CONFLICT DO NOTHING
	`, commentID, userID, emoji)
	return err == nil, err
}

func (s *Service) loadReactions(ctx context.Context, postID string) (map[string]map[string]int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.comment_id, r.emoji, COUNT(*)
		FROM comment_reactions r
		JOIN comments c ON c.id = r.comment_id
		WHERE c.post_id = $1
		GROUP BY r.comment_id, r.emoji
	`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]map[string]int{}
	for rows.Next() {
		var commentID, emoji string
		var count int
		if err := rows.Scan(&commentID, &emoji, &count); err != nil {
			return nil, err
		}
		if out[commentID] == nil {
			out[commentID] = map[string]int{}
		}
		out[commentID][emoji] = count
	}
	return out, rows.Err()
}

func nest(flat []Comment) []Comment {
	var roots []Comment
	replies := map[string][]Comment{}
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			replies[*c.ParentID] = append(replies[*c.ParentID], c)
		}
	}
	for i := range roots {
		roots[i].Replies = replies[roots[i].ID]
	}
	return roots
}
