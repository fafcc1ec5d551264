package storage

import (
	"context"
	"strings"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/db"

	"github.com/google/uuid"
)

// Kinds of stored objects. Post images end up attached to a post; an
// avatar replaces the profile picture.
const (
	KindPostImage = "post_image"
	KindAvatar    = "avatar"
)

type Service struct {
	db      db.Querier
	baseURL string
}

type Object struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	URL    string `json:"url"`
	Kind   string `json:"kind"`
}

func NewService(db db.Querier, baseURL string) *Service {
	return &Service{db: db, baseURL: strings.TrimRight(baseURL, "/")}
}

// SaveObject records an uploaded file and returns its public URL.
func (s *Service) SaveObject(ctx context.Context, userID, fileName, kind string) (Object, error) {
	if kind != KindAvatar {
		kind = KindPostImage
	}

	obj := Object{
		ID:     uuid.NewString(),
		UserID: userID,
		Kind:   kind,
	}
	obj.URL = s.baseURL + "/" + obj.ID + "/" + sanitizeFileName(fileName)

	_, err := s.db.Exec(ctx, `
		INSERT INTO storage_objects (id, user_id, url, kind)
		VALUES ($1,$2,$3,$4)
	`, obj.ID, obj.UserID, obj.URL, obj.Kind)
	if err != nil {
		return Object{}, err
	}
	return obj, nil
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
