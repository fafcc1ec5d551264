package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/db"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/i18n"
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

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, display_name, avatar_url, created_at, updated_at
		FROM user_profiles WHERE id = $1
	`, userID)

	var p Profile
	if err := row.Scan(&p.ID, &p.DisplayName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (Profile, error) {
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		return Profile{}, errors.New(s.tr.T("field.empty", s.tr.T("profile.display_name")))
	}
	if len([]rune(name)) > MaxDisplayNameLength {
		return Profile{}, errors.New(s.tr.T("field.too_long", s.tr.T("profile.display_name"), MaxDisplayNameLength))
	}

	row := s.db.QueryRow(ctx, `
		UPDATE user_profiles
		SET display_name = $2, avatar_url = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, display_name, avatar_url, created_at, updated_at
	`, userID, name, req.AvatarURL)

	var p Profile
	if err := row.Scan(&p.ID, &p.DisplayName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// DisplayNames resolves user ids in bulk for post enrichment. Ids without
// a profile row are simply absent from the map; callers fall back to an
// empty string.
func (s *Service) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, display_name FROM user_profiles WHERE id = ANY($1)
	`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}
