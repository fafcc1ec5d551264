package savedsearch

import (
	"context"
	"encoding/json"
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

func (s *Service) Save(ctx context.Context, userID string, req SaveRequest) (SavedSearch, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return SavedSearch{}, errors.New(s.tr.T("field.empty", s.tr.T("search.name")))
	}
	if len([]rune(name)) > MaxNameLength {
		return SavedSearch{}, errors.New(s.tr.T("field.too_long", s.tr.T("search.name"), MaxNameLength))
	}

	var count int
	if err := s.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM saved_searches WHERE user_id=$1
	`, userID).Scan(&count); err != nil {
		return SavedSearch{}, err
	}
	if count >= MaxSearchesPerUser {
		return SavedSearch{}, errors.New(s.tr.T("search.limit_reached", MaxSearchesPerUser))
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM saved_searches WHERE user_id=$1 AND name=$2)
	`, userID, name).Scan(&exists); err != nil {
		return SavedSearch{}, err
	}
	if exists {
		return SavedSearch{}, errors.New(s.tr.T("search.duplicate_name", name))
	}

	filters, err := json.Marshal(req.Filters)
	if err != nil {
		return SavedSearch{}, err
	}

	saved := SavedSearch{
		ID:      uuid.NewString(),
		UserID:  userID,
		Name:    name,
		Filters: req.Filters,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO saved_searches (id, user_id, name, filters)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, saved.ID, saved.UserID, saved.Name, filters)
	if err := row.Scan(&saved.CreatedAt); err != nil {
		return SavedSearch{}, err
	}
	return saved, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]SavedSearch, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, filters, created_at
		FROM saved_searches WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedSearch
	for rows.Next() {
		saved, err := scanSavedSearch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, rows.Err()
}

func (s *Service) Get(ctx context.Context, userID, id string) (SavedSearch, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, filters, created_at
		FROM saved_searches WHERE id=$1 AND user_id=$2
	`, id, userID)
	return scanSavedSearch(row)
}

// Delete is idempotent; removing a search that is already gone succeeds.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	_, err := s.db.Exec(ctx, `
		DELETE FROM saved_searches WHERE id=$1 AND user_id=$2
	`, id, userID)
	return err
}

// ForAllUsers streams every saved search; the alert hub replays them
// against freshly created posts.
func (s *Service) ForAllUsers(ctx context.Context) ([]SavedSearch, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, filters, created_at
		FROM saved_searches
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedSearch
	for rows.Next() {
		saved, err := scanSavedSearch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSavedSearch(row rowScanner) (SavedSearch, error) {
	var saved SavedSearch
	var filters []byte
	if err := row.Scan(&saved.ID, &saved.UserID, &saved.Name, &filters, &saved.CreatedAt); err != nil {
		return SavedSearch{}, err
	}
	if len(filters) > 0 {
		if err := json.Unmarshal(filters, &saved.Filters); err != nil {
			return SavedSearch{}, err
		}
	}
	return saved, nil
}
