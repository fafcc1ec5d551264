package reference

import (
	"context"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/db"
)

// Service reads the lookup tables that posts and filters reference.
// All of them are small and change rarely.
type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Statuses(ctx context.Context) ([]Status, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM post_statuses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Status
	for rows.Next() {
		var st Status
		if err := rows.Scan(&st.ID, &st.Name); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *Service) Species(ctx context.Context) ([]Species, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM species ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Species
	for rows.Next() {
		var sp Species
		if err := rows.Scan(&sp.ID, &sp.Name); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// BreedsBySpecies returns all breeds grouped by their species id.
func (s *Service) BreedsBySpecies(ctx context.Context) (map[int][]Breed, error) {
	rows, err := s.db.Query(ctx, `SELECT id, species_id, name FROM breeds ORDER BY species_id, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[int][]Breed)
	for rows.Next() {
		var b Breed
		if err := rows.Scan(&b.ID, &b.SpeciesID, &b.Name); err != nil {
			return nil, err
		}
		grouped[b.SpeciesID] = append(grouped[b.SpeciesID], b)
	}
	return grouped, rows.Err()
}

func (s *Service) Breeds(ctx context.Context, speciesID int) ([]Breed, error) {
	rows, err := s.db.Query(ctx, `SELECT id, species_id, name FROM breeds WHERE species_id = $1 ORDER BY name`, speciesID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Breed
	for rows.Next() {
		var b Breed
		if err := rows.Scan(&b.ID, &b.SpeciesID, &b.Name); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Service) Colors(ctx context.Context) ([]Color, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, COALESCE(hex, '') FROM colors ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Color
	for rows.Next() {
		var c Color
		if err := rows.Scan(&c.ID, &c.Name, &c.Hex); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Service) Sexes(ctx context.Context) ([]Sex, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name FROM sexes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sex
	for rows.Next() {
		var sx Sex
		if err := rows.Scan(&sx.ID, &sx.Name); err != nil {
			return nil, err
		}
		out = append(out, sx)
	}
	return out, rows.Err()
}
