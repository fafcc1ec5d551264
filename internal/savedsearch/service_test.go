package savedsearch

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/search"

	"github.com/pashagolub/pgxmock/v3"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(func() { mock.Close() })
	return mock
}

func TestPayloadRoundTripPreservesSentinel(t *testing.T) {
	p := Payload{
		SearchQuery: "kater",
		SpeciesID:   search.SelectID(2),
		BreedID:     search.SelectNone(),
		Colors:      []int{1, 3},
	}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	// Unset fields stay out of the stored document entirely.
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal doc: %v", err)
	}
	if _, ok := doc["status_id"]; ok {
		t.Fatalf("unset status_id was stored: %s", raw)
	}
	if _, ok := doc["sex_id"]; ok {
		t.Fatalf("unset sex_id was stored: %s", raw)
	}
	if string(doc["breed_id"]) != `"keine_angabe"` {
		t.Fatalf("breed_id = %s, want \"keine_angabe\"", doc["breed_id"])
	}

	var back Payload
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.BreedID.IsNone() {
		t.Fatalf("sentinel decayed: %+v", back.BreedID)
	}
	if !back.StatusID.IsUnset() {
		t.Fatalf("absent field not unset: %+v", back.StatusID)
	}
	if id, ok := back.SpeciesID.ID(); !ok || id != 2 {
		t.Fatalf("species lost: %+v", back.SpeciesID)
	}
}

func TestReplay(t *testing.T) {
	p := Payload{
		SearchQuery: "hund",
		StatusID:    search.SelectID(1),
		SexID:       search.SelectNone(),
		Colors:      []int{2},
	}

	params := p.Replay()
	if params.Query != "hund" {
		t.Fatalf("query = %q", params.Query)
	}
	if id, ok := params.StatusID.ID(); !ok || id != 1 {
		t.Fatalf("status lost")
	}
	if !params.SexID.IsNone() {
		t.Fatalf("sex sentinel lost")
	}
	if len(params.Colors) != 1 || params.Colors[0] != 2 {
		t.Fatalf("colors lost")
	}
}

func TestSaveValidation(t *testing.T) {
	svc := NewService(nil, nil)

	if _, err := svc.Save(context.Background(), "u1", SaveRequest{Name: "  "}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := svc.Save(context.Background(), "u1", SaveRequest{Name: strings.Repeat("x", MaxNameLength+1)}); err == nil {
		t.Fatalf("expected error for long name")
	}
}

func TestSaveLimit(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(MaxSearchesPerUser))

	svc := NewService(mock, nil)
	_, err := svc.Save(context.Background(), "u1", SaveRequest{Name: "Dackel in Fürth"})
	if err == nil {
		t.Fatalf("expected limit error")
	}
}

func TestSaveDuplicateName(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("u1", "Dackel in Fürth").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	svc := NewService(mock, nil)
	_, err := svc.Save(context.Background(), "u1", SaveRequest{Name: "Dackel in Fürth"})
	if err == nil {
		t.Fatalf("expected duplicate error")
	}
}

func TestSaveAndGet(t *testing.T) {
	mock := newMock(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT COUNT`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("u1", "Dackel").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO saved_searches`).
		WithArgs(pgxmock.AnyArg(), "u1", "Dackel", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	svc := NewService(mock, nil)
	saved, err := svc.Save(context.Background(), "u1", SaveRequest{
		Name:    " Dackel ",
		Filters: Payload{SpeciesID: search.SelectID(1)},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Name != "Dackel" {
		t.Fatalf("name not trimmed: %q", saved.Name)
	}

	filters, _ := json.Marshal(saved.Filters)
	mock.ExpectQuery(`SELECT id, user_id, name, filters, created_at`).
		WithArgs(saved.ID, "u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "filters", "created_at"}).
			AddRow(saved.ID, "u1", "Dackel", filters, now))

	got, err := svc.Get(context.Background(), "u1", saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if id, ok := got.Filters.SpeciesID.ID(); !ok || id != 1 {
		t.Fatalf("filters lost on round trip: %+v", got.Filters)
	}
}

func TestDeleteMissingIsSuccess(t *testing.T) {
	mock := newMock(t)

	mock.ExpectExec(`DELETE FROM saved_searches`).
		WithArgs("nope", "u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	svc := NewService(mock, nil)
	if err := svc.Delete(context.Background(), "u1", "nope"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
