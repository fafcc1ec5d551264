package search

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/post"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func TestSearchHandler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM post`).
		WithArgs(30).
		WillReturnRows(postRows().
			AddRow("p1", "u1", "Schwarzer Hund", "eine Beschreibung", "Berlin",
				nil, nil, nil, 1, 1, nil, nil, true, time.Now()))
	relationRows(mock)

	app := fiber.New()
	posts := post.NewService(mock, nil)
	svc := NewService(mock, posts, nil, nil)
	RegisterRoutes(app.Group("/search"), svc, func(c *fiber.Ctx) error { return c.Next() })

	req := httptest.NewRequest(http.MethodGet, "/search/?q=hund", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("search status: %v %v", err, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var items []post.Post
	if err := json.Unmarshal(body, &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].ID != "p1" {
		t.Fatalf("unexpected payload: %s", body)
	}
}

func TestSearchHandlerEmptyResultIsJSONArray(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`FROM post`).
		WithArgs(30).
		WillReturnRows(postRows())

	app := fiber.New()
	posts := post.NewService(mock, nil)
	svc := NewService(mock, posts, nil, nil)
	RegisterRoutes(app.Group("/search"), svc, func(c *fiber.Ctx) error { return c.Next() })

	req := httptest.NewRequest(http.MethodGet, "/search/", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("search status: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestParamsFromQuery(t *testing.T) {
	app := fiber.New()
	var params Params
	app.Get("/parse", func(c *fiber.Ctx) error {
		params = ParamsFromQuery(c)
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet,
		"/parse?q=katze&status=1&sex=keine_angabe&breed=alle&colors=2,x,5&lat=52.5&lon=13.4&radius_km=7.5&sort=event_date_asc&limit=10", nil)
	if _, err := app.Test(req); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if params.Query != "katze" {
		t.Fatalf("query not parsed")
	}
	if id, ok := params.StatusID.ID(); !ok || id != 1 {
		t.Fatalf("status not parsed")
	}
	if !params.SexID.IsNone() {
		t.Fatalf("sentinel sex value lost")
	}
	if !params.BreedID.IsAny() {
		t.Fatalf("'alle' breed value lost")
	}
	if len(params.Colors) != 2 || params.Colors[0] != 2 || params.Colors[1] != 5 {
		t.Fatalf("colors not parsed: %v", params.Colors)
	}
	if params.CenterLat == nil || *params.CenterLat != 52.5 || params.RadiusKm != 7.5 {
		t.Fatalf("geo params not parsed")
	}
	if params.Sort != SortEventAsc || params.Limit != 10 {
		t.Fatalf("sort/limit not parsed")
	}
}
