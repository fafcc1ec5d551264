package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const mapboxResponse = `{
	"features": [
		{"place_name": "90762 Fürth, Bayern, Deutschland", "center": [10.9886, 49.4771]},
		{"place_name": "Fürth, Odenwald, Hessen, Deutschland", "center": [8.7833, 49.65]}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, cache *redis.Client) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-token", "de", "de", cache)
	c.baseURL = srv.URL
	return c
}

func TestSuggest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "test-token" {
			t.Errorf("missing token")
		}
		if r.URL.Query().Get("country") != "de" {
			t.Errorf("country = %q", r.URL.Query().Get("country"))
		}
		w.Write([]byte(mapboxResponse))
	}, nil)

	got := c.Suggest(context.Background(), "Fürth", 5)
	if len(got) != 2 {
		t.Fatalf("got %d suggestions", len(got))
	}
	if got[0].Lat != 49.4771 || got[0].Lon != 10.9886 {
		t.Fatalf("coordinates swapped: %+v", got[0])
	}
}

func TestSuggestNeverFails(t *testing.T) {
	ctx := context.Background()

	// missing token
	c := NewClient("", "de", "de", nil)
	if got := c.Suggest(ctx, "Fürth", 5); len(got) != 0 {
		t.Fatalf("expected empty for missing token")
	}

	// blank query
	c = NewClient("t", "de", "de", nil)
	if got := c.Suggest(ctx, "   ", 5); len(got) != 0 {
		t.Fatalf("expected empty for blank query")
	}

	// upstream 500
	c = newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, nil)
	if got := c.Suggest(ctx, "Fürth", 5); len(got) != 0 {
		t.Fatalf("expected empty for upstream error")
	}

	// garbage JSON
	c = newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>nope</html>"))
	}, nil)
	if got := c.Suggest(ctx, "Fürth", 5); len(got) != 0 {
		t.Fatalf("expected empty for bad JSON")
	}
}

func TestSuggestLimitClamp(t *testing.T) {
	var gotLimit string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"features":[]}`))
	}, nil)

	c.Suggest(context.Background(), "Fürth", 99)
	if gotLimit != "10" {
		t.Fatalf("limit = %q, want 10", gotLimit)
	}

	c.Suggest(context.Background(), "Nürnberg", 0)
	if gotLimit != "5" {
		t.Fatalf("default limit = %q, want 5", gotLimit)
	}
}

func TestSuggestUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Write([]byte(mapboxResponse))
	}, cache)

	ctx := context.Background()
	first := c.Suggest(ctx, "Fürth", 5)
	second := c.Suggest(ctx, "fürth", 5)

	if calls.Load() != 1 {
		t.Fatalf("upstream called %d times, want 1", calls.Load())
	}
	if len(first) != len(second) || first[0] != second[0] {
		t.Fatalf("cache returned different data")
	}
}

func TestSuggestSurvivesDeadRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(mapboxResponse))
	}, cache)

	got := c.Suggest(context.Background(), "Fürth", 5)
	if len(got) != 2 {
		t.Fatalf("dead redis broke geocoding: %d", len(got))
	}
}
