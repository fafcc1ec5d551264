// Package search implements the post filter/sort/annotate pipeline. All
// stages are pure functions over an in-memory snapshot; bad records lower
// precision but never fail the whole call.
package search

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/post"
	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/shared/geo"
)

const (
	// MaxQueryLength caps free-text queries before matching.
	MaxQueryLength = 200

	// MissingDistanceKm marks posts without usable coordinates when
	// distance is annotated rather than filtered.
	MissingDistanceKm = 9999
)

// NormalizeQuery collapses whitespace runs, trims, lowercases and caps the
// query length.
func NormalizeQuery(q string) string {
	q = strings.Join(strings.Fields(q), " ")
	runes := []rune(q)
	if len(runes) > MaxQueryLength {
		q = string(runes[:MaxQueryLength])
	}
	return strings.ToLower(q)
}

// FilterBySearch keeps posts whose headline, description or location text
// contains the normalized query. A blank query is the identity.
func FilterBySearch(items []post.Post, query string) []post.Post {
	q := NormalizeQuery(query)
	if q == "" {
		return items
	}

	out := make([]post.Post, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Headline), q) ||
			strings.Contains(strings.ToLower(it.Description), q) ||
			strings.Contains(strings.ToLower(it.LocationText), q) {
			out = append(out, it)
		}
	}
	return out
}

// ExtractCityName pulls the city out of a geocoder result line such as
// "90762 Fürth, Bayern, Deutschland": first comma segment, numeric words
// (postal codes) dropped, lowercased.
func ExtractCityName(location string) string {
	segment, _, _ := strings.Cut(location, ",")
	var words []string
	for _, w := range strings.Fields(segment) {
		if isNumeric(w) {
			continue
		}
		words = append(words, w)
	}
	return strings.ToLower(strings.Join(words, " "))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// FilterByCity keeps posts whose location text contains the extracted city
// as whole words. An unextractable city is the identity: a location the
// geocoder phrased oddly must not hide every post.
func FilterByCity(items []post.Post, location string) []post.Post {
	city := ExtractCityName(location)
	if city == "" {
		return items
	}
	cityWords := splitWords(city)
	if len(cityWords) == 0 {
		return items
	}

	out := make([]post.Post, 0, len(items))
	for _, it := range items {
		if containsWordSequence(splitWords(strings.ToLower(it.LocationText)), cityWords) {
			out = append(out, it)
		}
	}
	return out
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsWordSequence reports whether needle occurs as consecutive whole
// words inside haystack. Word-level matching keeps a city name from hitting
// inside a longer street name.
func containsWordSequence(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// FilterByColors keeps posts carrying every selected color (AND semantics).
// An empty selection is the identity.
func FilterByColors(items []post.Post, selectedColorIDs []int) []post.Post {
	if len(selectedColorIDs) == 0 {
		return items
	}

	out := make([]post.Post, 0, len(items))
	for _, it := range items {
		have := make(map[int]bool, len(it.ColorIDs))
		for _, id := range it.ColorIDs {
			have[id] = true
		}
		all := true
		for _, want := range selectedColorIDs {
			if !have[want] {
				all = false
				break
			}
		}
		if all {
			out = append(out, it)
		}
	}
	return out
}

// FilterByRadius keeps posts with coordinates within radiusKm of the center
// and annotates their distance. Posts without coordinates are excluded here;
// use EnrichWithDistance when distance is informational only.
func FilterByRadius(items []post.Post, centerLat, centerLon, radiusKm float64) []post.Post {
	out := make([]post.Post, 0, len(items))
	for _, it := range items {
		if it.Lat == nil || it.Lon == nil {
			continue
		}
		d := roundKm(geo.HaversineKm(centerLat, centerLon, *it.Lat, *it.Lon))
		if d > radiusKm {
			continue
		}
		dist := d
		it.DistanceKm = &dist
		out = append(out, it)
	}
	return out
}

// EnrichWithDistance annotates every post with its distance from the center,
// using the sentinel for posts without coordinates. The list length never
// changes.
func EnrichWithDistance(items []post.Post, centerLat, centerLon float64) []post.Post {
	out := make([]post.Post, len(items))
	for i, it := range items {
		dist := float64(MissingDistanceKm)
		if it.Lat != nil && it.Lon != nil {
			dist = roundKm(geo.HaversineKm(centerLat, centerLon, *it.Lat, *it.Lon))
		}
		it.DistanceKm = &dist
		out[i] = it
	}
	return out
}

func roundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// SortByDistance orders annotated posts nearest first; posts without an
// annotation (or with the sentinel) end up last.
func SortByDistance(items []post.Post) []post.Post {
	out := make([]post.Post, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return annotatedKm(out[i]) < annotatedKm(out[j])
	})
	return out
}

func annotatedKm(p post.Post) float64 {
	if p.DistanceKm == nil {
		return MissingDistanceKm
	}
	return *p.DistanceKm
}

// SortByEventDate orders posts chronologically by event date. Posts with a
// parseable date always precede posts without one, in both directions.
func SortByEventDate(items []post.Post, desc bool) []post.Post {
	type keyed struct {
		p       post.Post
		t       time.Time
		hasDate bool
	}
	keys := make([]keyed, len(items))
	for i, it := range items {
		t, ok := parseEventDate(it.EventDate)
		keys[i] = keyed{p: it, t: t, hasDate: ok}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.hasDate != b.hasDate {
			return a.hasDate
		}
		if !a.hasDate {
			return false
		}
		if desc {
			return a.t.After(b.t)
		}
		return a.t.Before(b.t)
	})

	out := make([]post.Post, len(keys))
	for i, k := range keys {
		out[i] = k.p
	}
	return out
}

var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseEventDate(raw *string) (time.Time, bool) {
	if raw == nil || *raw == "" {
		return time.Time{}, false
	}
	s := strings.TrimSpace(*raw)
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
		if t, err := time.Parse("2006-01-02T15:04:05-07:00", s); err == nil {
			return t, true
		}
		s = strings.TrimSuffix(s, "+00:00") + "Z"
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MarkFavorites sets IsFavorite on every post from the given id set. The
// flag is always written, true or false, so rendering can rely on it.
func MarkFavorites(items []post.Post, favoriteIDs map[string]bool) []post.Post {
	out := make([]post.Post, len(items))
	for i, it := range items {
		it.IsFavorite = favoriteIDs[it.ID]
		out[i] = it
	}
	return out
}
