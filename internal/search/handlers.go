package search

import (
	"strconv"
	"strings"

	"github.com/dietaube007/Projektarbeit-2026-sub001/internal/post"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes wires the search endpoint. The middleware is expected to be
// the optional JWT variant: favorites are marked when a user is present.
func RegisterRoutes(r fiber.Router, svc *Service, optionalAuth fiber.Handler) {
	r.Get("/", optionalAuth, func(c *fiber.Ctx) error {
		params := ParamsFromQuery(c)
		userID, _ := c.Locals("user_id").(string)

		items, err := svc.Search(c.Context(), params, userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if items == nil {
			items = []post.Post{}
		}
		return c.JSON(items)
	})
}

// ParamsFromQuery reads filter state from query parameters. Every value is
// optional; malformed values fall back to "no filter".
func ParamsFromQuery(c *fiber.Ctx) Params {
	params := Params{
		Query:     c.Query("q"),
		StatusID:  ParseSelection(c.Query("status")),
		SpeciesID: ParseSelection(c.Query("species")),
		BreedID:   ParseSelection(c.Query("breed")),
		SexID:     ParseSelection(c.Query("sex")),
		Location:  c.Query("location"),
		Sort:      c.Query("sort", SortCreatedDesc),
	}

	for _, raw := range strings.Split(c.Query("colors"), ",") {
		if id, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && id > 0 {
			params.Colors = append(params.Colors, id)
		}
	}

	if lat, err := strconv.ParseFloat(c.Query("lat"), 64); err == nil {
		if lon, err := strconv.ParseFloat(c.Query("lon"), 64); err == nil {
			params.CenterLat = &lat
			params.CenterLon = &lon
		}
	}
	if radius, err := strconv.ParseFloat(c.Query("radius_km"), 64); err == nil && radius > 0 {
		params.RadiusKm = radius
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		params.Limit = limit
	}
	return params
}
