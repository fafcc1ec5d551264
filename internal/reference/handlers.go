package reference

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes exposes the lookup tables. A failing select degrades to
// an empty list so pickers in the client still render.
func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/statuses", func(c *fiber.Ctx) error {
		items, err := svc.Statuses(c.Context())
		if err != nil {
			log.Printf("reference: statuses: %v", err)
			items = nil
		}
		if items == nil {
			items = []Status{}
		}
		return c.JSON(items)
	})

	r.Get("/species", func(c *fiber.Ctx) error {
		items, err := svc.Species(c.Context())
		if err != nil {
			log.Printf("reference: species: %v", err)
			items = nil
		}
		if items == nil {
			items = []Species{}
		}
		return c.JSON(items)
	})

	r.Get("/breeds", func(c *fiber.Ctx) error {
		if raw := c.Query("species_id"); raw != "" {
			speciesID, err := strconv.Atoi(raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "species_id must be an integer")
			}
			items, err := svc.Breeds(c.Context(), speciesID)
			if err != nil {
				log.Printf("reference: breeds: %v", err)
				items = nil
			}
			if items == nil {
				items = []Breed{}
			}
			return c.JSON(items)
		}

		grouped, err := svc.BreedsBySpecies(c.Context())
		if err != nil {
			log.Printf("reference: breeds: %v", err)
			grouped = map[int][]Breed{}
		}
		return c.JSON(grouped)
	})

	r.Get("/colors", func(c *fiber.Ctx) error {
		items, err := svc.Colors(c.Context())
		if err != nil {
			log.Printf("reference: colors: %v", err)
			items = nil
		}
		if items == nil {
			items = []Color{}
		}
		return c.JSON(items)
	})

	r.Get("/sexes", func(c *fiber.Ctx) error {
		items, err := svc.Sexes(c.Context())
		if err != nil {
			log.Printf("reference: sexes: %v", err)
			items = nil
		}
		if items == nil {
			items = []Sex{}
		}
		return c.JSON(items)
	})
}
