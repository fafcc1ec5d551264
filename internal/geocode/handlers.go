package geocode

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, client *Client) {
	r.Get("/suggest", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit"))
		return c.JSON(client.Suggest(c.Context(), c.Query("q"), limit))
	})
}
