package recognition

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, runner *Runner) {
	r.Post("/", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		var req SubmitRequest
		if err := c.BodyParser(&req); err != nil || req.ImageURL == "" {
			return fiber.NewError(fiber.StatusBadRequest, "image_url required")
		}
		job, err := runner.Submit(userID, req.ImageURL)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusAccepted).JSON(job)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		job, err := runner.Get(c.Params("id"), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(job)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if err := runner.Cancel(c.Params("id"), userID); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
