package routes

import (
	"github.com/fahrplan-app/fahrplan/pkg/localstore"
	"github.com/gofiber/fiber/v2"
)

func HistoryRouter(router fiber.Router, history *localstore.SearchHistory) {
	router.Get("/", getHistory(history))
	router.Delete("/", clearHistory(history))
}

func getHistory(history *localstore.SearchHistory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(history.Entries())
	}
}

func clearHistory(history *localstore.SearchHistory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := history.Clear(); err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
