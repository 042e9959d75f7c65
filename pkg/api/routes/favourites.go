package routes

import (
	"strconv"

	"github.com/fahrplan-app/fahrplan/pkg/localstore"
	"github.com/gofiber/fiber/v2"
)

func FavouritesRouter(router fiber.Router, favourites *localstore.Favourites) {
	router.Get("/", getFavourites(favourites))
	router.Post("/", addFavourite(favourites))
	router.Delete("/:id", removeFavourite(favourites))
}

func getFavourites(favourites *localstore.Favourites) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(favourites.Routes())
	}
}

type favouriteRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

func addFavourite(favourites *localstore.Favourites) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var request favouriteRequest
		if err := c.BodyParser(&request); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Body must contain origin and destination",
			})
		}

		if request.Origin == "" || request.Destination == "" {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Body must contain origin and destination",
			})
		}

		route, err := favourites.Add(request.Origin, request.Destination)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		c.SendStatus(fiber.StatusCreated)
		return c.JSON(route)
	}
}

func removeFavourite(favourites *localstore.Favourites) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Parameter id should be an integer",
			})
		}

		if err := favourites.Remove(id); err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
