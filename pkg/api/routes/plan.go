package routes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fahrplan-app/fahrplan/pkg/localstore"
	"github.com/fahrplan-app/fahrplan/pkg/planner"
	"github.com/fahrplan-app/fahrplan/pkg/trip"
	"github.com/fahrplan-app/fahrplan/pkg/util"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func PlanRouter(router fiber.Router, client planner.PlanClient, normalizer planner.Normalizer, cache *planner.ResultCache, history *localstore.SearchHistory) {
	router.Get("/", getPlan(client, normalizer, cache, history))
}

func getPlan(client planner.PlanClient, normalizer planner.Normalizer, cache *planner.ResultCache, history *localstore.SearchHistory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := time.Now().In(normalizer.Location)
		if dateString := c.Query("date"); dateString != "" {
			parsed, err := time.ParseInLocation("2006-01-02", dateString, normalizer.Location)
			if err != nil {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": "Parameter date should be of the form YYYY-MM-DD",
				})
			}
			date = parsed
		}

		clock := time.Now().In(normalizer.Location)
		if timeString := c.Query("time"); timeString != "" {
			parsed, err := time.Parse("15:04", timeString)
			if err != nil {
				c.SendStatus(fiber.StatusBadRequest)
				return c.JSON(fiber.Map{
					"error": "Parameter time should be of the form HH:MM",
				})
			}
			clock = parsed
		}

		modes, err := parseModesParameter(c.Query("modes"))
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		query, err := trip.BuildQuery(c.Query("origin"), c.Query("destination"), date, clock, modes, normalizer.Locale)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if _, err := history.Record(query.Origin, query.Destination); err != nil {
			log.Warn().Err(err).Msg("Failed to record search history")
		}

		if itineraries, cached := cache.Get(query); cached {
			return c.JSON(itineraries)
		}

		raw, err := client.Plan(c.Context(), query)
		if err != nil {
			c.SendStatus(fiber.StatusBadGateway)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		itineraries := normalizer.Normalize(raw)
		cache.Put(query, itineraries)

		return c.JSON(itineraries)
	}
}

var errUnknownMode = errors.New("unknown transport mode")

func parseModesParameter(value string) ([]trip.TransportMode, error) {
	if value == "" {
		return nil, nil
	}

	tokens := util.RemoveDuplicateStrings(strings.Split(value, ","), []string{})

	var modes []trip.TransportMode
	for _, token := range tokens {
		mode, known := trip.ParseTransportMode(strings.TrimSpace(token))
		if !known {
			return nil, fmt.Errorf("%w %q", errUnknownMode, token)
		}

		modes = append(modes, mode)
	}

	return modes, nil
}
