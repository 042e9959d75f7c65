package api

import (
	"github.com/fahrplan-app/fahrplan/pkg/api/routes"
	"github.com/fahrplan-app/fahrplan/pkg/localstore"
	"github.com/fahrplan-app/fahrplan/pkg/otp"
	"github.com/fahrplan-app/fahrplan/pkg/planner"
	"github.com/fahrplan-app/fahrplan/pkg/util"
	"github.com/gofiber/fiber/v2"
)

func SetupServer(listen string, store localstore.Store, resultCache *planner.ResultCache) error {
	endpoint := util.GetEnvironmentVariable("FAHRPLAN_OTP_ENDPOINT", "http://localhost:8080")

	client := otp.NewClient(endpoint)
	normalizer := planner.NewNormalizer(
		util.GetEnvironmentVariable("FAHRPLAN_LOCALE", "en"),
		util.Timezone(util.GetEnvironmentVariable("FAHRPLAN_TIMEZONE", "")),
	)

	history := localstore.NewSearchHistory(store)
	favourites := localstore.NewFavourites(store)

	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.PlanRouter(group.Group("/plan"), client, normalizer, resultCache, history)
	routes.HistoryRouter(group.Group("/history"), history)
	routes.FavouritesRouter(group.Group("/favourites"), favourites)

	return webApp.Listen(listen)
}
