package api

import (
	"github.com/fahrplan-app/fahrplan/pkg/localstore"
	"github.com/fahrplan-app/fahrplan/pkg/planner"
	"github.com/fahrplan-app/fahrplan/pkg/redis_client"
	"github.com/fahrplan-app/fahrplan/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8081",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					env := util.GetEnvironmentVariables()

					var store localstore.Store
					resultCache := &planner.ResultCache{}

					if env["FAHRPLAN_STATE_BACKEND"] == "memory" {
						store = localstore.NewMemoryStore()
					} else {
						if err := redis_client.Connect(); err != nil {
							return err
						}

						store = localstore.NewRedisStore(redis_client.Client)
						resultCache.Setup()
					}

					return SetupServer(c.String("listen"), store, resultCache)
				},
			},
		},
	}
}
