package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fahrplan-app/fahrplan/pkg/localstore"
	"github.com/fahrplan-app/fahrplan/pkg/otp"
	"github.com/fahrplan-app/fahrplan/pkg/redis_client"
	"github.com/fahrplan-app/fahrplan/pkg/trip"
	"github.com/fahrplan-app/fahrplan/pkg/util"
	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "planner",
		Usage: "Query the trip planning service",
		Subcommands: []*cli.Command{
			{
				Name:  "query",
				Usage: "plan a trip between two places",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "origin",
						Usage:    "place to start the trip from",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "destination",
						Usage:    "place to travel to",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "travel date (YYYY-MM-DD), defaults to today",
					},
					&cli.StringFlag{
						Name:  "time",
						Usage: "departure time (HH:MM), defaults to now",
					},
					&cli.StringFlag{
						Name:  "modes",
						Usage: "comma separated transport modes",
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "dump the normalized structures",
					},
				},
				Action: runQuery,
			},
		},
	}
}

func runQuery(c *cli.Context) error {
	endpoint := util.GetEnvironmentVariable("FAHRPLAN_OTP_ENDPOINT", "http://localhost:8080")

	location := util.Timezone(util.GetEnvironmentVariable("FAHRPLAN_TIMEZONE", ""))

	date := time.Now()
	if c.String("date") != "" {
		parsed, err := time.ParseInLocation("2006-01-02", c.String("date"), location)
		if err != nil {
			return err
		}
		date = parsed
	}

	clock := time.Now()
	if c.String("time") != "" {
		parsed, err := time.Parse("15:04", c.String("time"))
		if err != nil {
			return err
		}
		clock = parsed
	}

	modes, err := parseModes(c.String("modes"))
	if err != nil {
		return err
	}

	var store localstore.Store
	if util.GetEnvironmentVariable("FAHRPLAN_STATE_BACKEND", "redis") == "memory" {
		store = localstore.NewMemoryStore()
	} else {
		if err := redis_client.Connect(); err != nil {
			return err
		}
		store = localstore.NewRedisStore(redis_client.Client)
	}

	session := NewSession(
		otp.NewClient(endpoint),
		NewNormalizer(util.GetEnvironmentVariable("FAHRPLAN_LOCALE", "en"), location),
		localstore.NewSearchHistory(store),
	)
	session.SetEndpoints(c.String("origin"), c.String("destination"))

	itineraries, err := session.Submit(context.Background(), date, clock, modes)
	if err != nil {
		return err
	}

	if c.Bool("debug") {
		pretty.Println(itineraries)
		return nil
	}

	if len(itineraries) == 0 {
		fmt.Println("No itineraries found")
		return nil
	}

	for _, itinerary := range itineraries {
		fmt.Printf(
			"%d. %s - %s (%s, %d changes)",
			itinerary.ID,
			itinerary.DepartureTime,
			itinerary.ArrivalTime,
			FormatDuration(itinerary.DurationMinutes),
			itinerary.TransferCount,
		)
		if itinerary.FareDisplay != "" {
			fmt.Printf(" %s", itinerary.FareDisplay)
		}
		fmt.Println()

		for _, leg := range itinerary.Legs {
			label := trip.ModeDetails(leg.Mode).Label
			if leg.RouteLabel != "" {
				label = fmt.Sprintf("%s %s", label, leg.RouteLabel)
			}

			fmt.Printf("     %-24s %s -> %s (%s)\n", label, leg.From, leg.To, FormatDuration(leg.DurationMinutes))
		}
	}

	return nil
}

func parseModes(value string) ([]trip.TransportMode, error) {
	if value == "" {
		return nil, nil
	}

	tokens := util.RemoveDuplicateStrings(strings.Split(value, ","), []string{})

	var modes []trip.TransportMode
	for _, token := range tokens {
		mode, known := trip.ParseTransportMode(strings.TrimSpace(token))
		if !known {
			return nil, fmt.Errorf("unknown transport mode %q", token)
		}

		modes = append(modes, mode)
	}

	return modes, nil
}
