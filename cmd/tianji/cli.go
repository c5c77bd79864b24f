package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"tianji/internal/celestial"
	"tianji/internal/config"
	"tianji/internal/errors"
	"tianji/internal/ops"
	"tianji/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "tianji",
		Usage:   "Four Pillars divination and cultivation ledger",
		Version: Version,
		Commands: []*cli.Command{
			divineCmd(db),
			fetchCmd(db),
			listCmd(db),
			deleteCmd(db),
			nowCmd(db, cfg),
			moonCmd(),
			wisdomCmd(db),
			cultivateCmd(db, cfg),
			almanacCmd(db, cfg),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// divineCmd creates the divine command.
func divineCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "divine",
		Usage: "Compute a Four Pillars chart from a birth date and hour",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "year", Aliases: []string{"y"}, Required: true, Usage: "Birth year"},
			&cli.IntFlag{Name: "month", Required: true, Usage: "Birth month (1-12)"},
			&cli.IntFlag{Name: "day", Aliases: []string{"d"}, Required: true, Usage: "Birth day"},
			&cli.IntFlag{Name: "hour", Required: true, Usage: "Birth hour (0-23)"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Chart name (optional)"},
			&cli.BoolFlag{Name: "advanced", Usage: "Include hidden-stem weights in the tally"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Name collision mode: error|replace"},
			&cli.BoolFlag{Name: "no-persist", Usage: "Compute only, skip storing the chart"},
		},
		Action: func(c *cli.Context) error {
			input := ops.DivineInput{
				Year:     c.Int("year"),
				Month:    c.Int("month"),
				Day:      c.Int("day"),
				Hour:     c.Int("hour"),
				Advanced: c.Bool("advanced"),
				Mode:     ops.DivineMode(c.String("mode")),
			}

			if name := c.String("name"); name != "" {
				input.Name = &name
			}
			if c.Bool("no-persist") {
				persist := false
				input.Persist = &persist
			}

			output, err := ops.Divine(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a stored chart by ID or name",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Chart name"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted charts"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FetchInput{
				IncludeDeleted: c.Bool("include-deleted"),
			}

			// Check for positional ID argument
			if c.NArg() > 0 {
				input.ID = c.Args().First()
			} else {
				input.Name = c.String("name")
			}

			output, err := ops.Fetch(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored charts",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted charts"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ListInput{
				Limit:          c.Int("limit"),
				Offset:         c.Int("offset"),
				IncludeDeleted: c.Bool("include-deleted"),
			}

			output, err := ops.List(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete a chart",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Chart name"},
		},
		Action: func(c *cli.Context) error {
			input := ops.DeleteInput{}

			// Check for positional ID argument
			if c.NArg() > 0 {
				input.ID = c.Args().First()
			} else {
				input.Name = c.String("name")
			}

			output, err := ops.Delete(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// nowCmd creates the now command.
func nowCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "now",
		Usage:     "Show the current celestial snapshot and cultivation bonus",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Chart name (uses the chart's primary element)"},
			&cli.StringFlag{Name: "element", Aliases: []string{"e"}, Usage: "Element for bonus matching: 金|木|水|火|土"},
			&cli.StringFlag{Name: "weather", Aliases: []string{"w"}, Usage: "Weather condition override, e.g. 晴, 雷暴"},
			&cli.IntFlag{Name: "temperature", Aliases: []string{"t"}, Usage: "Temperature override in °C"},
		},
		Action: func(c *cli.Context) error {
			input := ops.SnapshotInput{
				Name:    c.String("name"),
				Element: c.String("element"),
				Weather: weatherFlags(c),
			}

			if c.NArg() > 0 {
				input.ID = c.Args().First()
			}

			output, err := ops.Snapshot(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// moonCmd creates the moon command.
func moonCmd() *cli.Command {
	return &cli.Command{
		Name:  "moon",
		Usage: "Show the current lunar phase",
		Action: func(_ *cli.Context) error {
			return outputJSON(celestial.MoonPhaseAt(time.Now()))
		},
	}
}

// wisdomCmd creates the wisdom command.
func wisdomCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "wisdom",
		Usage:     "Show the quote of the day, or a random one",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Chart name (narrows the pool to matching elements)"},
			&cli.StringFlag{Name: "element", Aliases: []string{"e"}, Usage: "Element filter: 金|木|水|火|土"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category filter: philosophy|cultivation|universe|mind|nature"},
			&cli.BoolFlag{Name: "random", Aliases: []string{"r"}, Usage: "Random pick instead of the daily quote"},
			&cli.Int64Flag{Name: "seed", Usage: "Seed for reproducible random picks"},
		},
		Action: func(c *cli.Context) error {
			input := ops.WisdomInput{
				Name:     c.String("name"),
				Element:  c.String("element"),
				Category: c.String("category"),
				Random:   c.Bool("random"),
			}

			if c.NArg() > 0 {
				input.ID = c.Args().First()
			}
			if c.IsSet("seed") {
				seed := c.Int64("seed")
				input.Seed = &seed
			}

			output, err := ops.Wisdom(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// cultivateCmd creates the cultivate command with its subcommands.
func cultivateCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "cultivate",
		Usage: "Track cultivation sessions and realm progression",
		Subcommands: []*cli.Command{
			{
				Name:      "start",
				Usage:     "Open a cultivation session for a chart",
				ArgsUsage: "[id]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Chart name"},
				},
				Action: func(c *cli.Context) error {
					input := ops.CultivateStartInput{Name: c.String("name")}
					if c.NArg() > 0 {
						input.ID = c.Args().First()
					}

					output, err := ops.CultivateStart(c.Context, db, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "end",
				Usage:     "Close the open session and credit experience",
				ArgsUsage: "[id]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Chart name"},
					&cli.StringFlag{Name: "weather", Aliases: []string{"w"}, Usage: "Weather condition override"},
					&cli.IntFlag{Name: "temperature", Aliases: []string{"t"}, Usage: "Temperature override in °C"},
				},
				Action: func(c *cli.Context) error {
					input := ops.CultivateEndInput{
						Name:    c.String("name"),
						Weather: weatherFlags(c),
					}
					if c.NArg() > 0 {
						input.ID = c.Args().First()
					}

					output, err := ops.CultivateEnd(c.Context, db, cfg, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "status",
				Usage:     "Show realm, experience, and recent sessions",
				ArgsUsage: "[id]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Chart name"},
					&cli.IntFlag{Name: "sessions", Value: 10, Usage: "Recent sessions to include"},
				},
				Action: func(c *cli.Context) error {
					input := ops.CultivateStatusInput{
						Name:         c.String("name"),
						SessionLimit: c.Int("sessions"),
					}
					if c.NArg() > 0 {
						input.ID = c.Args().First()
					}

					output, err := ops.CultivateStatus(db, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// almanacCmd creates the almanac command.
func almanacCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "almanac",
		Usage:     "Render today's almanac page as markdown",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Chart name"},
			&cli.StringFlag{Name: "element", Aliases: []string{"e"}, Usage: "Element override: 金|木|水|火|土"},
			&cli.StringFlag{Name: "weather", Aliases: []string{"w"}, Usage: "Weather condition override"},
			&cli.IntFlag{Name: "temperature", Aliases: []string{"t"}, Usage: "Temperature override in °C"},
			&cli.BoolFlag{Name: "json", Usage: "Emit structured JSON instead of markdown"},
		},
		Action: func(c *cli.Context) error {
			input := ops.AlmanacInput{
				Name:    c.String("name"),
				Element: c.String("element"),
				Weather: weatherFlags(c),
			}

			if c.NArg() > 0 {
				input.ID = c.Args().First()
			}

			output, err := ops.Almanac(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Fprintln(os.Stdout, output.Markdown)
			return nil
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP almanac and chart API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 7245, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
			if err := web.Run(srv); err != nil {
				return outputError(err)
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := err.(*errors.TianjiError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// weatherFlags builds a partial weather reading from the shared
// --weather/--temperature flags, or nil when neither is set.
func weatherFlags(c *cli.Context) *celestial.Reading {
	condition := c.String("weather")
	if condition == "" && !c.IsSet("temperature") {
		return nil
	}
	r := celestial.DefaultReading()
	if condition != "" {
		r.Condition = condition
	}
	if c.IsSet("temperature") {
		r.Temperature = c.Int("temperature")
	}
	return &r
}
