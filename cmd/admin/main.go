package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bookverse/bookverse/pkg/config"
	"github.com/bookverse/bookverse/pkg/database"
	"github.com/bookverse/bookverse/pkg/kvstore"
	"github.com/bookverse/bookverse/pkg/library"
	"github.com/bookverse/bookverse/pkg/migrations"
	"github.com/bookverse/bookverse/pkg/query"
	"github.com/bookverse/bookverse/pkg/settings"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	app := &cli.App{
		Name:        "admin",
		Usage:       "manage a bookverse installation",
		Description: "Runs migrations and inspects the stored library and settings without starting the server.",
		Commands: []*cli.Command{
			migrationsCommand(db),
			libraryCommand(cfg, db),
			settingsCommand(cfg, db),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

func migrationsCommand(db *bun.DB) *cli.Command {
	return &cli.Command{
		Name:  "migrations",
		Usage: "interact with database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					migrator := migrate.NewMigrator(db, migrations.Migrations)
					return migrator.Init(c.Context)
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					group, err := migrations.BringUpToDate(c.Context, db)
					if err != nil {
						return err
					}

					if group.ID == 0 {
						fmt.Printf("There are no new migrations to run\n")
						return nil
					}

					fmt.Printf("Migrated to %s\n", group)
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					migrator := migrate.NewMigrator(db, migrations.Migrations)

					group, err := migrator.Rollback(c.Context)
					if err != nil {
						return err
					}

					if group.ID == 0 {
						fmt.Printf("There are no groups to roll back\n")
						return nil
					}

					fmt.Printf("Rolled back %s\n", group)
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "create Go migration",
				Action: func(c *cli.Context) error {
					migrator := migrate.NewMigrator(db, migrations.Migrations)

					name := strings.Join(c.Args().Slice(), "_")
					mf, err := migrator.CreateGoMigration(
						c.Context,
						name,
						migrate.WithGoTemplate(migrationTemplate),
					)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration %s (%s)\n", mf.Name, mf.Path)

					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					migrator := migrate.NewMigrator(db, migrations.Migrations)

					ms, err := migrator.MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Printf("Migrations: %s\n", ms)
					fmt.Printf("Unapplied migrations: %s\n", ms.Unapplied())
					fmt.Printf("Last migration group: %s\n", ms.LastGroup())

					return nil
				},
			},
		},
	}
}

func libraryCommand(cfg *config.Config, db *bun.DB) *cli.Command {
	load := func(ctx context.Context) (*library.Store, error) {
		kv, err := kvstore.Open(cfg, db)
		if err != nil {
			return nil, err
		}
		store := library.NewStore(kv)
		if _, err := store.Load(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}

	return &cli.Command{
		Name:  "library",
		Usage: "inspect the stored collection",
		Subcommands: []*cli.Command{
			{
				Name:  "export",
				Usage: "print the collection as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "only items with this status", Value: query.FilterAll},
					&cli.StringFlag{Name: "sort", Usage: "sort key and direction, like title-asc", Value: query.DefaultSort.String()},
				},
				Action: func(c *cli.Context) error {
					store, err := load(c.Context)
					if err != nil {
						return err
					}
					sort, err := query.ParseSort(c.String("sort"))
					if err != nil {
						return err
					}
					items := query.Apply(store.List(), query.Options{
						Status: c.String("status"),
						Sort:   sort,
					})
					return printJSON(items)
				},
			},
			{
				Name:  "stats",
				Usage: "print collection totals",
				Action: func(c *cli.Context) error {
					store, err := load(c.Context)
					if err != nil {
						return err
					}
					return printJSON(query.Summarize(store.List()))
				},
			},
		},
	}
}

func settingsCommand(cfg *config.Config, db *bun.DB) *cli.Command {
	load := func(ctx context.Context) (*settings.Gate, error) {
		kv, err := kvstore.Open(cfg, db)
		if err != nil {
			return nil, err
		}
		gate := settings.NewGate(kv, settings.Defaults{
			APIKey:            cfg.TMDBAPIKey,
			CapabilityEnabled: cfg.TMDBEnabled,
		})
		if err := gate.Load(ctx); err != nil {
			return nil, err
		}
		return gate, nil
	}

	show := func(s settings.Settings) {
		fmt.Printf("TMDb enabled: %t\n", s.CapabilityEnabled)
		fmt.Printf("TMDb API key: %s (%s)\n", s.MaskedAPIKey(), s.APIKeySource)
	}

	return &cli.Command{
		Name:  "settings",
		Usage: "view or change the TMDb settings",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print the current settings",
				Action: func(c *cli.Context) error {
					gate, err := load(c.Context)
					if err != nil {
						return err
					}
					show(gate.Current())
					return nil
				},
			},
			{
				Name:      "capability",
				Usage:     "turn movie and K-Drama search on or off",
				ArgsUsage: "on|off",
				Action: func(c *cli.Context) error {
					var enabled bool
					switch c.Args().First() {
					case "on":
						enabled = true
					case "off":
					default:
						return errors.New("expected on or off")
					}
					gate, err := load(c.Context)
					if err != nil {
						return err
					}
					s, err := gate.SetCapability(c.Context, enabled)
					if err != nil {
						return err
					}
					show(s)
					return nil
				},
			},
			{
				Name:      "api-key",
				Usage:     "save a TMDb API key; an empty key reverts to the environment's",
				ArgsUsage: "[key]",
				Action: func(c *cli.Context) error {
					gate, err := load(c.Context)
					if err != nil {
						return err
					}
					s, err := gate.SetAPIKey(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					show(s)
					return nil
				},
			},
		},
	}
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	fmt.Println(string(out))
	return nil
}

const migrationTemplate = `package %s

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("")
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
`
