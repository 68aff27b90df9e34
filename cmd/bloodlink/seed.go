package main

import (
	"context"
	"fmt"

	"bloodlink/internal/db"
	"bloodlink/internal/seed"
	"bloodlink/internal/store"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with donors",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "YAML donor file, defaults to the built-in demo set",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the parsed donors without touching the database",
		},
	},
	Action: func(c *cli.Context) error {
		donors, err := seed.LoadDonors(c.String("file"))
		if err != nil {
			return err
		}

		if c.Bool("dry-run") {
			pp.Println(donors)
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := requireDatabase(cfg); err != nil {
			return err
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg, nil)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		added, err := seed.SeedDonors(ctx, store.NewDonorRepository(pool), donors, logrus.StandardLogger())
		if err != nil {
			return fmt.Errorf("failed to seed donors: %w", err)
		}

		logrus.WithFields(logrus.Fields{"added": added, "total": len(donors)}).Info("Donors seeded")
		return nil
	},
}
