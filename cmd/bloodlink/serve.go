package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloodlink/internal/connectivity"
	"bloodlink/internal/db"
	"bloodlink/internal/seed"
	"bloodlink/internal/server"
	"bloodlink/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Start the HTTP server",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "seed-memory",
			Usage: "Load the built-in demo donors into the in-memory store",
		},
	},
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(config)
	if err != nil {
		return err
	}

	monitor := connectivity.NewMonitor(logger)

	var (
		durableDonors   store.DonorStore
		durableRequests store.RequestStore
	)

	if config.DurableStorageEnabled() {
		pool, err := db.Connect(ctx, config, monitor)
		if err != nil {
			return err
		}
		defer pool.Close()

		durableDonors = store.NewDonorRepository(pool)
		durableRequests = store.NewBloodRequestRepository(pool)

		if config.HealthCheckIntervalSec > 0 {
			interval := time.Duration(config.HealthCheckIntervalSec) * time.Second
			go db.Watch(ctx, pool, monitor, interval, logger)
		}
	} else {
		logger.Warn("DATABASE_URL not set, serving from memory only")
	}

	memoryDonors := store.NewMemoryDonorStore()

	if cCtx.Bool("seed-memory") {
		donors, err := seed.LoadDonors("")
		if err != nil {
			return err
		}
		added, err := seed.SeedDonors(ctx, memoryDonors, donors, logger)
		if err != nil {
			return fmt.Errorf("seed memory store: %w", err)
		}
		logger.WithField("count", added).Info("memory store seeded")
	}

	donors := store.NewFallbackDonorStore(durableDonors, memoryDonors, monitor, logger)
	requests := store.NewFallbackRequestStore(durableRequests, store.NewMemoryRequestStore(), monitor, logger)

	srv, err := server.New(config, logger, donors, requests, monitor)
	if err != nil {
		return err
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":         config.ServerPort,
			"storage_mode": monitor.StorageMode(),
		}).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
