package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	file := flag.String("file", "configs/catalog.yaml", "path to catalog yaml")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg)

	c, err := catalog.Load(*file)
	if err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	res, err := catalog.Apply(ctx, db, c)
	if err != nil {
		return err
	}

	logger.Info().
		Int("services_created", res.ServicesCreated).
		Int("services_updated", res.ServicesUpdated).
		Int("stylists_created", res.StylistsCreated).
		Int("stylists_updated", res.StylistsUpdated).
		Int("working_hours", res.WorkingHours).
		Str("file", *file).
		Msg("catalog applied")
	return nil
}
