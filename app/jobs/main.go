package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/campushire/campushire/config"
	"github.com/campushire/campushire/internal/logger"
	pgrepo "github.com/campushire/campushire/internal/repositories/postgres"
	"github.com/campushire/campushire/internal/services"
)

// jobs runs the offline maintenance commands against the same database as
// the API server:
//
//	jobs consolidate   full recompute of the consolidation table
//	jobs backfill      derive activity history from existing records
func main() {
	_ = godotenv.Load()

	log := logger.New()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: jobs <consolidate|backfill>")
		os.Exit(1)
	}
	cmd := os.Args[1]

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	db := config.PostgresDB
	if err := config.MigratePostgres(db); err != nil {
		log.Fatalf("PostgreSQL migration error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	switch cmd {
	case "consolidate":
		interviewRepo := pgrepo.NewInterviewRepo(db)
		consolidationRepo := pgrepo.NewConsolidationRepo(db)
		activityRepo := pgrepo.NewActivityLogRepo(db)
		atomic := os.Getenv("CONSOLIDATION_ATOMIC") == "true"
		svc := services.NewConsolidationService(db, interviewRepo, consolidationRepo, activityRepo, nil, log, atomic)

		count, err := svc.Recompute(ctx)
		if err != nil {
			log.Fatalf("consolidate failed: %v", err)
		}
		log.WithField("upserted", count).Info("consolidate done")

	case "backfill":
		svc := services.NewBackfillService(db, log)

		res, err := svc.Backfill(ctx)
		if err != nil {
			log.Fatalf("backfill failed: %v", err)
		}
		log.WithField("inserted", res.Total()).Info("backfill done")

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q; want consolidate or backfill\n", cmd)
		os.Exit(1)
	}
}
