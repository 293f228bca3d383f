package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"autorent/config"
	"autorent/pkg/logger"
	"autorent/storage/postgres"
)

// Dev utility: wipe all rental-desk data. Rentals go first only
// notionally; TRUNCATE ... CASCADE clears the restrict FKs in one shot.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.ServiceName)

	pool, err := pgxpool.New(context.Background(), postgres.URL(cfg))
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	_, err = pool.Exec(context.Background(), "TRUNCATE TABLE rentals, vehicles, customers CASCADE")
	if err != nil {
		log.Error(fmt.Sprintf("failed to truncate tables: %v", err))
	} else {
		log.Info("truncated rentals, vehicles and customers")
	}
}
