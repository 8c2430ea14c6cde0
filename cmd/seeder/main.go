package main

import (
	"context"
	"database/sql"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/adapters/inventory"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/shared"
	mysqlrepo "hotel_booking/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "hotel-seeder")

	log.Info().
		Str("base", cfg.InventoryBase).
		Int("workers", cfg.Workers).
		Int("hotels", len(shared.HotelIDs)).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := inventory.New(cfg.InventoryBase, cfg.InventoryKey, cfg.InventoryRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize inventory client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	imp := app.NewInventoryImporter(client, repo, cache)
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var (
		wg                 sync.WaitGroup
		ok, missed, failed atomic.Int64
	)

	for _, id := range shared.HotelIDs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(hotelID int64) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := imp.ImportHotel(ctx, hotelID)
			switch {
			case err != nil:
				failed.Add(1)
				log.Warn().Int64("id", hotelID).Err(err).Str("err_type", observability.LabelErr(err)).Msg("import failed")
			case res.Missed:
				missed.Add(1)
				log.Info().Int64("id", hotelID).Msg("import missed")
			default:
				ok.Add(1)
				log.Info().Int64("id", hotelID).Str("hotel", res.Hotel).
					Int("rooms", res.Rooms).Int("skipped", res.Skipped).Msg("import ok")
			}
		}(id)
	}

	wg.Wait()
	log.Info().Int64("ok", ok.Load()).Int64("missed", missed.Load()).Int64("failed", failed.Load()).
		Msg("seeding completed")
}
