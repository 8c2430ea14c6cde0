// Command demo runs the single-hotel walkthrough against the in-memory engine:
// one room, one guest, check-in then check-out.
package main

import (
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, "hotel-demo")

	hotel, err := domain.NewHotel("Pearl Continental")
	if err != nil {
		log.Fatal().Err(err).Msg("create hotel")
	}
	room101 := domain.NewRoom(101)
	hotel.AddRoom(room101)

	chain := domain.NewHotelChain()
	chain.AddHotel(hotel)

	ali, err := domain.NewGuest("Ali", "Lahore")
	if err != nil {
		log.Fatal().Err(err).Msg("create guest")
	}

	res, err := chain.MakeReservation(hotel)
	if err != nil {
		log.Fatal().Err(err).Msg("reserve")
	}
	log.Info().Str("id", res.ID()).Time("start", res.StartDate()).Time("end", res.EndDate()).
		Int("rooms", res.RoomCount()).Msg("reservation created")

	if err := chain.CheckInGuest(room101, ali); err != nil {
		log.Fatal().Err(err).Msg("check in")
	}
	log.Info().Int("room", room101.Number()).Bool("occupied", room101.IsOccupied()).
		Bool("hotel_available", hotel.Available()).Msg("after check-in")

	if _, err := chain.MakeReservation(hotel); err != nil {
		log.Info().Err(err).Msg("full hotel refuses reservations")
	}

	chain.CheckOutGuest(room101)
	log.Info().Int("room", room101.Number()).Bool("occupied", room101.IsOccupied()).
		Bool("hotel_available", hotel.Available()).Msg("after check-out")
}
