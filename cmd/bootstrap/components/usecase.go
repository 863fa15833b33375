package components

import (
	"villabook/internal/domain/booking"
	"villabook/internal/pkg/clock"
	"villabook/internal/pkg/config"
	"villabook/internal/pkg/jwt"
	"villabook/internal/usecase/commands"
	"villabook/internal/usecase/queries"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewCalculator,
	func(c clock.Clock) commands.Clock { return c },
	func(s *jwt.Service) commands.TokenIssuer { return s },
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewUnitQueries,
		queries.NewBookingQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewBookingCommands,
		commands.NewCancellationCommands,
		commands.NewBlackoutCommands,
	),
)

func NewCalculator(cfg config.Config) *booking.Calculator {
	taxPercent, err := decimal.NewFromString(cfg.Booking.TaxPercent)
	if err != nil {
		panic("invalid BOOKING_TAX_PERCENT: " + err.Error())
	}
	return booking.NewCalculator(taxPercent, cfg.Booking.Currency)
}
