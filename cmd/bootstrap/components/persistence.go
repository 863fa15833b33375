package components

import (
	"villabook/internal/infra/notify"
	"villabook/internal/infra/payment"
	"villabook/internal/infra/readstore"
	repo_impl "villabook/internal/infra/repository"
	"villabook/internal/pkg/config"
	"villabook/internal/usecase/commands"
	"villabook/internal/usecase/queries"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// Write side
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repo_impl.NewUnitRepository,
			fx.As(new(commands.UnitRepository)),
		),
		fx.Annotate(
			repo_impl.NewGuestRepository,
			fx.As(new(commands.GuestRepository)),
		),
		fx.Annotate(
			repo_impl.NewBlackoutRepository,
			fx.As(new(commands.BlackoutRepository)),
		),

		// Read side
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReadStore)),
		),
		fx.Annotate(
			readstore.NewUnitReadStore,
			fx.As(new(queries.UnitReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewBlackoutReadStore,
			fx.As(new(queries.BlackoutReadStore)),
		),
		fx.Annotate(
			readstore.NewOperatorReadStore,
			fx.As(new(commands.OperatorReadStore)),
		),

		// External adapters
		NewPaymentClient,
		NewNotifier,
	),
)

func NewPaymentClient(cfg config.Config) commands.PaymentGateway {
	return payment.NewClient(cfg.Payment)
}

func NewNotifier(cfg config.Config) commands.Notifier {
	return notify.NewWebhookNotifier(cfg.Notify)
}
