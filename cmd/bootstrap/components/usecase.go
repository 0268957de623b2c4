package components

import (
	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/payment"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/clock"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/config"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/ports"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewDailyRateCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	func(cfg config.Config, clk clock.Clock) ports.PaymentGateway {
		return payment.NewSimulatedGateway(cfg.Payment, clk)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewReservationQueries,
		queries.NewVehicleQueries,
		queries.NewBranchQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
