package components

import (
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/handler"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/api"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/middleware"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/config"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		newAuthHandler,
		api.NewReservationHandler,
		api.NewPaymentHandler,
		api.NewVehicleHandler,
		api.NewBranchHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func newAuthHandler(authCommands commands.AuthCommands, userQueries queries.UserQueries, cfg config.Config) *api.AuthHandler {
	tokenDuration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		tokenDuration = 24 * time.Hour
	}
	return api.NewAuthHandler(authCommands, userQueries, cfg.Cookie, tokenDuration)
}
