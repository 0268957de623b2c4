package components

import (
	"context"

	"github.com/karenkairiyama/mobirent-sub000/internal/infra/mailer"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/notifier"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/config"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		func(cfg config.Config) mailer.Mailer {
			return mailer.NewMailer(cfg.Mail)
		},
		notifier.NewDispatcher,
	),
	fx.Invoke(startDispatcher),
)

func startDispatcher(lc fx.Lifecycle, dispatcher *notifier.Dispatcher) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			dispatcher.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			dispatcher.Stop()
			return nil
		},
	})
}
