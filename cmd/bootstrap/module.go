package bootstrap

import (
	"github.com/karenkairiyama/mobirent-sub000/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.NotifierModule,
	components.HandlerModule,
)
