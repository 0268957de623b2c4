package components

import (
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/readstore"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/repository"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra/uow"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		uow.NewPostgresUoW,
		repository.NewReservationRepository,
		repository.NewVehicleRepository,
		repository.NewBranchRepository,
		repository.NewAddOnRepository,
		repository.NewNotificationRepository,
		func(r *repository.NotificationRepository) commands.NotificationRepository { return r },
		readstore.NewReservationReadStore,
		readstore.NewVehicleReadStore,
		readstore.NewBranchReadStore,
		readstore.NewUserReadStore,
	),
)
