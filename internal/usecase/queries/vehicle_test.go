//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"
	"github.com/karenkairiyama/mobirent-sub000/tests/common/builder"
	queriesmock "github.com/karenkairiyama/mobirent-sub000/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VehicleQueriesTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	store    *queriesmock.MockVehicleReadStore
	sut      queries.VehicleQueries

	start time.Time
	end   time.Time
}

func (s *VehicleQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockVehicleReadStore(s.mockCtrl)
	s.sut = queries.NewVehicleQueries(s.store)

	s.start = time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	s.end = s.start.Add(3 * 24 * time.Hour)
}

func (s *VehicleQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestVehicleQueriesSuite(t *testing.T) {
	suite.Run(t, new(VehicleQueriesTestSuite))
}

func (s *VehicleQueriesTestSuite) TestCheckAvailability() {
	s.Run("success: a free vehicle is available", func() {
		vb := builder.NewVehicleBuilder()
		s.store.EXPECT().FindByID(gomock.Any(), vb.ID).Return(vb.BuildView(), nil).Times(1)
		s.store.EXPECT().CountOverlapping(gomock.Any(), vb.ID, s.start, s.end).Return(int64(0), nil).Times(1)

		result, err := s.sut.CheckAvailability(context.Background(), vb.ID, s.start, s.end)

		s.Require().NoError(err)
		s.True(result.Available)
		s.Empty(result.Reason)
	})

	s.Run("success: overlapping bookings block the dates with a reason", func() {
		vb := builder.NewVehicleBuilder()
		s.store.EXPECT().FindByID(gomock.Any(), vb.ID).Return(vb.BuildView(), nil).Times(1)
		s.store.EXPECT().CountOverlapping(gomock.Any(), vb.ID, s.start, s.end).Return(int64(1), nil).Times(1)

		result, err := s.sut.CheckAvailability(context.Background(), vb.ID, s.start, s.end)

		s.Require().NoError(err)
		s.False(result.Available)
		s.Equal("dates already booked", result.Reason)
	})

	s.Run("success: maintenance blocks regardless of dates", func() {
		vb := builder.NewVehicleBuilder().UnderMaintenance()
		s.store.EXPECT().FindByID(gomock.Any(), vb.ID).Return(vb.BuildView(), nil).Times(1)
		// CountOverlapping is never consulted.

		result, err := s.sut.CheckAvailability(context.Background(), vb.ID, s.start, s.end)

		s.Require().NoError(err)
		s.False(result.Available)
		s.Equal("vehicle under maintenance", result.Reason)
	})

	s.Run("success: the reserved display flag does not drive availability", func() {
		// is_reserved is a UI hint; a free date range on a flagged vehicle is
		// still bookable.
		vb := builder.NewVehicleBuilder().With(func(b *builder.VehicleBuilder) {
			b.IsReserved = true
		})
		s.store.EXPECT().FindByID(gomock.Any(), vb.ID).Return(vb.BuildView(), nil).Times(1)
		s.store.EXPECT().CountOverlapping(gomock.Any(), vb.ID, s.start, s.end).Return(int64(0), nil).Times(1)

		result, err := s.sut.CheckAvailability(context.Background(), vb.ID, s.start, s.end)

		s.Require().NoError(err)
		s.True(result.Available)
	})

	s.Run("error: equal start and end dates are rejected", func() {
		_, err := s.sut.CheckAvailability(context.Background(), uuid.New(), s.start, s.start)

		s.ErrorIs(err, errs.ErrInvalidDateRange)
	})

	s.Run("error: unknown vehicle", func() {
		id := uuid.New()
		s.store.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)).Times(1)

		_, err := s.sut.CheckAvailability(context.Background(), id, s.start, s.end)

		s.ErrorIs(err, errs.ErrVehicleNotFound)
	})
}
