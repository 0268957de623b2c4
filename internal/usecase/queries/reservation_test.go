//go:build unit

package queries_test

import (
	"context"
	"testing"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/user"
	"github.com/karenkairiyama/mobirent-sub000/internal/infra"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"
	"github.com/karenkairiyama/mobirent-sub000/tests/common/builder"
	queriesmock "github.com/karenkairiyama/mobirent-sub000/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationQueriesTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	store    *queriesmock.MockReservationReadStore
	sut      queries.ReservationQueries
}

func (s *ReservationQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.store = queriesmock.NewMockReservationReadStore(s.mockCtrl)
	s.sut = queries.NewReservationQueries(s.store)
}

func (s *ReservationQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReservationQueriesTestSuite))
}

func (s *ReservationQueriesTestSuite) TestGetByID() {
	rb := builder.NewReservationBuilder()
	view := rb.BuildView()

	s.Run("success: the owner sees their reservation", func() {
		s.store.EXPECT().FindByID(gomock.Any(), rb.ID).Return(view, nil).Times(1)

		got, err := s.sut.GetByID(context.Background(), rb.UserID, user.RoleCustomer, rb.ID)

		s.Require().NoError(err)
		s.Equal(view, got)
	})

	s.Run("success: staff see any reservation", func() {
		s.store.EXPECT().FindByID(gomock.Any(), rb.ID).Return(view, nil).Times(1)

		_, err := s.sut.GetByID(context.Background(), uuid.New(), user.RoleStaff, rb.ID)

		s.NoError(err)
	})

	s.Run("error: a foreign reservation is hidden, not forbidden", func() {
		s.store.EXPECT().FindByID(gomock.Any(), rb.ID).Return(view, nil).Times(1)

		_, err := s.sut.GetByID(context.Background(), uuid.New(), user.RoleCustomer, rb.ID)

		s.ErrorIs(err, errs.ErrReservationNotFound)
	})

	s.Run("error: missing rows map to not found", func() {
		s.store.EXPECT().FindByID(gomock.Any(), rb.ID).
			Return(nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)).Times(1)

		_, err := s.sut.GetByID(context.Background(), rb.UserID, user.RoleCustomer, rb.ID)

		s.ErrorIs(err, errs.ErrReservationNotFound)
	})
}
