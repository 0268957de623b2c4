//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/user"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/api"
	resdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/response"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"
	"github.com/karenkairiyama/mobirent-sub000/tests/common/builder"
	"github.com/karenkairiyama/mobirent-sub000/tests/common/httptest"
	"github.com/karenkairiyama/mobirent-sub000/tests/common/testutil"
	commandsmock "github.com/karenkairiyama/mobirent-sub000/tests/mock/commands"
	queriesmock "github.com/karenkairiyama/mobirent-sub000/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	userID       uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, s.handler.CreateReservation)
	s.router.POST("/reservations/checkout", authMiddleware, s.handler.Checkout)
	s.router.GET("/reservations/myreservations", authMiddleware, s.handler.GetMyReservations)
	s.router.GET("/reservations/:id", authMiddleware, s.handler.GetReservation)
	s.router.PUT("/reservations/:id/cancel", authMiddleware, s.handler.CancelReservation)
	s.router.PUT("/reservations/:id/pickup", authMiddleware, s.handler.PickUpReservation)
	s.router.PUT("/reservations/:id/return", authMiddleware, s.handler.ReturnReservation)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	rb := builder.NewReservationBuilder()
	reqBody := rb.BuildCreateRequestDTO()
	returnView := rb.BuildView()
	expectedResult := &commands.CreateReservationResult{Reservation: returnView}

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.userID).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal("pending", response.Status)
		s.Equal(returnView.TotalCostCents, response.TotalCostCents)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: vehicle_id (required)", mutate: testutil.Field("vehicle_id", nil)},
			{name: "missing field: pickup_branch_id (required)", mutate: testutil.Field("pickup_branch_id", nil)},
			{name: "missing field: return_branch_id (required)", mutate: testutil.Field("return_branch_id", nil)},
			{name: "missing field: start_date (required)", mutate: testutil.Field("start_date", nil)},
			{name: "missing field: end_date (required)", mutate: testutil.Field("end_date", nil)},
			{name: "invalid vehicle_id format", mutate: testutil.Field("vehicle_id", "not-a-uuid")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "vehicle not found",
				commandsError:  errs.ErrVehicleNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Vehicle not found",
			},
			{
				name:           "branch not found",
				commandsError:  errs.ErrBranchNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Branch not found",
			},
			{
				name:           "add-on not found",
				commandsError:  errs.ErrAddOnNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Add-on not found",
			},
			{
				name:           "invalid date range",
				commandsError:  errs.ErrInvalidDateRange,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid date range",
			},
			{
				name:           "vehicle under maintenance",
				commandsError:  errs.ErrVehicleInMaintenance,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "maintenance",
			},
			{
				name:           "vehicle not available",
				commandsError:  errs.ErrVehicleUnavailable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not available",
			},
			{
				name:           "dates already booked",
				commandsError:  errs.ErrReservationConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already booked",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.userID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCheckout
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCheckout() {
	url := "/reservations/checkout"

	rb := builder.NewReservationBuilder()
	reqBody := rb.BuildCheckoutRequestDTO(builder.NewPaymentRequestBuilder())
	returnView := rb.BuildView()
	returnView.Status = "confirmed"
	expectedResult := &commands.CreateReservationResult{Reservation: returnView}

	s.Run("success: returns 201 Created with confirmed reservation", func() {
		s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any(), s.userID).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("confirmed", response.Status)
	})

	s.Run("error: 402 Payment Required when the card is declined", func() {
		s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any(), s.userID).
			Return(nil, errs.ErrPaymentDeclined).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusPaymentRequired, "declined")
	})

	s.Run("error: 409 Conflict when a concurrent booking won the dates", func() {
		s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any(), s.userID).
			Return(nil, errs.ErrReservationConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already booked")
	})

	s.Run("error: 400 Bad Request when payment block is missing", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("payment", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	rb := builder.NewReservationBuilder()
	returnView := rb.BuildView()
	url := "/reservations/" + returnView.ID.String()

	s.Run("success: returns 200 OK with ReservationResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleCustomer, returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.ReservationNumber, response.ReservationNumber)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("error: 404 Not Found for missing or foreign reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, user.RoleCustomer, returnView.ID).
			Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestGetMyReservations
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetMyReservations() {
	url := "/reservations/myreservations"

	s.Run("success: returns 200 OK with the user's reservations", func() {
		rb := builder.NewReservationBuilder()
		items := []*queries.ReservationListItem{
			{
				ID:                rb.ID,
				ReservationNumber: rb.Number,
				VehicleID:         rb.VehicleID,
				VehicleName:       "Toyota Corolla",
				StartDate:         rb.StartDate,
				EndDate:           rb.EndDate,
				Status:            "pending",
				TotalCostCents:    rb.TotalCostCents,
				CreatedAt:         rb.CreatedAt,
			},
		}

		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal(rb.Number, response[0].ReservationNumber)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestCancelReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	reservationID := uuid.New()
	url := "/reservations/" + reservationID.String() + "/cancel"

	expectedResult := &commands.CancelReservationResult{
		ReservationID:     reservationID,
		ReservationNumber: "RES-20260101-0001",
		Status:            "cancelled",
		RefundAmountCents: 240000,
		RefundType:        commands.RefundPartial,
	}

	s.Run("success: returns 200 OK with refund details", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), reservationID, s.userID, user.RoleCustomer).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")

		var response resdto.CancelReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
		s.Equal(int64(240000), response.RefundAmountCents)
		s.Equal("partial", response.RefundType)
	})

	s.Run("error: 404 Not Found for a foreign reservation", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), reservationID, s.userID, user.RoleCustomer).
			Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 409 Conflict when already cancelled or completed", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), reservationID, s.userID, user.RoleCustomer).
			Return(nil, errs.ErrInvalidStatusChange).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "does not allow")
	})
}

// ================================================================================
// TestPickUpAndReturn
// ================================================================================

func (s *ReservationHandlerTestSuite) TestPickUpAndReturn() {
	rb := builder.NewReservationBuilder()
	returnView := rb.BuildView()

	s.Run("success: pickup returns 200 OK with picked_up status", func() {
		returnView.Status = "picked_up"
		s.mockCommands.EXPECT().PickUp(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		url := "/reservations/" + returnView.ID.String() + "/pickup"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("picked_up", response.Status)
	})

	s.Run("success: return returns 200 OK with completed status", func() {
		returnView.Status = "completed"
		s.mockCommands.EXPECT().Return(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		url := "/reservations/" + returnView.ID.String() + "/return"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("completed", response.Status)
	})

	s.Run("error: 409 Conflict when pickup is attempted on a pending reservation", func() {
		s.mockCommands.EXPECT().PickUp(gomock.Any(), returnView.ID).
			Return(nil, errs.ErrInvalidStatusChange).Times(1)

		url := "/reservations/" + returnView.ID.String() + "/pickup"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "does not allow")
	})
}
