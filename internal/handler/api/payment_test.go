//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"github.com/karenkairiyama/mobirent-sub000/internal/domain/reservation"
	"github.com/karenkairiyama/mobirent-sub000/internal/domain/user"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/api"
	resdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/response"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"
	"github.com/karenkairiyama/mobirent-sub000/tests/common/builder"
	"github.com/karenkairiyama/mobirent-sub000/tests/common/httptest"
	"github.com/karenkairiyama/mobirent-sub000/tests/common/testutil"
	commandsmock "github.com/karenkairiyama/mobirent-sub000/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockPaymentCommands
	handler      *api.PaymentHandler
	userID       uuid.UUID
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockPaymentCommands(s.mockCtrl)
	s.handler = api.NewPaymentHandler(s.mockCommands)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/payments/:reservationId", authMiddleware, s.handler.Pay)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) TestPay() {
	reservationID := uuid.New()
	url := "/payments/" + reservationID.String()
	reqBody := builder.NewPaymentRequestBuilder()

	approvedResult := &commands.PayReservationResult{
		Message:           "payment approved",
		ReservationID:     reservationID,
		ReservationNumber: "RES-20260101-0001",
		Status:            "confirmed",
		TotalCostCents:    300000,
		Payment: reservation.PaymentInfo{
			TransactionID: "TXN-1767225600000",
			Method:        "credit_card",
			Status:        reservation.PaymentApproved,
		},
	}

	s.Run("success: returns 200 OK when payment is approved", func() {
		s.mockCommands.EXPECT().Pay(gomock.Any(), reservationID, s.userID, gomock.Any()).
			Return(approvedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.PayReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("confirmed", response.Status)
		s.Equal("payment approved", response.Message)
		s.Equal("TXN-1767225600000", response.Payment.TransactionID)
	})

	s.Run("error: 402 Payment Required keeps the reservation payable", func() {
		rejectedResult := &commands.PayReservationResult{
			Message:           "card declined by issuer",
			ReservationID:     reservationID,
			ReservationNumber: "RES-20260101-0001",
			Status:            "pending",
			TotalCostCents:    300000,
			Payment: reservation.PaymentInfo{
				TransactionID: "TXN-1767225600001",
				Method:        "credit_card",
				Status:        reservation.PaymentRejected,
			},
		}

		s.mockCommands.EXPECT().Pay(gomock.Any(), reservationID, s.userID, gomock.Any()).
			Return(rejectedResult, errs.ErrPaymentDeclined).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusPaymentRequired, rec.Code)
		var response resdto.PayReservationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Equal("pending", response.Status)
		s.Equal("card declined by issuer", response.Message)
	})

	s.Run("error: 402 Payment Required when the provider answers pending", func() {
		pendingResult := &commands.PayReservationResult{
			Message:           "payment pending confirmation by the provider",
			ReservationID:     reservationID,
			ReservationNumber: "RES-20260101-0001",
			Status:            "pending",
			TotalCostCents:    300000,
			Payment: reservation.PaymentInfo{
				TransactionID: "TXN-1767225600003",
				Method:        "credit_card",
				Status:        reservation.PaymentPending,
			},
		}

		s.mockCommands.EXPECT().Pay(gomock.Any(), reservationID, s.userID, gomock.Any()).
			Return(pendingResult, errs.ErrPaymentNotApproved).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		s.Equal(http.StatusPaymentRequired, rec.Code)
		var response resdto.PayReservationResponse
		_ = httptest.DecodeResponseBody(s.T(), rec.Body, &response)
		s.Equal("pending", response.Status)
		s.Equal("payment pending confirmation by the provider", response.Message)
	})

	s.Run("error: 410 Gone when the payment window lapsed", func() {
		s.mockCommands.EXPECT().Pay(gomock.Any(), reservationID, s.userID, gomock.Any()).
			Return(nil, errs.ErrPaymentWindowExpired).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusGone, "Payment window expired")
	})

	s.Run("error: 409 Conflict when the reservation is not pending", func() {
		s.mockCommands.EXPECT().Pay(gomock.Any(), reservationID, s.userID, gomock.Any()).
			Return(nil, errs.ErrReservationNotPending).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not pending")
	})

	s.Run("error: 404 Not Found for a foreign reservation", func() {
		s.mockCommands.EXPECT().Pay(gomock.Any(), reservationID, s.userID, gomock.Any()).
			Return(nil, errs.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 502 Bad Gateway on provider failure", func() {
		s.mockCommands.EXPECT().Pay(gomock.Any(), reservationID, s.userID, gomock.Any()).
			Return(nil, errs.ErrPaymentGateway).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "unavailable")
	})

	s.Run("error: 400 Bad Request for invalid reservation ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/payments/not-a-uuid", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: card_number (required)", mutate: testutil.Field("card_number", nil)},
			{name: "missing field: expiry (required)", mutate: testutil.Field("expiry", nil)},
			{name: "missing field: cvv (required)", mutate: testutil.Field("cvv", nil)},
			{name: "missing field: method (required)", mutate: testutil.Field("method", nil)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}
