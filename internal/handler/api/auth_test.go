//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/karenkairiyama/mobirent-sub000/internal/handler/api"
	resdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/response"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/config"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/cookie"
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

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
	userID       uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, config.CookieConfig{SameSite: "Lax"}, time.Hour)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/logout", authMiddleware, s.handler.Logout)
	s.router.GET("/auth/me", authMiddleware, s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

// ================================================================================
// TestLogin
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewAuthBuilder().BuildDTO()

	s.Run("success: returns 200 OK with token and sets the cookie", func() {
		expectedResult := &commands.LoginResult{
			UserID:      s.userID,
			AccessToken: "signed-jwt-token",
		}
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("signed-jwt-token", response.AccessToken)
		s.Equal(s.userID, response.UserID)

		tokenCookie := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(tokenCookie)
		s.Equal("signed-jwt-token", tokenCookie.Value)
		s.True(tokenCookie.HttpOnly)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil)},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil)},
			{name: "invalid email format", mutate: testutil.Field("email", "not-an-email")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "invalid credentials",
				commandsError:  commands.ErrInvalidCredentials,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "unknown user gets the same answer",
				commandsError:  commands.ErrUserNotFound,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "inactive account",
				commandsError:  commands.ErrUserInactive,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "inactive",
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
				s.mockCommands.EXPECT().Login(gomock.Any(), reqBody).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestLogout
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogout() {
	url := "/auth/logout"

	s.Run("success: returns 204 No Content and clears the cookie", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		s.Equal(http.StatusNoContent, rec.Code)
		tokenCookie := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(tokenCookie)
		s.Empty(tokenCookie.Value)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestMe
// ================================================================================

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns 200 OK with current user", func() {
		authorized := builder.NewUserBuilder().BuildAuthorizedUser()
		authorized.ID = s.userID

		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID).
			Return(authorized, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.MeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.userID, response.ID)
		s.Equal(authorized.Email, response.Email)
		s.Equal(authorized.Role, response.Role)
	})

	s.Run("error: 404 Not Found when the user vanished", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID).
			Return(nil, queries.ErrUserNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
