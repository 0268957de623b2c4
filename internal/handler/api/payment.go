package api

import (
	"errors"
	"net/http"

	reqdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/request"
	resdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/response"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/httperr"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/middleware"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
	}
}

// @Summary Pay a reservation
// @Description Settle a pending reservation within its payment window
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reservationId path string true "Reservation ID"
// @Param request body reqdto.PaymentRequest true "Payment data"
// @Success 200 {object} resdto.PayReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} resdto.PayReservationResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /payments/{reservationId} [post]
func (h *PaymentHandler) Pay(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("reservationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.PaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.paymentCommands.Pay(c.Request.Context(), reservationID, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrPaymentDeclined), errors.Is(err, errs.ErrPaymentNotApproved):
			// Declined and provider-pending attempts are recorded and the
			// reservation stays payable.
			c.JSON(http.StatusPaymentRequired, resdto.FromPayResult(result))
		case errors.Is(err, errs.ErrPaymentWindowExpired):
			c.JSON(http.StatusGone, gin.H{
				"error": "Payment window expired, reservation was cancelled",
			})
		case errors.Is(err, errs.ErrReservationNotPending):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation is not pending payment",
			})
		case errors.Is(err, errs.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, errs.ErrPaymentGateway):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Payment provider unavailable",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPayResult(result))
}
