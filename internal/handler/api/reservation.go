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
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Create reservation
// @Description Create a pending reservation to be paid within the payment window
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.reservationCommands.Create(c.Request.Context(), req, userID)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(result.Reservation))
}

// @Summary Create and pay a reservation
// @Description Create a reservation paying at creation time; a declined card persists nothing
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutReservationRequest true "Checkout request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/checkout [post]
func (h *ReservationHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CheckoutReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.reservationCommands.Checkout(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, errs.ErrPaymentDeclined) {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "Payment was declined",
			})
			return
		}
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservationView(result.Reservation))
}

// @Summary Get reservation
// @Description Get reservation by ID; customers only see their own
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	view, err := h.reservationQueries.GetByID(c.Request.Context(), userID, role, id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Get my reservations
// @Description List all reservations of the current user
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationListResponse
// @Failure 401 {object} map[string]string
// @Router /reservations/myreservations [get]
func (h *ReservationHandler) GetMyReservations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.reservationQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.ReservationListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromReservationListItem(item)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Cancel reservation
// @Description Cancel a reservation; refund depends on how far ahead of pickup it is
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancelReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/cancel [put]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	userID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	result, err := h.reservationCommands.Cancel(c.Request.Context(), id, userID, role)
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

// @Summary Register vehicle pickup
// @Description Mark a confirmed reservation as picked up (staff only)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/pickup [put]
func (h *ReservationHandler) PickUpReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := h.reservationCommands.PickUp(c.Request.Context(), id)
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Register vehicle return
// @Description Mark a picked-up reservation as returned and complete it (staff only)
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /reservations/{id}/return [put]
func (h *ReservationHandler) ReturnReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid reservation ID format",
		})
		return
	}

	view, err := h.reservationCommands.Return(c.Request.Context(), id)
	if err != nil {
		h.respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func (h *ReservationHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrVehicleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
	case errors.Is(err, errs.ErrBranchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Branch not found"})
	case errors.Is(err, errs.ErrAddOnNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Add-on not found"})
	case errors.Is(err, errs.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
	case errors.Is(err, errs.ErrVehicleInMaintenance):
		c.JSON(http.StatusConflict, gin.H{"error": "Vehicle is under maintenance"})
	case errors.Is(err, errs.ErrVehicleUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "Vehicle is not available"})
	case errors.Is(err, errs.ErrReservationConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Vehicle is already booked for those dates"})
	case errors.Is(err, errs.ErrInvalidTotalCost), errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Reservation validation failed"})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func (h *ReservationHandler) respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, errs.ErrInvalidStatusChange):
		c.JSON(http.StatusConflict, gin.H{"error": "Reservation status does not allow this operation"})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
