package api

import (
	"errors"
	"net/http"
	"time"

	resdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/response"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/httperr"
	"github.com/karenkairiyama/mobirent-sub000/internal/pkg/errs"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VehicleHandler struct {
	vehicleQueries queries.VehicleQueries
}

func NewVehicleHandler(vehicleQueries queries.VehicleQueries) *VehicleHandler {
	return &VehicleHandler{
		vehicleQueries: vehicleQueries,
	}
}

// @Summary List vehicles
// @Description List the vehicle fleet
// @Tags vehicles
// @Produce json
// @Success 200 {array} resdto.VehicleResponse
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	views, err := h.vehicleQueries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.VehicleResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromVehicleView(v)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Check vehicle availability
// @Description Check whether a vehicle is bookable for a date range
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param start query string true "Start date (RFC 3339)"
// @Param end query string true "End date (RFC 3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id}/availability [get]
func (h *VehicleHandler) CheckAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid vehicle ID format",
		})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid start date, expected RFC 3339",
		})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid end date, expected RFC 3339",
		})
		return
	}

	result, err := h.vehicleQueries.CheckAvailability(c.Request.Context(), id, start, end)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Vehicle not found",
			})
		case errors.Is(err, errs.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityResult(result))
}
