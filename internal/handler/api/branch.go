package api

import (
	"net/http"

	resdto "github.com/karenkairiyama/mobirent-sub000/internal/handler/dto/response"
	"github.com/karenkairiyama/mobirent-sub000/internal/handler/httperr"
	"github.com/karenkairiyama/mobirent-sub000/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type BranchHandler struct {
	branchQueries queries.BranchQueries
}

func NewBranchHandler(branchQueries queries.BranchQueries) *BranchHandler {
	return &BranchHandler{
		branchQueries: branchQueries,
	}
}

// @Summary List branches
// @Description List pickup and return branches
// @Tags branches
// @Produce json
// @Success 200 {array} resdto.BranchResponse
// @Router /branches [get]
func (h *BranchHandler) ListBranches(c *gin.Context) {
	views, err := h.branchQueries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.BranchResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromBranchView(v)
	}
	c.JSON(http.StatusOK, response)
}
