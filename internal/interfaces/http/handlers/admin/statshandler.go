package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appadmin "nodal/internal/application/admin"
	"nodal/internal/shared/utils"
)

// StatsHandler exposes node/traffic overview counters and the two audit
// trails (access logs, admin logs) behind the admin-only dashboard.
type StatsHandler struct {
	overview *appadmin.GetOverviewUseCase
	traffic  *appadmin.GetTrafficStatsUseCase
	access   *appadmin.ListAccessLogsUseCase
	admin    *appadmin.ListAdminLogsUseCase
}

func NewStatsHandler(overview *appadmin.GetOverviewUseCase, traffic *appadmin.GetTrafficStatsUseCase, access *appadmin.ListAccessLogsUseCase, admin *appadmin.ListAdminLogsUseCase) *StatsHandler {
	return &StatsHandler{overview: overview, traffic: traffic, access: access, admin: admin}
}

// Overview godoc
// @Summary Online/total node counts
// @Router /api/admin/stats/overview [get]
func (h *StatsHandler) Overview(c *gin.Context) {
	result, err := h.overview.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// Traffic godoc
// @Summary Cumulative upload/download across every node
// @Router /api/admin/stats/traffic [get]
func (h *StatsHandler) Traffic(c *gin.Context) {
	result, err := h.traffic.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 || limit > 500 {
		limit = 50
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// AccessLogs godoc
// @Summary List subscription access log entries
// @Router /api/admin/access-logs [get]
func (h *StatsHandler) AccessLogs(c *gin.Context) {
	limit, offset := pagination(c)
	result, err := h.access.Execute(c.Request.Context(), limit, offset)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// AdminLogs godoc
// @Summary List admin mutation audit log entries
// @Router /api/admin/admin-logs [get]
func (h *StatsHandler) AdminLogs(c *gin.Context) {
	limit, offset := pagination(c)
	result, err := h.admin.Execute(c.Request.Context(), limit, offset)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}
