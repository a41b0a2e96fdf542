package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appnode "nodal/internal/application/node"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/utils"
)

// NodeAgentHandler serves the endpoints the paired edge agent calls,
// authenticated by the node's shared secret rather than a user token
// (spec.md §4.4, §6 "Node agent:").
type NodeAgentHandler struct {
	getConfig *appnode.GetConfigUseCase
	heartbeat *appnode.HeartbeatUseCase
	traffic   *appnode.ReportTrafficUseCase
}

func NewNodeAgentHandler(getConfig *appnode.GetConfigUseCase, heartbeat *appnode.HeartbeatUseCase, traffic *appnode.ReportTrafficUseCase) *NodeAgentHandler {
	return &NodeAgentHandler{getConfig: getConfig, heartbeat: heartbeat, traffic: traffic}
}

// GetConfig godoc
// @Summary Agent config pull
// @Router /api/node/config [get]
func (h *NodeAgentHandler) GetConfig(c *gin.Context) {
	nodeID, err := strconv.ParseUint(c.Query("node_id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid node_id"))
		return
	}
	secret := c.Query("secret")

	result, err := h.getConfig.Execute(c.Request.Context(), uint(nodeID), secret)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

type heartbeatRequest struct {
	NodeID            uint   `json:"node_id" binding:"required"`
	Secret            string `json:"secret" binding:"required"`
	Status            string `json:"status" binding:"required"`
	ActiveConnections *int   `json:"active_connections"`
}

// Heartbeat godoc
// @Summary Agent liveness and status ping
// @Router /api/node/heartbeat [post]
func (h *NodeAgentHandler) Heartbeat(c *gin.Context) {
	var req heartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	err := h.heartbeat.Execute(c.Request.Context(), appnode.HeartbeatRequest{
		NodeID:            req.NodeID,
		Secret:            req.Secret,
		Status:            req.Status,
		ActiveConnections: req.ActiveConnections,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"ok": true})
}

type reportTrafficRequest struct {
	NodeID  uint                    `json:"node_id" binding:"required"`
	Secret  string                  `json:"secret" binding:"required"`
	Samples []appnode.TrafficSample `json:"samples" binding:"required,dive"`
}

// ReportTraffic godoc
// @Summary Agent per-user traffic delta report
// @Router /api/node/traffic [post]
func (h *NodeAgentHandler) ReportTraffic(c *gin.Context) {
	var req reportTrafficRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	if err := h.traffic.Execute(c.Request.Context(), req.NodeID, req.Secret, req.Samples); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"ok": true})
}
