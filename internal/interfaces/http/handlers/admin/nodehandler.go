// Package admin adapts the admin application use cases to gin
// (spec.md §6 "Admin (is_admin=true):").
package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appadmin "nodal/internal/application/admin"
	"nodal/internal/interfaces/http/middleware"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/utils"
)

type NodeHandler struct {
	mutation *appadmin.NodeMutationUseCase
	list     *appadmin.ListNodesUseCase
	logs     *appadmin.RecordAdminActionUseCase
}

func NewNodeHandler(mutation *appadmin.NodeMutationUseCase, list *appadmin.ListNodesUseCase, logs *appadmin.RecordAdminActionUseCase) *NodeHandler {
	return &NodeHandler{mutation: mutation, list: list, logs: logs}
}

type createNodeRequest struct {
	Name           string         `json:"name" binding:"required"`
	Host           string         `json:"host" binding:"required"`
	Port           int            `json:"port" binding:"required"`
	Protocol       string         `json:"protocol" binding:"required"`
	Secret         string         `json:"secret" binding:"required"`
	Config         map[string]any `json:"config"`
	MaxUsers       int            `json:"max_users"`
	IncludeInClash bool           `json:"include_in_clash"`
	SortOrder      int            `json:"sort_order"`
}

// Create godoc
// @Summary Create a node
// @Router /api/admin/nodes [post]
func (h *NodeHandler) Create(c *gin.Context) {
	var req createNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	result, err := h.mutation.Create(c.Request.Context(), appadmin.CreateNodeRequest{
		Name: req.Name, Host: req.Host, Port: req.Port, Protocol: req.Protocol,
		Secret: req.Secret, Config: req.Config, MaxUsers: req.MaxUsers,
		IncludeInClash: req.IncludeInClash, SortOrder: req.SortOrder,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	h.logs.Execute(c.Request.Context(), middleware.UserID(c), "node.create", req.Name, "", utils.ClientIP(c))
	utils.SuccessResponse(c, http.StatusCreated, result)
}

type updateNodeRequest struct {
	Name           string         `json:"name" binding:"required"`
	Host           string         `json:"host" binding:"required"`
	Port           int            `json:"port" binding:"required"`
	Config         map[string]any `json:"config"`
	MaxUsers       int            `json:"max_users"`
	IncludeInClash bool           `json:"include_in_clash"`
	SortOrder      int            `json:"sort_order"`
}

// Update godoc
// @Summary Update a node
// @Router /api/admin/nodes/{id} [put]
func (h *NodeHandler) Update(c *gin.Context) {
	nodeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid node id"))
		return
	}
	var req updateNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	result, err := h.mutation.Update(c.Request.Context(), appadmin.UpdateNodeRequest{
		NodeID: uint(nodeID), Name: req.Name, Host: req.Host, Port: req.Port,
		Config: req.Config, MaxUsers: req.MaxUsers,
		IncludeInClash: req.IncludeInClash, SortOrder: req.SortOrder,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	h.logs.Execute(c.Request.Context(), middleware.UserID(c), "node.update", c.Param("id"), "", utils.ClientIP(c))
	utils.SuccessResponse(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Delete a node
// @Router /api/admin/nodes/{id} [delete]
func (h *NodeHandler) Delete(c *gin.Context) {
	nodeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid node id"))
		return
	}
	if err := h.mutation.Delete(c.Request.Context(), uint(nodeID)); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	h.logs.Execute(c.Request.Context(), middleware.UserID(c), "node.delete", c.Param("id"), "", utils.ClientIP(c))
	utils.SuccessResponse(c, http.StatusOK, gin.H{"ok": true})
}

// List godoc
// @Summary List every node regardless of status
// @Router /api/admin/nodes [get]
func (h *NodeHandler) List(c *gin.Context) {
	result, err := h.list.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}
