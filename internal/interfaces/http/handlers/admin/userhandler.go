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

// UserHandler exposes the manual balance/traffic correction endpoints
// (spec.md §6 "Admin": adjust balance, adjust traffic quota).
type UserHandler struct {
	adjustBalance *appadmin.AdjustBalanceUseCase
	adjustTraffic *appadmin.AdjustTrafficUseCase
	logs          *appadmin.RecordAdminActionUseCase
}

func NewUserHandler(adjustBalance *appadmin.AdjustBalanceUseCase, adjustTraffic *appadmin.AdjustTrafficUseCase, logs *appadmin.RecordAdminActionUseCase) *UserHandler {
	return &UserHandler{adjustBalance: adjustBalance, adjustTraffic: adjustTraffic, logs: logs}
}

type adjustBalanceRequest struct {
	Amount      int64  `json:"amount" binding:"required"`
	Description string `json:"description"`
}

// AdjustBalance godoc
// @Summary Credit or debit a user's coin balance
// @Router /api/admin/users/{id}/balance [post]
func (h *UserHandler) AdjustBalance(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid user id"))
		return
	}
	var req adjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	err = h.adjustBalance.Execute(c.Request.Context(), appadmin.AdjustBalanceRequest{
		UserID: uint(userID), Amount: req.Amount, Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	h.logs.Execute(c.Request.Context(), middleware.UserID(c), "user.adjust_balance", c.Param("id"), req.Description, utils.ClientIP(c))
	utils.SuccessResponse(c, http.StatusOK, gin.H{"ok": true})
}

type adjustTrafficRequest struct {
	QuotaDelta int64 `json:"quota_delta" binding:"required"`
}

// AdjustTraffic godoc
// @Summary Grant or revoke a user's traffic quota
// @Router /api/admin/users/{id}/traffic [post]
func (h *UserHandler) AdjustTraffic(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid user id"))
		return
	}
	var req adjustTrafficRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	err = h.adjustTraffic.Execute(c.Request.Context(), appadmin.AdjustTrafficRequest{
		UserID: uint(userID), QuotaDelta: req.QuotaDelta,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	h.logs.Execute(c.Request.Context(), middleware.UserID(c), "user.adjust_traffic", c.Param("id"), "", utils.ClientIP(c))
	utils.SuccessResponse(c, http.StatusOK, gin.H{"ok": true})
}
