package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appuser "nodal/internal/application/user"
	"nodal/internal/interfaces/http/middleware"
	"nodal/internal/shared/utils"
)

type UserHandler struct {
	balance       *appuser.GetBalanceUseCase
	referral      *appuser.GetReferralUseCase
	referralStats *appuser.GetReferralStatsUseCase
	traffic       *appuser.GetTrafficUseCase
	subLink       *appuser.GetSubscriptionLinkUseCase
	subLinkReset  *appuser.ResetSubscriptionLinkUseCase
}

func NewUserHandler(
	balance *appuser.GetBalanceUseCase,
	referral *appuser.GetReferralUseCase,
	referralStats *appuser.GetReferralStatsUseCase,
	traffic *appuser.GetTrafficUseCase,
	subLink *appuser.GetSubscriptionLinkUseCase,
	subLinkReset *appuser.ResetSubscriptionLinkUseCase,
) *UserHandler {
	return &UserHandler{
		balance:       balance,
		referral:      referral,
		referralStats: referralStats,
		traffic:       traffic,
		subLink:       subLink,
		subLinkReset:  subLinkReset,
	}
}

// GetBalance godoc
// @Summary Get coin balance and recent transactions
// @Router /api/user/balance [get]
func (h *UserHandler) GetBalance(c *gin.Context) {
	result, err := h.balance.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// GetReferral godoc
// @Summary Get the caller's referral code and link
// @Router /api/user/referral [get]
func (h *UserHandler) GetReferral(c *gin.Context) {
	result, err := h.referral.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// GetReferralStats godoc
// @Summary Get referred-user count and total rebate earned
// @Router /api/user/referral/stats [get]
func (h *UserHandler) GetReferralStats(c *gin.Context) {
	result, err := h.referralStats.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// GetTraffic godoc
// @Summary Get traffic quota/used/left
// @Router /api/user/traffic [get]
func (h *UserHandler) GetTraffic(c *gin.Context) {
	result, err := h.traffic.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// GetSubscriptionLink godoc
// @Summary Get (creating on first call) the caller's subscription URL
// @Router /api/subscription/link [get]
func (h *UserHandler) GetSubscriptionLink(c *gin.Context) {
	result, err := h.subLink.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// ResetSubscriptionLink godoc
// @Summary Rotate the caller's subscription token
// @Router /api/subscription/link/reset [post]
func (h *UserHandler) ResetSubscriptionLink(c *gin.Context) {
	result, err := h.subLinkReset.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}
