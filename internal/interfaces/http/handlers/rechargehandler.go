package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apppurchase "nodal/internal/application/purchase"
	"nodal/internal/interfaces/http/middleware"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/utils"
)

// RechargeHandler serves the fiat-to-coin top-up flow: a user-initiated
// Checkout session, and the Stripe webhook confirming it
// for coin balance top-ups.
type RechargeHandler struct {
	create  *apppurchase.CreateRechargeUseCase
	webhook *apppurchase.RechargeWebhookUseCase
}

func NewRechargeHandler(create *apppurchase.CreateRechargeUseCase, webhook *apppurchase.RechargeWebhookUseCase) *RechargeHandler {
	return &RechargeHandler{create: create, webhook: webhook}
}

type createRechargeRequest struct {
	AmountCents  int64  `json:"amount_cents" binding:"required,min=1"`
	Currency     string `json:"currency" binding:"required"`
	CoinsGranted int64  `json:"coins_granted" binding:"required,min=1"`
}

// Create godoc
// @Summary Start a Stripe checkout session for a coin top-up
// @Router /api/user/recharge [post]
func (h *RechargeHandler) Create(c *gin.Context) {
	var req createRechargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	result, err := h.create.Execute(c.Request.Context(), apppurchase.CreateRechargeRequest{
		UserID:       middleware.UserID(c),
		AmountCents:  req.AmountCents,
		Currency:     req.Currency,
		CoinsGranted: req.CoinsGranted,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// StripeWebhook godoc
// @Summary Receive Stripe checkout confirmation events
// @Router /api/webhooks/stripe [post]
func (h *RechargeHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.ErrorResponse(c, apperror.Validation("failed to read webhook body"))
		return
	}

	if err := h.webhook.Execute(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"received": true})
}
