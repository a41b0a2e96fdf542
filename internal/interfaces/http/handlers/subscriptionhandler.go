package handlers

import (
	"github.com/gin-gonic/gin"

	appsubscription "nodal/internal/application/subscription"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/utils"
)

type SubscriptionHandler struct {
	materialize *appsubscription.MaterializeUseCase
}

func NewSubscriptionHandler(materialize *appsubscription.MaterializeUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{materialize: materialize}
}

// GetByToken godoc
// @Summary Materialize a Clash-compatible subscription document
// @Router /sub/{token} [get]
func (h *SubscriptionHandler) GetByToken(c *gin.Context) {
	req := appsubscription.Request{
		Token:     c.Param("token"),
		IP:        utils.ClientIP(c),
		UserAgent: c.Request.UserAgent(),
	}

	result, err := h.materialize.Execute(c.Request.Context(), req)
	if err != nil {
		c.Data(apperror.StatusOf(err), "text/yaml", nil)
		return
	}
	c.Data(200, "text/yaml", []byte(result.Body))
}
