package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appadmin "nodal/internal/application/admin"
	"nodal/internal/shared/utils"
)

// ClashHandler lets an admin preview the Clash document the subscription
// materializer would render, without needing a subscription token.
type ClashHandler struct {
	preview *appadmin.ClashPreviewUseCase
}

func NewClashHandler(preview *appadmin.ClashPreviewUseCase) *ClashHandler {
	return &ClashHandler{preview: preview}
}

// ProxyGroups godoc
// @Summary Preview the Clash proxy-groups section
// @Router /api/admin/clash/proxy-groups [get]
func (h *ClashHandler) ProxyGroups(c *gin.Context) {
	result, err := h.preview.ProxyGroups(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"proxy_groups": result})
}

// Rules godoc
// @Summary Preview the Clash rules section
// @Router /api/admin/clash/rules [get]
func (h *ClashHandler) Rules(c *gin.Context) {
	result, err := h.preview.Rules(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"rules": result})
}

// Generate godoc
// @Summary Preview the full Clash document
// @Router /api/admin/clash/generate [get]
func (h *ClashHandler) Generate(c *gin.Context) {
	result, err := h.preview.Generate(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}
