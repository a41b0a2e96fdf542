package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appcatalog "nodal/internal/application/catalog"
	apppurchase "nodal/internal/application/purchase"
	"nodal/internal/interfaces/http/middleware"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/utils"
)

type PackageHandler struct {
	list     *appcatalog.ListActiveUseCase
	purchase *apppurchase.UseCase
}

func NewPackageHandler(list *appcatalog.ListActiveUseCase, purchase *apppurchase.UseCase) *PackageHandler {
	return &PackageHandler{list: list, purchase: purchase}
}

// List godoc
// @Summary List active purchasable packages
// @Router /api/packages [get]
func (h *PackageHandler) List(c *gin.Context) {
	result, err := h.list.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// Purchase godoc
// @Summary Purchase a package, debiting the caller's balance
// @Router /api/packages/{id}/purchase [post]
func (h *PackageHandler) Purchase(c *gin.Context) {
	packageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid package id"))
		return
	}

	result, err := h.purchase.Execute(c.Request.Context(), middleware.UserID(c), uint(packageID))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}
