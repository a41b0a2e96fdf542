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

type PackageHandler struct {
	mutation *appadmin.PackageMutationUseCase
	list     *appadmin.ListPackagesUseCase
	logs     *appadmin.RecordAdminActionUseCase
}

func NewPackageHandler(mutation *appadmin.PackageMutationUseCase, list *appadmin.ListPackagesUseCase, logs *appadmin.RecordAdminActionUseCase) *PackageHandler {
	return &PackageHandler{mutation: mutation, list: list, logs: logs}
}

type createPackageRequest struct {
	Name          string         `json:"name" binding:"required"`
	TrafficAmount uint64         `json:"traffic_amount" binding:"required"`
	Price         int64          `json:"price" binding:"required"`
	DurationDays  int            `json:"duration_days" binding:"required"`
	Description   map[string]any `json:"description"`
	IsActive      bool           `json:"is_active"`
}

// Create godoc
// @Summary Create a purchasable package
// @Router /api/admin/packages [post]
func (h *PackageHandler) Create(c *gin.Context) {
	var req createPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	result, err := h.mutation.Create(c.Request.Context(), appadmin.CreatePackageRequest{
		Name: req.Name, TrafficAmount: req.TrafficAmount, Price: req.Price,
		DurationDays: req.DurationDays, Description: req.Description, IsActive: req.IsActive,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	h.logs.Execute(c.Request.Context(), middleware.UserID(c), "package.create", req.Name, "", utils.ClientIP(c))
	utils.SuccessResponse(c, http.StatusCreated, result)
}

type updatePackageRequest struct {
	Name          string         `json:"name" binding:"required"`
	TrafficAmount uint64         `json:"traffic_amount" binding:"required"`
	Price         int64          `json:"price" binding:"required"`
	DurationDays  int            `json:"duration_days" binding:"required"`
	Description   map[string]any `json:"description"`
	IsActive      bool           `json:"is_active"`
}

// Update godoc
// @Summary Update a package
// @Router /api/admin/packages/{id} [put]
func (h *PackageHandler) Update(c *gin.Context) {
	packageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid package id"))
		return
	}
	var req updatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	result, err := h.mutation.Update(c.Request.Context(), appadmin.UpdatePackageRequest{
		PackageID: uint(packageID), Name: req.Name, TrafficAmount: req.TrafficAmount,
		Price: req.Price, DurationDays: req.DurationDays, Description: req.Description, IsActive: req.IsActive,
	})
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	h.logs.Execute(c.Request.Context(), middleware.UserID(c), "package.update", c.Param("id"), "", utils.ClientIP(c))
	utils.SuccessResponse(c, http.StatusOK, result)
}

// Delete godoc
// @Summary Soft-delete a package
// @Router /api/admin/packages/{id} [delete]
func (h *PackageHandler) Delete(c *gin.Context) {
	packageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid package id"))
		return
	}
	if err := h.mutation.Delete(c.Request.Context(), uint(packageID)); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	h.logs.Execute(c.Request.Context(), middleware.UserID(c), "package.delete", c.Param("id"), "", utils.ClientIP(c))
	utils.SuccessResponse(c, http.StatusOK, gin.H{"ok": true})
}

// List godoc
// @Summary List packages, including inactive ones
// @Router /api/admin/packages [get]
func (h *PackageHandler) List(c *gin.Context) {
	result, err := h.list.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}
