package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apporder "nodal/internal/application/order"
	"nodal/internal/interfaces/http/middleware"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/utils"
)

type OrderHandler struct {
	list *apporder.ListUseCase
	get  *apporder.GetUseCase
}

func NewOrderHandler(list *apporder.ListUseCase, get *apporder.GetUseCase) *OrderHandler {
	return &OrderHandler{list: list, get: get}
}

// List godoc
// @Summary List the caller's orders
// @Router /api/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	result, err := h.list.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

// Get godoc
// @Summary Get one of the caller's orders by id
// @Router /api/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid order id"))
		return
	}

	result, err := h.get.Execute(c.Request.Context(), uint(orderID), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}
