// Package handlers adapts application use cases to gin: request binding
// and validation, response envelopes, and error translation.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appuser "nodal/internal/application/user"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/utils"
)

type AuthHandler struct {
	register *appuser.RegisterUseCase
	login    *appuser.LoginUseCase
	refresh  *appuser.RefreshUseCase
}

func NewAuthHandler(register *appuser.RegisterUseCase, login *appuser.LoginUseCase, refresh *appuser.RefreshUseCase) *AuthHandler {
	return &AuthHandler{register: register, login: login, refresh: refresh}
}

type registerRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	ReferralCode string `json:"referral_code"`
}

// Register godoc
// @Summary Create an account
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	result, err := h.register.Execute(c.Request.Context(), req.Email, req.Password, req.ReferralCode)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, result)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Authenticate and receive a bearer token
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	result, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

type refreshRequest struct {
	Token string `json:"token" binding:"required"`
}

// Refresh godoc
// @Summary Reissue a bearer token before it expires
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, apperror.Validation("invalid request body"))
		return
	}

	token, err := h.refresh.Execute(c.Request.Context(), req.Token)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"token": token})
}
