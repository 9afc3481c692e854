package handlers

import (
	"net/http"

	"spbu-service/internal/services"
	"spbu-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Auth  *services.AuthService
	Audit *services.AuditService
}

func NewAuthHandler(auth *services.AuthService, audit *services.AuditService) *AuthHandler {
	return &AuthHandler{Auth: auth, Audit: audit}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(err.Error(), nil, http.StatusBadRequest))
		return
	}

	user, err := h.Auth.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("Gagal login: email atau password salah", nil, http.StatusUnauthorized))
		return
	}

	token, err := h.Auth.IssueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Gagal membuat sesi", nil, http.StatusInternalServerError))
		return
	}

	h.Audit.Log(user.Email, services.ActionLoginSuccess, map[string]interface{}{"role": user.Role})
	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
		"token": token,
		"email": user.Email,
		"role":  user.Role,
	}, "Login berhasil"))
}

// Logout is stateless on the server; it only records the action.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Audit.Log(c.GetString("user_email"), services.ActionLogout, nil)
	c.JSON(http.StatusOK, common.NewSuccessResponse(nil, "Anda berhasil logout"))
}
