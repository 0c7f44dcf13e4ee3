package handler

import (
	"net/http"

	"curtainledger/internal/middleware"
	"curtainledger/internal/service"
	"curtainledger/pkg/response"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/auth/login", h.Login)
}

// Login exchanges the shared password for a report session token
// @Summary      Unlock reports
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      LoginRequest  true  "Shared password"
// @Success      200      {object}  response.Response{data=service.Session}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	session, err := h.authService.Login(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	middleware.SetSessionCookie(c, session.Token, int(service.SessionTTL.Seconds()))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, session))
}
