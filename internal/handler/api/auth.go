package api

import (
	"net/http"

	reqdto "villabook/internal/handler/dto/request"
	resdto "villabook/internal/handler/dto/response"
	"villabook/internal/pkg/errs"
	"villabook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth commands.AuthCommands
}

func NewAuthHandler(auth commands.AuthCommands) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.LoginResponse{
		Token: result.Token,
		Role:  result.Role,
	})
}
