package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/realtydash/realty-dashboard/internal/auth"
	"github.com/realtydash/realty-dashboard/internal/store"
	"go.uber.org/zap"
)

type registerRequest struct {
	Username         string `json:"username" binding:"required"`
	Password         string `json:"password" binding:"required"`
	SecurityQuestion string `json:"securityQuestion" binding:"required"`
	SecurityAnswer   string `json:"securityAnswer" binding:"required"`
}

func (h *handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, password, securityQuestion, and securityAnswer are required"})
		return
	}

	err := h.auth.Register(req.Username, req.Password, req.SecurityQuestion, req.SecurityAnswer)
	if errors.Is(err, store.ErrUserExists) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	err := h.auth.Login(req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		h.logger.Error("login failed",
			zap.String("op", "server.login"),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	ttl := time.Duration(h.jwt.ExpireHours) * time.Hour
	token, err := auth.GenerateToken(h.jwt.Secret, h.jwt.Issuer, req.Username, ttl)
	if err != nil {
		h.logger.Error("token generation failed",
			zap.String("op", "server.login"),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func (h *handler) securityQuestion(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username required"})
		return
	}

	question, err := h.auth.SecurityQuestion(username)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question": question})
}

type resetRequest struct {
	Username    string `json:"username" binding:"required"`
	Answer      string `json:"answer" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *handler) resetPassword(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, answer, and newPassword are required"})
		return
	}

	err := h.auth.ResetPassword(req.Username, req.Answer, req.NewPassword)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, auth.ErrBadSecurityAnswer):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "security answer incorrect"})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (h *handler) getVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": h.version})
}
