// Package server exposes the dashboard over an HTTP API: auth, per-user data
// persistence, transaction CRUD, and the derived dashboard figures.
package server

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/realtydash/realty-dashboard/internal/auth"
	"github.com/realtydash/realty-dashboard/internal/config"
	"github.com/realtydash/realty-dashboard/internal/store"
	"go.uber.org/zap"
)

type handler struct {
	store   store.Store
	auth    *auth.Service
	jwt     config.JWTConfig
	logger  *zap.Logger
	version string
	now     func() time.Time
}

// NewRouter configures the gin engine with all dashboard routes.
func NewRouter(conf *config.Configuration, st store.Store, authSvc *auth.Service, logger *zap.Logger, version string) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(version) == "" {
		version = "dev"
	}
	if conf.Server.Mode != "" {
		gin.SetMode(conf.Server.Mode)
	}

	h := &handler{
		store:   st,
		auth:    authSvc,
		jwt:     conf.JWT,
		logger:  logger,
		version: version,
		now:     time.Now,
	}

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	api.POST("/auth/register", h.register)
	api.POST("/auth/login", h.login)
	api.GET("/auth/question", h.securityQuestion)
	api.POST("/auth/reset", h.resetPassword)
	api.GET("/version", h.getVersion)

	protected := api.Group("")
	protected.Use(auth.Middleware(conf.JWT.Secret))

	protected.GET("/data", h.loadData)
	protected.PUT("/data", h.saveData)

	protected.POST("/transactions", h.createTransaction)
	protected.PUT("/transactions/:id", h.updateTransaction)
	protected.DELETE("/transactions/:id", h.deleteTransaction)

	protected.PUT("/settings", h.updateSettings)

	protected.GET("/dashboard", h.getDashboard)

	return r
}
