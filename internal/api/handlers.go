package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"domain-recovery/internal/classifier"
	"domain-recovery/internal/domain"
	"domain-recovery/internal/guide"
	"domain-recovery/internal/models"
	"domain-recovery/internal/services"
	"domain-recovery/internal/valuation"
)

// Handler holds service dependencies
type Handler struct {
	db       *gorm.DB
	analysis *services.AnalysisService
	monitor  *services.MonitorService
	auth     *services.AuthService
	valuer   *valuation.Engine
	metrics  http.Handler
}

// NewHandler creates a new API handler. metrics may be nil, in which case /metrics is
// not served.
func NewHandler(db *gorm.DB, analysis *services.AnalysisService, monitor *services.MonitorService,
	auth *services.AuthService, valuer *valuation.Engine, metrics http.Handler) *Handler {
	return &Handler{
		db:       db,
		analysis: analysis,
		monitor:  monitor,
		auth:     auth,
		valuer:   valuer,
		metrics:  metrics,
	}
}

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, handler *Handler) {
	if handler.metrics != nil {
		r.GET("/metrics", gin.WrapH(handler.metrics))
	}

	api := r.Group("/api/v1")
	{
		// Authentication (no auth required)
		api.POST("/auth/login", handler.Login)
		api.POST("/auth/validate", handler.ValidateToken)
		api.POST("/auth/change-password", handler.ChangePassword)

		// Analysis
		api.POST("/analyze", handler.Analyze)
		api.POST("/evaluate", handler.Evaluate)
		api.GET("/valuation/:domain", handler.Valuation)
		api.GET("/classify/:domain", handler.Classify)
		api.GET("/analyses", handler.ListAnalyses)
		api.GET("/analyses/:id", handler.GetAnalysis)
		api.GET("/email-templates", handler.ListEmailTemplates)
		api.GET("/email-templates/:key", handler.RenderEmailTemplate)

		protected := api.Group("", RequireAuth(handler.auth))
		{
			// Watchlist
			protected.GET("/watchlist", handler.ListWatched)
			protected.POST("/watchlist", handler.AddWatched)
			protected.DELETE("/watchlist/:id", handler.RemoveWatched)
			protected.POST("/watchlist/:id/check", handler.CheckWatched)

			// Notifications
			protected.GET("/notifications", handler.ListNotifications)

			// System settings
			protected.GET("/settings", handler.GetSettings)
			protected.PUT("/settings", handler.UpdateSettings)
		}
	}
}

// writeError maps service errors onto status codes
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidDomain), errors.Is(err, domain.ErrInvalidDate):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrNotFound), errors.Is(err, guide.ErrUnknownTemplate):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Analyze collects live signals and returns the report and guide
func (h *Handler) Analyze(c *gin.Context) {
	var req struct {
		Domain  string        `json:"domain" binding:"required"`
		Context guide.Context `json:"context"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.analysis.Analyze(c.Request.Context(), req.Domain, req.Context)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Evaluate runs the classifier on caller-supplied signals
func (h *Handler) Evaluate(c *gin.Context) {
	var req services.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.analysis.Evaluate(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Valuation values a name without collecting any signals
func (h *Handler) Valuation(c *gin.Context) {
	d, err := domain.Normalize(c.Param("domain"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.valuer.Estimate(d, valuation.Inputs{}))
}

// Classify returns the brand/premium tier and the brandability breakdown of a name
func (h *Handler) Classify(c *gin.Context) {
	d, err := domain.Normalize(c.Param("domain"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"classification": classifier.Classify(d, classifier.Signals{}),
		"brandability":   classifier.Brandability(domain.Name(d)),
	})
}

// ListAnalyses returns analysis history, newest first
func (h *Handler) ListAnalyses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.analysis.List(c.Request.Context(), c.Query("domain"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetAnalysis returns one stored analysis with its report and guide
func (h *Handler) GetAnalysis(c *gin.Context) {
	res, err := h.analysis.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListEmailTemplates returns the available template keys
func (h *Handler) ListEmailTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"keys": guide.TemplateKeys()})
}

// RenderEmailTemplate fills a template for a domain and registrar
func (h *Handler) RenderEmailTemplate(c *gin.Context) {
	d, err := domain.Normalize(c.Query("domain"))
	if err != nil {
		writeError(c, err)
		return
	}
	email, err := guide.RenderEmail(c.Param("key"), d, c.Query("registrar"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, email)
}

// ListWatched retrieves the watchlist
func (h *Handler) ListWatched(c *gin.Context) {
	out, err := h.monitor.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// AddWatched puts a domain on the watchlist
func (h *Handler) AddWatched(c *gin.Context) {
	var req struct {
		Domain string `json:"domain" binding:"required"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.monitor.Add(c.Request.Context(), req.Domain, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// RemoveWatched deletes a watched domain
func (h *Handler) RemoveWatched(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid domain ID"})
		return
	}

	if err := h.monitor.Remove(c.Request.Context(), uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Domain removed from watchlist"})
}

// CheckWatched re-analyses a watched domain now
func (h *Handler) CheckWatched(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid domain ID"})
		return
	}

	w, err := h.monitor.Get(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	res, err := h.monitor.Check(c.Request.Context(), w)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"domain": w, "analysis": res})
}

// ListNotifications retrieves notification history
func (h *Handler) ListNotifications(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.monitor.Notifications(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetSettings retrieves system settings
func (h *Handler) GetSettings(c *gin.Context) {
	var settings []models.Setting
	if err := h.db.WithContext(c.Request.Context()).Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings stores settings. They take effect on the next start.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var settings map[string]string
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.db.WithContext(c.Request.Context())
	for key, value := range settings {
		if err := db.Save(&models.Setting{Key: key, Value: value}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated successfully"})
}

// Login handles user login
func (h *Handler) Login(c *gin.Context) {
	var loginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), loginReq.Username, loginReq.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// ValidateToken validates JWT token
func (h *Handler) ValidateToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	claims, err := h.auth.ValidateToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
		},
	})
}

// ChangePassword handles password change
func (h *Handler) ChangePassword(c *gin.Context) {
	var req struct {
		Username    string `json:"username" binding:"required"`
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	err := h.auth.ChangePassword(c.Request.Context(), req.Username, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Password changed, please log in again"})
	case errors.Is(err, services.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
