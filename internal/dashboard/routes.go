package dashboard

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sitewatch/sitewatch/internal/progress"
	"github.com/sitewatch/sitewatch/internal/report"
	"github.com/sitewatch/sitewatch/internal/settings"
	"gorm.io/gorm"
)

type handler struct {
	db       *gorm.DB
	store    *settings.Store
	engine   *progress.Engine
	project  string
	interval time.Duration
}

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, h *handler) {
	router.GET("/healthz", h.handleHealth)

	api := router.Group("/api")
	api.GET("/project", h.handleProject)
	api.GET("/development", h.handleDevelopment)
	api.GET("/apartments", h.handleApartments)
	api.GET("/apartments/:number", h.handleApartment)
	api.GET("/timeline", h.handleTimeline)
	api.GET("/readiness", h.handleReadiness)
	api.GET("/reports", h.handleReports)
	api.GET("/config", h.handleGetConfig)
	api.POST("/config", h.handlePostConfig)
	api.GET("/events", h.handleEvents)
}

func (h *handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) handleProject(c *gin.Context) {
	overview, err := projectOverview(h.db, h.engine, h.project)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *handler) handleDevelopment(c *gin.Context) {
	rep, err := scopeReport(h.db, h.engine, progress.Development())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *handler) handleApartments(c *gin.Context) {
	snaps, err := report.LoadSnapshots(h.db, progress.Project())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.engine.Apartments(snaps))
}

func (h *handler) handleApartment(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if _, err := report.GetApartment(h.db, number); err != nil {
		if errors.Is(err, report.ErrApartmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		serverError(c, err)
		return
	}
	rep, err := scopeReport(h.db, h.engine, progress.Apartment(number))
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *handler) handleTimeline(c *gin.Context) {
	scope, err := progress.ParseScope(c.DefaultQuery("scope", "project"), c.Query("apartment"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snaps, err := report.LoadSnapshots(h.db, scope)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.engine.Timeline(snaps, scope))
}

func (h *handler) handleReadiness(c *gin.Context) {
	snaps, err := report.LoadSnapshots(h.db, progress.Project())
	if err != nil {
		serverError(c, err)
		return
	}
	rows := progress.Readiness(snaps)
	if rows == nil {
		rows = []progress.ReadinessRow{}
	}
	c.JSON(http.StatusOK, rows)
}

func (h *handler) handleReports(c *gin.Context) {
	list, err := report.ListReports(h.db)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) handleGetConfig(c *gin.Context) {
	cfg := h.store.Load()
	c.JSON(http.StatusOK, gin.H{
		"config":     cfg,
		"validation": settings.Validate(cfg),
	})
}

func (h *handler) handlePostConfig(c *gin.Context) {
	var cfg settings.Config
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}
	res, err := h.store.Save(cfg)
	switch {
	case errors.Is(err, settings.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"validation": res})
		return
	case err != nil:
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"config":     h.store.Load(),
		"validation": res,
	})
}

func serverError(c *gin.Context, err error) {
	log.Printf("dashboard: %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
