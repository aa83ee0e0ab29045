// Package server exposes the analysis over HTTP.
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"supply-sentinel/internal/agents"
	"supply-sentinel/internal/models"
	"supply-sentinel/internal/store"
)

// Analyzer runs a supply chain analysis. Implemented by
// agents.Orchestrator.
type Analyzer interface {
	RunAnalysis(ctx context.Context, creds agents.Credentials) ([]string, error)
	RunAnalysisDetailed(ctx context.Context, creds agents.Credentials) ([]models.ScoredAlert, error)
}

// Server serves the analysis API.
type Server struct {
	analyzer Analyzer
	store    store.DataStore
	creds    agents.Credentials // used by the scheduled endpoint
	logger   zerolog.Logger
}

// New creates a new API server. creds are the configured credentials
// used by the scheduled path; the on-demand path takes credentials from
// query parameters.
func New(analyzer Analyzer, dataStore store.DataStore, creds agents.Credentials, logger zerolog.Logger) *Server {
	return &Server{
		analyzer: analyzer,
		store:    dataStore,
		creds:    creds,
		logger:   logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", s.handleRoot)
	r.GET("/run_analysis", s.handleRunAnalysis)
	r.GET("/run_scheduled_analysis", s.handleScheduledAnalysis)
	r.GET("/alerts", s.handleListAlerts)

	return r
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("Starting API server")
	return s.Router().Run(addr)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Supply Chain Resilience System API is running."})
}

// handleRunAnalysis triggers an analysis with caller-supplied
// credentials and returns the alert texts.
func (s *Server) handleRunAnalysis(c *gin.Context) {
	apiKey := c.Query("api_key")
	projectID := c.Query("project_id")
	if apiKey == "" || projectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "API key and Project ID are required."})
		return
	}

	alerts, err := s.analyzer.RunAnalysis(c.Request.Context(), agents.Credentials{
		APIKey:    apiKey,
		ProjectID: projectID,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("Analysis run failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// handleScheduledAnalysis runs the analysis with the configured
// credentials and persists the generated alerts.
func (s *Server) handleScheduledAnalysis(c *gin.Context) {
	scored, err := s.analyzer.RunAnalysisDetailed(c.Request.Context(), s.creds)
	if err != nil {
		s.logger.Error().Err(err).Msg("Scheduled analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	if len(scored) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No new alerts to save.", "saved": 0})
		return
	}

	saved := 0
	for _, alert := range scored {
		record := &models.AlertRecord{
			ID:           uuid.NewString(),
			Timestamp:    time.Now().UTC(),
			SupplierName: alert.Supplier.Name,
			Priority:     alert.Priority,
			Text:         alert.Text,
		}
		if err := s.store.SaveAlert(c.Request.Context(), record); err != nil {
			s.logger.Error().Err(err).Str("supplier", alert.Supplier.Name).Msg("Failed to save alert")
			continue
		}
		saved++
	}

	s.logger.Info().Int("saved", saved).Msg("Scheduled analysis complete")
	c.JSON(http.StatusOK, gin.H{"saved": saved})
}

// handleListAlerts returns recently persisted alerts.
func (s *Server) handleListAlerts(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "limit must be a positive integer"})
			return
		}
		limit = v
	}

	alerts, err := s.store.GetRecentAlerts(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
