// Package server is the web frontend: the analyzer page and a small JSON API.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jayozer/SeoTagInspector/analyzer"
	"github.com/jayozer/SeoTagInspector/logging"
	"github.com/jayozer/SeoTagInspector/middleware"
	"github.com/jayozer/SeoTagInspector/report"
	"github.com/jayozer/SeoTagInspector/scoring"
	"github.com/jayozer/SeoTagInspector/stats"
)

// Analyzer submits a URL for analysis
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*analyzer.Result, error)
}

type Options struct {
	Analyzer   Analyzer
	Composer   scoring.Composer
	Statistics *logging.Statistics
	// Storage is optional
	Storage *stats.Storage
	Rate    float64
	Burst   int
	DevMode bool
}

type Server struct {
	analyzer   Analyzer
	composer   scoring.Composer
	guard      *analyzer.Guard
	statistics *logging.Statistics
	storage    *stats.Storage
	devMode    bool
	router     *gin.Engine
}

func New(opts Options) *Server {
	if opts.Statistics == nil {
		opts.Statistics, _ = logging.NewStatistics("")
	}
	s := &Server{
		analyzer:   opts.Analyzer,
		composer:   opts.Composer,
		guard:      analyzer.NewGuard(),
		statistics: opts.Statistics,
		storage:    opts.Storage,
		devMode:    opts.DevMode,
	}

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Stats(s.statistics))
	if opts.Rate > 0 && opts.Burst > 0 {
		r.Use(middleware.NewRateLimiter(opts.Rate, opts.Burst).RateLimit())
	}

	r.GET("/", s.index)
	r.POST("/", s.analyze)

	api := r.Group("/api")
	api.Use(cors())
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.POST("/score", s.score)
		api.GET("/statistics", s.statisticsSummary)
	}

	s.router = r
	return s
}

// Handler returns the HTTP handler of the frontend
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Log.WithField("addr", addr).Info("Server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logging.Log.Info("Server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Origin, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) index(c *gin.Context) {
	s.writePage(c, report.NewPage(""))
}

func (s *Server) analyze(c *gin.Context) {
	input := c.PostForm("url")
	page := report.NewPage(input)

	if strings.TrimSpace(input) == "" {
		report.RenderInvalid(page)
		s.record(stats.Rejected, "")
		s.writePage(c, page)
		return
	}

	release, err := s.guard.Acquire(c.ClientIP())
	if err != nil {
		report.RenderError(analyzer.UserMessage(err), page)
		s.record(stats.Rejected, "")
		s.writePage(c, page)
		return
	}
	defer release()

	c.Set(middleware.AnalysisTarget, strings.TrimSpace(input))
	res, err := s.analyzer.Analyze(c.Request.Context(), input)
	if err != nil {
		c.Set(middleware.AnalysisFailed, true)
		s.record(outcomeOf(err), "")
		report.RenderError(analyzer.UserMessage(err), page)
		s.writePage(c, page)
		return
	}

	r := report.Build(res, s.composer)
	if err := report.Render(r, page); err != nil {
		logging.Log.WithError(err).Error("Failed to render report")
		c.Set(middleware.AnalysisFailed, true)
		page = report.NewPage(input)
		report.RenderError("Failed to render the analysis results", page)
		s.writePage(c, page)
		return
	}
	s.record(stats.Succeeded, r.Score.Label)
	s.writePage(c, page)
}

func (s *Server) writePage(c *gin.Context, page *report.Page) {
	var buf bytes.Buffer
	if err := page.WriteHTML(&buf); err != nil {
		logging.Log.WithError(err).Error("Failed to write page")
		c.String(http.StatusInternalServerError, "An unexpected error occurred")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// score builds a report from a payload of the analysis service
func (s *Server) score(c *gin.Context) {
	var envelope analyzer.Envelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis payload: " + err.Error()})
		return
	}
	if !envelope.Success {
		appErr := &analyzer.AppError{Message: envelope.Error}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": appErr.Error()})
		return
	}
	if envelope.Data == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Analysis payload contained no data"})
		return
	}

	c.JSON(http.StatusOK, report.Build(envelope.Data, s.composer))
}

func (s *Server) statisticsSummary(c *gin.Context) {
	summary := s.statistics.GetStatistics(s.devMode)
	summary["scoringMode"] = s.composer.Mode()
	if s.storage != nil {
		summary["month"] = s.storage.GetCurrentStats()
		summary["months"] = s.storage.GetAllMonths()
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) record(outcome stats.Outcome, label string) {
	if s.storage != nil {
		s.storage.Record(outcome, label)
	}
}

func outcomeOf(err error) stats.Outcome {
	var appErr *analyzer.AppError
	switch {
	case errors.As(err, &appErr):
		return stats.ApplicationError
	case errors.Is(err, analyzer.ErrEmptyURL), errors.Is(err, analyzer.ErrBusy):
		return stats.Rejected
	default:
		return stats.TransportError
	}
}
