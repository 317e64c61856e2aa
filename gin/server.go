// Package gin provides the HTTP API server. Handlers translate between
// JSON and the root services; no analysis logic lives here.
package gin

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/geolens"
	"github.com/gin-gonic/gin"
)

// DefaultShutdownTimeout bounds how long Close waits for in-flight
// requests to drain.
const DefaultShutdownTimeout = 5 * time.Second

var ginModeOnce sync.Once

// Server is the HTTP API server. Assign the service fields before
// calling Open.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *gin.Engine

	// Addr is the bind address, e.g. ":8080".
	Addr string

	// Fetcher, Parser, and Analyzer form the analysis pipeline for
	// synchronous and queued requests.
	Fetcher  geolens.Fetcher
	Parser   geolens.Parser
	Analyzer geolens.Analyzer

	// Jobs accepts asynchronous analysis requests.
	Jobs geolens.JobService

	// Reports is the stored-report history. When set, every successful
	// analysis is persisted. Optional.
	Reports geolens.ReportService

	// Logger receives request-adjacent warnings. Optional.
	Logger *slog.Logger
}

// NewServer creates a Server with its routes registered.
func NewServer() *Server {
	ginModeOnce.Do(func() { gin.SetMode(gin.ReleaseMode) })

	s := &Server{
		server: &http.Server{},
		router: gin.New(),
	}
	s.router.Use(gin.Recovery())

	s.router.GET("/healthz", s.handleHealthz)

	api := s.router.Group("/api")
	api.POST("/analyze", s.handleAnalyze)
	api.POST("/jobs", s.handleCreateJob)
	api.GET("/jobs/:id", s.handleGetJob)
	api.GET("/reports", s.handleListReports)

	s.server.Handler = s.router
	return s
}

// Open begins listening on Addr. It returns immediately; requests are
// served on a background goroutine.
func (s *Server) Open() error {
	if s.Addr == "" {
		return geolens.Errorf(geolens.EINVALID, "server address required")
	}

	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() { _ = s.server.Serve(s.ln) }()

	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Port returns the bound TCP port, or 0 before Open.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// URL returns the server's local base URL, or "" before Open.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return fmt.Sprintf("http://127.0.0.1:%d", s.Port())
}

// ServeHTTP dispatches to the router, so a Server can be driven by
// httptest without opening a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// AnalyzeURL runs the full fetch, parse, analyze sequence for one URL
// and persists the report when a report store is configured. It backs
// the synchronous endpoint and is the RunFunc for the job queue.
func (s *Server) AnalyzeURL(ctx context.Context, url string) (*geolens.Report, error) {
	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	content, err := s.Parser.Parse(ctx, &geolens.Page{
		Ref:       url,
		HTML:      html,
		FetchedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	report, err := s.Analyzer.Analyze(ctx, content)
	if err != nil {
		return nil, err
	}

	if s.Reports != nil {
		rec := &geolens.ReportRecord{URL: url, Report: report}
		if err := s.Reports.CreateReport(ctx, rec); err != nil && s.Logger != nil {
			s.Logger.Warn("report not persisted", "url", url, "err", err)
		}
	}

	return report, nil
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type analyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.error(c, geolens.Errorf(geolens.EINVALID, "url required"))
		return
	}

	report, err := s.AnalyzeURL(c.Request.Context(), req.URL)
	if err != nil {
		s.error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (s *Server) handleCreateJob(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.error(c, geolens.Errorf(geolens.EINVALID, "url required"))
		return
	}

	job, err := s.Jobs.EnqueueJob(c.Request.Context(), req.URL)
	if err != nil {
		s.error(c, err)
		return
	}

	c.JSON(http.StatusAccepted, job)
}

func (s *Server) handleGetJob(c *gin.Context) {
	job, err := s.Jobs.FindJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.error(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (s *Server) handleListReports(c *gin.Context) {
	if s.Reports == nil {
		s.error(c, geolens.Errorf(geolens.EUNAVAILABLE, "report history not available"))
		return
	}

	var filter geolens.ReportFilter

	if url := c.Query("url"); url != "" {
		filter.URL = &url
	}
	var err error
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		s.error(c, err)
		return
	}
	if filter.Offset, err = intQuery(c, "offset"); err != nil {
		s.error(c, err)
		return
	}

	recs, err := s.Reports.FindReports(c.Request.Context(), filter)
	if err != nil {
		s.error(c, err)
		return
	}
	if recs == nil {
		recs = []*geolens.ReportRecord{}
	}

	c.JSON(http.StatusOK, gin.H{"reports": recs, "count": len(recs)})
}

func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, geolens.Errorf(geolens.EINVALID, "%s must be a non-negative integer", name)
	}
	return n, nil
}

// error writes an application error as a JSON response with the HTTP
// status matching its code. Internal details are logged, never exposed.
func (s *Server) error(c *gin.Context, err error) {
	code := geolens.ErrorCode(err)
	if code == geolens.EINTERNAL && s.Logger != nil {
		s.Logger.Error("http request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.JSON(statusFromCode(code), gin.H{"error": geolens.ErrorMessage(err)})
}

func statusFromCode(code string) int {
	switch code {
	case geolens.EINVALID:
		return http.StatusBadRequest
	case geolens.ENOTFOUND:
		return http.StatusNotFound
	case geolens.ECONFLICT:
		return http.StatusConflict
	case geolens.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
