package server

import (
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agenthands/pulse/internal/config"
	"github.com/agenthands/pulse/internal/core"
	"github.com/agenthands/pulse/internal/core/filter"
	"github.com/agenthands/pulse/internal/core/scoring"
	"github.com/agenthands/pulse/internal/ingest"
)

// Server exposes the exploration engine over HTTP. The current snapshot
// sits behind a RWMutex: ranking requests take read locks over the
// immutable snapshot, loading a new dataset swaps the pointer under the
// write lock. Nothing mutates a snapshot in place.
type Server struct {
	cfg *config.Config

	mu       sync.RWMutex
	explorer *core.Explorer
}

func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("Warning: could not load %s: %v. Using defaults.", cfgPath, err)
		cfg = config.Default()
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	return NewServerWithConfig(cfg)
}

func NewServerWithConfig(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Config() *config.Config {
	return s.cfg
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/network", s.LoadNetwork)
	r.POST("/rank/users", s.RankUsers)
	r.POST("/rank/posts/trending", s.TrendingPosts)
	r.POST("/viz", s.Viz)
	r.GET("/healthz", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// SetSnapshot installs a snapshot directly, bypassing HTTP ingestion.
// Used by tests and by embedders that build networks programmatically.
func (s *Server) SetSnapshot(snap *core.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.explorer = core.NewExplorer(snap)
	graphNodes.Set(float64(snap.Graph().Len()))
}

func (s *Server) currentExplorer() *core.Explorer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.explorer
}

// LoadNetwork ingests a dataset document and makes it the current
// snapshot. Partial record failures are reported, not fatal; an over-cap
// dataset is rejected outright.
func (s *Server) LoadNetwork(c *gin.Context) {
	network, report, err := ingest.Parse(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset document"})
		return
	}

	if max := s.cfg.Limits.MaxNodes; max > 0 && network.Len() > max {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Dataset too large",
			"nodes": network.Len(),
			"limit": max,
		})
		return
	}

	s.SetSnapshot(network.Snapshot())
	ingestErrors.Add(float64(len(report.Errors)))

	c.JSON(http.StatusOK, gin.H{"status": "success", "report": report})
}

type RankUsersRequest struct {
	Criteria scoring.Criteria `json:"criteria"`
	Filters  filter.Spec      `json:"filters"`
	K        int              `json:"k"`
}

func (s *Server) RankUsers(c *gin.Context) {
	var req RankUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	explorer := s.currentExplorer()
	if explorer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No network loaded"})
		return
	}

	rankRequests.WithLabelValues("users").Inc()
	results := explorer.InterestingUsers(req.Criteria, req.Filters, s.clampK(req.K))
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type TrendingRequest struct {
	UserFilters     filter.Spec `json:"user_filters"`
	IncludeKeywords []string    `json:"include_keywords"`
	ExcludeKeywords []string    `json:"exclude_keywords"`
	K               int         `json:"k"`
}

func (s *Server) TrendingPosts(c *gin.Context) {
	var req TrendingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	explorer := s.currentExplorer()
	if explorer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No network loaded"})
		return
	}

	rankRequests.WithLabelValues("trending").Inc()
	results := explorer.TrendingPosts(req.UserFilters, req.IncludeKeywords, req.ExcludeKeywords, s.clampK(req.K))
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// Viz ranks users under the request criteria and answers the full
// visualization payload with those users highlighted.
func (s *Server) Viz(c *gin.Context) {
	var req RankUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	explorer := s.currentExplorer()
	if explorer == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No network loaded"})
		return
	}

	rankRequests.WithLabelValues("viz").Inc()
	highlighted := explorer.InterestingUsers(req.Criteria, req.Filters, s.clampK(req.K))
	c.JSON(http.StatusOK, explorer.VizData(highlighted))
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) clampK(k int) int {
	if k <= 0 {
		k = s.cfg.Limits.DefaultTopK
	}
	if max := s.cfg.Limits.MaxTopK; max > 0 && k > max {
		k = max
	}
	return k
}
