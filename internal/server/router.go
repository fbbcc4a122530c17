package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/loykin/sssd/internal/lifecycle"
	"github.com/loykin/sssd/internal/metrics"
	"github.com/loykin/sssd/internal/process"
)

// Reporter is the part of the lifecycle dispatcher the router needs.
type Reporter interface {
	Name() string
	Status(ctx context.Context) (lifecycle.Report, error)
}

// Router serves the example workload's endpoints:
//
//	GET {basePath}/healthz   name, pid and uptime of this instance
//	GET {basePath}/status    whether another instance with the same name runs
//	GET {basePath}/metrics   Prometheus metrics
//
// basePath may be empty or start with '/'; no trailing slash.
type Router struct {
	rep      Reporter
	basePath string
	pid      int
	started  time.Time
}

func NewRouter(rep Reporter, basePath string) *Router {
	return &Router{
		rep:      rep,
		basePath: sanitizeBase(basePath),
		pid:      os.Getpid(),
		started:  time.Now(),
	}
}

// Handler returns an http.Handler powered by gin that can be mounted in any server/mux.
func (r *Router) Handler() http.Handler {
	g := gin.New()
	g.Use(gin.Recovery())
	group := g.Group(r.basePath)
	group.GET("/healthz", r.handleHealth)
	group.GET("/status", r.handleStatus)
	group.GET("/metrics", gin.WrapH(metrics.Handler()))
	return g
}

// --- Handlers ---

type errorResp struct {
	Error string `json:"error"`
}

type healthResp struct {
	Name      string    `json:"name"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
	Uptime    string    `json:"uptime"`
}

type statusResp struct {
	Running  bool              `json:"running"`
	Message  string            `json:"message"`
	Instance *process.Instance `json:"instance,omitempty"`
}

func (r *Router) handleHealth(c *gin.Context) {
	writeJSON(c, http.StatusOK, healthResp{
		Name:      r.rep.Name(),
		PID:       r.pid,
		StartedAt: r.started,
		Uptime:    time.Since(r.started).Truncate(time.Second).String(),
	})
}

func (r *Router) handleStatus(c *gin.Context) {
	rep, err := r.rep.Status(c.Request.Context())
	if err != nil {
		writeJSON(c, http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	resp := statusResp{Running: rep.Running, Message: rep.Message}
	if rep.Running {
		inst := rep.Instance
		resp.Instance = &inst
	}
	writeJSON(c, http.StatusOK, resp)
}
