package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"socialgraph/backend/internal/graph"
	"socialgraph/backend/internal/network"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request ID set by requestID
const RequestIDHeader = "X-Request-ID"

// Projector pushes a snapshot somewhere outside the process. *graph.Repository implements it.
type Projector interface {
	ProjectSnapshot(ctx context.Context, snap network.Snapshot) (*graph.ProjectionStats, error)
}

// Handler serves the social graph over HTTP
type Handler struct {
	graph     *network.SocialGraph
	projector Projector
	log       *zap.Logger
}

// NewHandler creates a handler. projector may be nil, in which case /api/projection answers 503.
func NewHandler(g *network.SocialGraph, projector Projector, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		graph:     g,
		projector: projector,
		log:       log,
	}
}

// NewRouter wires middleware and routes. gatherer backs /metrics; nil uses the default gatherer.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) *gin.Engine {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(h.log))
	router.Use(gin.Recovery())
	router.Use(cors())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	{
		api.GET("/people", h.listPeople)
		api.POST("/people", h.addPerson)
		api.GET("/people/:name", h.getPerson)
		api.PATCH("/people/:name", h.updatePerson)
		api.POST("/friendships", h.addFriendship)
		api.GET("/separation", h.separation)
		api.POST("/projection", h.project)
	}

	return router
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", c.GetString(RequestIDHeader)),
		)
	}
}

// requestID reuses an incoming X-Request-ID or mints one
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDHeader, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// cors allows any origin to call the API
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
