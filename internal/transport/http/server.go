package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/studysync/realtime-server/internal/config"
	"github.com/studysync/realtime-server/internal/relay"
)

// NewServer builds the HTTP server: liveness, relay stats, and the WebSocket
// endpoint the productivity clients connect to.
func NewServer(rel *relay.Relay, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	router.GET("/healthz", healthHandler)
	router.GET("/api/stats", statsHandler(rel))
	router.GET("/ws", gin.WrapH(NewWSHandler(rel, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

// statsHandler exposes a read-only occupancy snapshot of the relay.
func statsHandler(rel *relay.Relay) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(stdhttp.StatusOK, rel.Snapshot())
	}
}
