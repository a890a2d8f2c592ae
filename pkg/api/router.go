package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/huynhanx03/gamekit/pkg/common/http/handler"
	"github.com/huynhanx03/gamekit/pkg/settings"
)

// NewRouter wires the session handler into a gin engine.
func NewRouter(cfg *settings.Server, h *SessionHandler) *gin.Engine {
	if cfg != nil && cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	sessions := r.Group("/sessions")
	{
		sessions.POST("", h.Create)
		sessions.GET("/:ref/slots", h.Slots)
		sessions.POST("/collect", handler.Wrap(h.Collect))
		sessions.POST("/cycle", handler.Wrap(h.Cycle))
		sessions.POST("/drop", handler.Wrap(h.Drop))
		sessions.POST("/resume", handler.Wrap(h.Resume))
		sessions.POST("/end", handler.Wrap(h.End))
	}
	return r
}

// Addr formats the listen address from server config.
func Addr(cfg *settings.Server) string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
