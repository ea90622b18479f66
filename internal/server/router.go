package server

import "github.com/gin-gonic/gin"

func NewRouter(h *Handler, middleware ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(middleware...)

	r.GET("/", h.Home)
	r.GET("/stats", h.Stats)
	r.GET("/metrics", h.Metrics)
	r.GET("/traces", h.Traces)
	r.GET("/healthz", h.Health)

	return r
}
