package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"powerflow/pkg/solver"
)

// RequestID tags every request with an id for log correlation, honoring one
// supplied by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// NewRouter wires the solving engine into the HTTP surface.
func NewRouter(engine *solver.Engine) *gin.Engine {
	router := gin.Default()
	router.Use(RequestID())

	h := NewHandler(engine)
	router.GET("/health", h.Health)
	router.POST("/run_pf", h.RunPF)

	return router
}
