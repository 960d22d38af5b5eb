package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/jpkgen/jpk_wb_app/internal/core/ports/services"
	"github.com/jpkgen/jpk_wb_app/internal/middleware"
	"github.com/jpkgen/jpk_wb_app/internal/platform/config"
)

// RegisterRoutes wires the HTTP surface: health probe, CORS, and the
// versioned statement API. Uploads are rate limited per client IP.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) error {
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return err
	}
	uploadLimiter := middleware.RateLimit(limiter.New(memory.NewStore(), rate))

	v1 := r.Group("/api/v1")
	registerStatementRoutes(v1, services.IngestionSvc, services.ExportSvc, cfg.TempUploadDir, uploadLimiter)
	return nil
}
