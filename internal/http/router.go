package httpapi

import (
	"net/http"

	"hospital-data/internal/metrics"
	"hospital-data/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires every route onto a gin engine.
func NewRouter(svc *service.RecordService, rec *metrics.Recorder, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(logger), RequestLogger(logger, rec))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, Ok(gin.H{"status": "ok"}))
	})
	r.GET("/metrics", gin.WrapH(rec.Handler()))

	h := NewRecordsHandler(svc)
	api := r.Group("/api/v1", Session())
	{
		api.GET("/modules", h.ListModules)
		api.GET("/report", GetReport)
		api.GET("/report/charts/:chart", GetReportChart)
		api.GET("/drafts", h.SessionDrafts)
		api.DELETE("/drafts", h.DiscardSession)

		modules := api.Group("/modules/:module")
		{
			modules.GET("", h.GetModule)
			modules.GET("/:collection", h.List)
			modules.GET("/:collection/schema", h.Schema)
			modules.GET("/:collection/export", h.Export)
			modules.GET("/:collection/submissions", h.Submissions)
			modules.GET("/:collection/draft", h.GetDraft)
			modules.PUT("/:collection/draft", h.SetField)
			modules.DELETE("/:collection/draft", h.ResetDraft)
			modules.POST("/:collection/draft/submit", h.Submit)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, Fail("not found"))
	})
	return r
}
