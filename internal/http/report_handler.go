package httpapi

import (
	"net/http"

	"hospital-data/internal/report"

	"github.com/gin-gonic/gin"
)

// GetReport: GET /api/v1/report
func GetReport(c *gin.Context) {
	c.JSON(http.StatusOK, Ok(report.Build()))
}

// GetReportChart: GET /api/v1/report/charts/:chart
func GetReportChart(c *gin.Context) {
	chart, ok := report.Build().Chart(c.Param("chart"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, Fail("unknown chart: "+c.Param("chart")))
		return
	}
	c.JSON(http.StatusOK, Ok(chart))
}
