package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"studiodesk/internal/report"
	"studiodesk/pkg/database"
	"studiodesk/pkg/logger"
	"studiodesk/prometheus"
)

// GetDashboardStats handles the dashboard financial rollup
func GetDashboardStats(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.DashboardRequestsCounter.Inc()

	defer prometheus.TrackDBOperation("dashboard_rollup")(time.Now())
	stats, err := report.DashboardStats(database.GetDB(), time.Now())
	if err != nil {
		log.Error("Failed to build dashboard stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve dashboard stats"})
	}

	log.Info("Dashboard stats retrieved",
		zap.Int64("pending_count", stats.Pipeline.PendingCount),
		zap.Int("active_projects", len(stats.Projects)))
	return c.JSON(http.StatusOK, stats)
}
