package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/transport/http/middleware"
	"github.com/ajayabd17/she-help-srm-safe/internal/usecase"
)

// DashboardHandler aggregates the student landing view: profile, own
// reports, active alert count, and the campus safety level.
type DashboardHandler struct {
	reports *usecase.ReportService
	sos     *usecase.SOSService
	safety  *usecase.SafetyService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(reports *usecase.ReportService, sos *usecase.SOSService, safety *usecase.SafetyService) *DashboardHandler {
	return &DashboardHandler{reports: reports, sos: sos, safety: safety}
}

// RegisterRoutes binds the dashboard route. The group must already require a
// session.
func (h *DashboardHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.get)
}

func (h *DashboardHandler) get(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}

	ctx := c.Request.Context()

	level, err := h.safety.Level(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to read safety status"))
		return
	}

	mine, err := h.reports.ListMine(ctx, *account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list reports"))
		return
	}

	alerts, err := h.sos.ListAlerts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list alerts"))
		return
	}

	active := 0
	for _, alert := range alerts {
		if alert.Status == domain.AlertStatusActive {
			active++
		}
	}

	c.JSON(http.StatusOK, DashboardResponse{
		User:         newAccountSummary(*account),
		SafetyLevel:  string(level),
		MyReports:    toReportResponses(mine),
		ActiveAlerts: active,
	})
}
