package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/transport/http/middleware"
	"github.com/ajayabd17/she-help-srm-safe/internal/usecase"
)

// ReportHandler exposes complaint submission and review endpoints.
type ReportHandler struct {
	reports *usecase.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *usecase.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes binds the student-facing complaint routes. The group must
// already require a session.
func (h *ReportHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.submit)
	r.GET("", h.listMine)
}

// RegisterAdminRoutes binds the review routes. The group must already
// require an administrator session.
func (h *ReportHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("", h.listAll)
	r.PATCH("/:id/status", h.updateStatus)
}

func (h *ReportHandler) submit(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}

	var req SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid report payload"))
		return
	}

	report, err := h.reports.Submit(c.Request.Context(), *account, usecase.SubmitReportInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    domain.ReportCategory(req.Category),
		Anonymous:   req.Anonymous,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrValidation, Status: http.StatusBadRequest, Message: err.Error()},
		}, http.StatusInternalServerError, "failed to submit report")
		return
	}

	c.JSON(http.StatusCreated, newReportResponse(usecase.ReportView{
		IncidentReport: report,
		SubmitterName:  account.Name,
		SubmitterEmail: account.Email,
	}))
}

func (h *ReportHandler) listMine(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}

	views, err := h.reports.ListMine(c.Request.Context(), *account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list reports"))
		return
	}

	c.JSON(http.StatusOK, toReportResponses(views))
}

func (h *ReportHandler) listAll(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}

	views, err := h.reports.ListAll(c.Request.Context(), *account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list reports"))
		return
	}

	c.JSON(http.StatusOK, toReportResponses(views))
}

func (h *ReportHandler) updateStatus(c *gin.Context) {
	var req UpdateReportStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid status payload"))
		return
	}

	err := h.reports.UpdateStatus(c.Request.Context(), c.Param("id"), domain.ReportStatus(req.Status))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrValidation, Status: http.StatusBadRequest, Message: err.Error()},
			{Err: usecase.ErrReportNotFound, Status: http.StatusNotFound, Message: "report not found"},
		}, http.StatusInternalServerError, "failed to update report status")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "status updated"})
}

func toReportResponses(views []usecase.ReportView) []ReportResponse {
	responses := make([]ReportResponse, 0, len(views))
	for _, v := range views {
		responses = append(responses, newReportResponse(v))
	}
	return responses
}
