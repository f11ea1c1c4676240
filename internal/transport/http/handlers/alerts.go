package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/port"
	"github.com/ajayabd17/she-help-srm-safe/internal/repository"
	"github.com/ajayabd17/she-help-srm-safe/internal/transport/http/middleware"
	"github.com/ajayabd17/she-help-srm-safe/internal/usecase"
)

// AlertHandler exposes the SOS flow and the admin alert console.
type AlertHandler struct {
	sos       *usecase.SOSService
	directory port.AccountDirectory
}

// NewAlertHandler constructs AlertHandler.
func NewAlertHandler(sos *usecase.SOSService, directory port.AccountDirectory) *AlertHandler {
	return &AlertHandler{sos: sos, directory: directory}
}

// RegisterRoutes binds the student-facing SOS routes. The group must already
// require a session.
func (h *AlertHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/press", h.press)
	r.POST("/release", h.release)
	r.POST("/trigger", h.trigger)
	r.GET("/state", h.state)
}

// RegisterAdminRoutes binds the alert console routes. The group must already
// require an administrator session.
func (h *AlertHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("", h.list)
	r.POST("/:id/resolve", h.resolve)
}

func (h *AlertHandler) press(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}

	// An empty body means geolocation was denied on the device.
	var req SOSPressRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid press payload"))
		return
	}

	state := h.sos.Press(c.Request.Context(), *account, req.Coordinates.toDomain())
	c.JSON(http.StatusAccepted, SOSStateResponse{State: string(state)})
}

func (h *AlertHandler) release(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}

	state := h.sos.Release(c.Request.Context(), account.ID)
	c.JSON(http.StatusOK, SOSStateResponse{State: string(state)})
}

// trigger activates an alert immediately, bypassing the hold threshold. It
// always reports success.
func (h *AlertHandler) trigger(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}

	var req SOSPressRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid trigger payload"))
		return
	}

	alert := h.sos.Trigger(c.Request.Context(), *account, req.Coordinates.toDomain())
	c.JSON(http.StatusCreated, newAlertResponse(alert))
}

func (h *AlertHandler) state(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}

	c.JSON(http.StatusOK, SOSStateResponse{State: string(h.sos.State(account.ID))})
}

func (h *AlertHandler) list(c *gin.Context) {
	alerts, err := h.sos.ListAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to list alerts"))
		return
	}

	responses := make([]AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		resp := newAlertResponse(alert)

		submitter, err := h.directory.FindByID(c.Request.Context(), alert.AccountID)
		if err == nil {
			resp.Submitter = &AlertSubmitterInfo{Name: submitter.Name, Email: submitter.Email}
		} else if !errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to resolve alert submitter"))
			return
		}

		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, responses)
}

func (h *AlertHandler) resolve(c *gin.Context) {
	if err := h.sos.Resolve(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to resolve alert"))
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "alert resolved"})
}
