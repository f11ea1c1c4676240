package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajayabd17/she-help-srm-safe/internal/usecase"
)

// SafetyHandler exposes the campus-wide safety level.
type SafetyHandler struct {
	safety *usecase.SafetyService
}

// NewSafetyHandler constructs SafetyHandler.
func NewSafetyHandler(safety *usecase.SafetyService) *SafetyHandler {
	return &SafetyHandler{safety: safety}
}

// RegisterRoutes binds the read endpoint. The level is visible to every
// logged-in account.
func (h *SafetyHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.get)
}

// RegisterAdminRoutes binds the write endpoint. The group must already
// require an administrator session.
func (h *SafetyHandler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.PUT("", h.set)
}

func (h *SafetyHandler) get(c *gin.Context) {
	level, err := h.safety.Level(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "failed to read safety status"))
		return
	}
	c.JSON(http.StatusOK, SafetyStatusResponse{Level: string(level)})
}

func (h *SafetyHandler) set(c *gin.Context) {
	var req SafetyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid safety status payload"))
		return
	}

	level, err := h.safety.SetLevel(c.Request.Context(), req.Level)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrValidation, Status: http.StatusBadRequest, Message: "unknown safety level"},
		}, http.StatusInternalServerError, "failed to update safety status")
		return
	}

	c.JSON(http.StatusOK, SafetyStatusResponse{Level: string(level)})
}
