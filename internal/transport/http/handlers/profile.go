package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/repository"
	"github.com/ajayabd17/she-help-srm-safe/internal/transport/http/middleware"
	"github.com/ajayabd17/she-help-srm-safe/internal/usecase"
)

// ProfileHandler exposes the logged-in account's profile.
type ProfileHandler struct {
	accounts *usecase.AccountService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(accounts *usecase.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// RegisterRoutes binds profile routes. The group must already require a session.
func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.get)
	r.PATCH("", h.update)
}

func (h *ProfileHandler) get(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}
	c.JSON(http.StatusOK, SessionResponse{User: newAccountSummary(*account)})
}

func (h *ProfileHandler) update(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid profile payload"))
		return
	}

	var year *int
	if req.Year != nil {
		y := int(*req.Year)
		year = &y
	}

	updated, err := h.accounts.UpdateProfile(c.Request.Context(), account.ID, domain.ProfileUpdate{
		Name:           req.Name,
		Department:     req.Department,
		Year:           year,
		RegisterNumber: req.RegisterNumber,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrValidation, Status: http.StatusBadRequest, Message: err.Error()},
			{Err: repository.ErrNotFound, Status: http.StatusNotFound, Message: "account not found"},
		}, http.StatusInternalServerError, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, SessionResponse{User: newAccountSummary(*updated)})
}
