package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajayabd17/she-help-srm-safe/internal/repository"
	"github.com/ajayabd17/she-help-srm-safe/internal/transport/http/middleware"
	"github.com/ajayabd17/she-help-srm-safe/internal/usecase"
)

// AuthHandler exposes registration, login, logout, and session endpoints.
type AuthHandler struct {
	accounts *usecase.AccountService
	sessions *usecase.SessionService
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(accounts *usecase.AccountService, sessions *usecase.SessionService) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

// RegisterRoutes binds authentication routes.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup, sessionMiddleware gin.HandlerFunc) {
	r.POST("/register", h.register)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)
	r.GET("/session", sessionMiddleware, h.session)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid registration payload"))
		return
	}

	account, err := h.accounts.Register(c.Request.Context(), usecase.RegisterInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Department:     req.Department,
		Year:           int(req.Year),
		RegisterNumber: req.RegisterNumber,
	})
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: repository.ErrEmailExists, Status: http.StatusConflict, Message: "email already registered"},
			{Err: usecase.ErrInvalidEmailDomain, Status: http.StatusBadRequest, Message: "email must be a university address"},
			{Err: usecase.ErrPasswordPolicyViolation, Status: http.StatusBadRequest, Message: "password does not meet requirements"},
			{Err: usecase.ErrValidation, Status: http.StatusBadRequest, Message: err.Error()},
		}, http.StatusInternalServerError, "failed to register")
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{User: newAccountSummary(account)})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid login payload"))
		return
	}

	account, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrInvalidCredentials, Status: http.StatusUnauthorized, Message: "invalid email or password"},
		}, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, SessionResponse{User: newAccountSummary(*account)})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, NewErrorResponse(c, "logout failed"))
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "logged out"})
}

func (h *AuthHandler) session(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "not logged in"))
		return
	}
	c.JSON(http.StatusOK, SessionResponse{User: newAccountSummary(*account)})
}
