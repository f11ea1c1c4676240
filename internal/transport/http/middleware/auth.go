package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ajayabd17/she-help-srm-safe/internal/core/domain"
	"github.com/ajayabd17/she-help-srm-safe/internal/usecase"
)

// ErrorResponse matches the handlers.ErrorResponse structure
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// newErrorResponse creates an error response with trace ID
func newErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	return ErrorResponse{
		Error:   errorMsg,
		TraceID: GetTraceID(c),
	}
}

// RequireSession resolves the stored session email against the account
// directory and attaches the account to the request context. A missing or
// stale session aborts with 401.
func RequireSession(sessions *usecase.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, err := sessions.Current(c.Request.Context())
		if err != nil {
			if errors.Is(err, usecase.ErrNoSession) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					newErrorResponse(c, "not logged in"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				newErrorResponse(c, "session lookup failed"))
			return
		}

		c.Set(AccountKey, account)
		if reqCtx := GetRequestContext(c); reqCtx != nil {
			reqCtx.AccountID = account.ID
		}

		c.Next()
	}
}

// RequireAdmin rejects non-administrator accounts. It must run after
// RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				newErrorResponse(c, "not logged in"))
			return
		}
		if !account.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden,
				newErrorResponse(c, "administrator access required"))
			return
		}

		c.Next()
	}
}

// CurrentAccount retrieves the session account stored by RequireSession.
func CurrentAccount(c *gin.Context) (*domain.Account, bool) {
	value, exists := c.Get(AccountKey)
	if !exists {
		return nil, false
	}
	account, ok := value.(*domain.Account)
	if !ok || account == nil {
		return nil, false
	}
	return account, true
}
