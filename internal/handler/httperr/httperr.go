package httperr

import (
	"net/http"

	"rental-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const maxStackLines = 20

type ErrorBody struct {
	Code    string `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

type Response struct {
	Status int       `json:"-"`
	Error  ErrorBody `json:"error"`
	Detail any       `json:"detail,omitempty"`
}

// Diagnostics toggles stack lines in error bodies. Only set in development.
var Diagnostics bool

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = codeFor(status)
	resp.Error.Message = msg
	resp.Detail = detail
	if resp.Detail == nil && Diagnostics && status >= http.StatusInternalServerError {
		resp.Detail = gin.H{"stack": errs.ExtractStackLines(err, maxStackLines)}
	}

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithDomainError renders a tagged domain error with its own message; anything
// else is an internal error whose text never reaches the client.
func AbortWithDomainError(c *gin.Context, err error) {
	de, ok := errs.AsDomainError(err)
	if !ok {
		AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	status := StatusFor(de.Kind())
	resp := Response{Status: status}
	resp.Error.Code = codeFor(status)
	resp.Error.Reason = de.Reason()
	resp.Error.Message = de.Message()
	if Diagnostics {
		resp.Detail = gin.H{"stack": errs.ExtractStackLines(err, maxStackLines)}
	}

	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindBadRequest:
		return http.StatusBadRequest
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}
