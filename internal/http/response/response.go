package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oumacavin/smartlearn-backend/internal/admin"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// FromResult writes a store envelope as-is, picking the HTTP status from the
// envelope's error code. The body is always the envelope itself so clients
// see one shape everywhere.
func FromResult(c *gin.Context, res admin.Result) {
	if res.Success {
		c.JSON(http.StatusOK, res)
		return
	}
	status := http.StatusInternalServerError
	if res.Error != nil {
		switch res.Error.Code {
		case admin.CodeNotFound:
			status = http.StatusNotFound
		case admin.CodeInvalidAction, admin.CodeValidationError:
			status = http.StatusBadRequest
		}
	}
	c.JSON(status, res)
}
