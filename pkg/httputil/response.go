package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/doctor-api/pkg/errors"
)

// GenericErrorMessage is returned for every failure that is not a client error.
const GenericErrorMessage = "server error"

// ErrorBody is the envelope of every error response.
type ErrorBody struct {
	Message string `json:"message"`
}

// RespondWithError maps err onto a status code and writes the error envelope.
// Details of unclassified errors are logged, never returned.
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := GenericErrorMessage

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		status = appErr.StatusCode()
		if status != http.StatusInternalServerError {
			message = appErr.Message
		}
	}

	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Str("request_id", c.GetString("request_id")).
		Int("status", status).
		Msg("request failed")

	c.AbortWithStatusJSON(status, ErrorBody{Message: message})
}

// RespondWithMessage writes a bare message envelope with the given status.
func RespondWithMessage(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Message: message})
}
