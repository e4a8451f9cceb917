package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/jwalitptl/doctor-api/pkg/errors"
	"github.com/jwalitptl/doctor-api/pkg/httputil"
	"github.com/jwalitptl/doctor-api/pkg/validator"
)

// BindJSON decodes the request body into obj and answers 400 on failure.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		message := "invalid request body"
		if validator.IsValidationError(err) {
			message = validator.Message(err)
		}
		httputil.RespondWithError(c, apperrors.BadRequest(message, err))
		return false
	}
	return true
}

// ParamID parses the named path parameter as a UUID and answers 400 on failure.
func ParamID(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid "+what+" ID", err))
		return uuid.Nil, false
	}
	return id, true
}
