package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/librarium/internal/app/models/dto"
	"github.com/yigit/librarium/internal/pkg/apperrors"
	"github.com/yigit/librarium/internal/pkg/logger"
)

// HandleAPIError writes the error response matching err. Field errors keep
// their message and field; anything unrecognised is logged and hidden
// behind a 500.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := errorDetail(err)
	if status == http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("requestID", c.GetString(RequestIDKey)).
			Msg("Unhandled error")
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func errorDetail(err error) (int, *dto.ErrorDetail) {
	var fieldErr *apperrors.FieldError
	if errors.As(err, &fieldErr) {
		code := dto.ErrorCodeValidationFailed
		switch {
		case errors.Is(fieldErr.Kind, apperrors.ErrResourceAlreadyExists):
			return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, fieldErr.Message).WithField(fieldErr.Field)
		case errors.Is(err, apperrors.ErrNoSelection):
			code = dto.ErrorCodeNoSelection
		}
		return http.StatusBadRequest, dto.NewErrorDetail(code, fieldErr.Message).WithField(fieldErr.Field)
	}

	var custom *apperrors.CustomError
	errors.As(err, &custom)
	withContext := func(d *dto.ErrorDetail) *dto.ErrorDetail {
		if custom != nil {
			d.Field, d.Details = custom.Field, custom.Details
		}
		return d
	}

	switch {
	case errors.Is(err, apperrors.ErrUnknownModel):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeUnknownModel, err.Error())
	case errors.Is(err, apperrors.ErrUnknownAction):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeUnknownAction, err.Error())
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, withContext(dto.NewErrorDetail(dto.ErrorCodeBadRequest, err.Error()))
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrAuthRequired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid username or password")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
