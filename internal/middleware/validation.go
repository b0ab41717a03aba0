package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/librarium/internal/pkg/apperrors"
)

// BindJSON decodes the request body onto obj, which may already carry
// defaults. On failure it writes a 400 response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleAPIError(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		return apperrors.NewBadRequestError(typeErr.Field, "Invalid request body", fmt.Sprintf("expected %s", typeErr.Type))
	case errors.As(err, &syntaxErr):
		return apperrors.NewBadRequestError("", "Invalid request body", fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset))
	default:
		return apperrors.NewBadRequestError("", "Invalid request body", err.Error())
	}
}

// ParseIDParam reads a positive integer path parameter. On failure it
// writes a 400 response and returns false.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		HandleAPIError(c, apperrors.NewBadRequestError(name, "Invalid ID", "ID must be a positive integer"))
		return 0, false
	}
	return id, true
}
