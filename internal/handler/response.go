package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelmate/marketplace-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps the error taxonomy onto HTTP statuses: validation 400,
// unauthorized 401, not found 404, disallowed transition 409, everything
// else (storage included) 500.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.IsUnauthorized(err):
		status = http.StatusUnauthorized
	case errors.IsNotFound(err):
		status = http.StatusNotFound
	case errors.IsInvalidState(err):
		status = http.StatusConflict
	}
	c.JSON(status, NewErrorResponse(err.Error()))
}
