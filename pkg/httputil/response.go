package httputil

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validator "github.com/go-playground/validator/v10"

	"github.com/thelivecure/admin-api/pkg/errors"
)

// Response is the envelope returned by every endpoint
type Response struct {
	Message string      `json:"message,omitempty"`
	Body    interface{} `json:"body,omitempty"`
}

// PageMeta carries pagination metadata for list responses
type PageMeta struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int64 `json:"itemsPerPage"`
}

// NewPageMeta computes pagination metadata from a total count
func NewPageMeta(page, limit, total int64) PageMeta {
	if limit <= 0 {
		limit = 1
	}
	return PageMeta{
		CurrentPage:  page,
		TotalPages:   (total + limit - 1) / limit,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

// OK sends a 200 response with a body
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, Response{Body: body})
}

// OKMessage sends a 200 response with a message and body
func OKMessage(c *gin.Context, message string, body interface{}) {
	c.JSON(http.StatusOK, Response{Message: message, Body: body})
}

// Created sends a 201 response with a message and body
func Created(c *gin.Context, message string, body interface{}) {
	c.JSON(http.StatusCreated, Response{Message: message, Body: body})
}

// Error translates an error into the envelope with the mapped status.
// AppErrors map through their code; anything else is a 500 with the
// underlying message surfaced.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	if appErr, ok := errors.AsAppError(err); ok {
		status = appErr.StatusCode()
		message = appErr.Message
	}

	c.JSON(status, Response{Message: message})
}

// BindError sends a 400 for a failed request bind. Field validation
// failures are flattened into readable messages instead of the raw
// validator error string.
func BindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		BadRequest(c, "validation failed: "+strings.Join(parts, ", "))
		return
	}
	BadRequest(c, err.Error())
}

// BadRequest sends a 400 with the given message
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Message: message})
}

// NotFound sends a 404 with the given message
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{Message: message})
}
