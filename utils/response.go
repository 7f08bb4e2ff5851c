package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StandardResponse is the uniform envelope every endpoint answers with.
type StandardResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Errors     []APIError  `json:"errors"`
	Pagination interface{} `json:"pagination,omitempty"`
	Status     int         `json:"status"`
}

// APIError is one entry in the envelope's errors list.
type APIError struct {
	Name    string `json:"name"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Success sends a standardized success response
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    data,
		Message: message,
		Errors:  []APIError{},
		Status:  http.StatusOK,
	})
}

// Created sends a standardized created response (201)
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    data,
		Message: message,
		Errors:  []APIError{},
		Status:  http.StatusCreated,
	})
}

// SuccessWithPagination sends a success response carrying a pagination meta block
func SuccessWithPagination(c *gin.Context, message string, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       data,
		Message:    message,
		Errors:     []APIError{},
		Pagination: meta,
		Status:     http.StatusOK,
	})
}

// Error sends a standardized error response
func Error(c *gin.Context, statusCode int, name, message string) {
	c.JSON(statusCode, StandardResponse{
		Success: false,
		Message: message,
		Errors:  []APIError{{Name: name, Message: message}},
		Status:  statusCode,
	})
}

// SendAppError translates an AppError (or any error) into the envelope.
func SendAppError(c *gin.Context, err error) {
	if appErr := GetAppError(err); appErr != nil {
		Error(c, appErr.Code, appErr.Name, appErr.Message)
		return
	}
	InternalServerError(c, "An internal server error occurred. Please try again later.")
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, "FORBIDDEN", message)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, "NOT_FOUND", message)
}

// Conflict sends a 409 Conflict response
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, "CONFLICT", message)
}

// ValidationError sends a 422 Unprocessable Entity response
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", message)
}

// ValidationErrors sends a 422 response with one entry per failed field.
func ValidationErrors(c *gin.Context, errs FieldValidationErrors) {
	apiErrors := make([]APIError, 0, len(errs))
	for _, e := range errs {
		apiErrors = append(apiErrors, APIError{
			Name:    "VALIDATION_ERROR",
			Field:   e.Field,
			Message: e.Message,
		})
	}
	c.JSON(http.StatusUnprocessableEntity, StandardResponse{
		Success: false,
		Message: "The request contains invalid or unprocessable data.",
		Errors:  apiErrors,
		Status:  http.StatusUnprocessableEntity,
	})
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, "SERVER_ERROR", message)
}
