package response

import (
	"net/http"

	"blog_crud_jwt/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response wrapper.
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Success writes a 200 envelope with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Data: data})
}

// Created writes a 201 envelope with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Status: StatusSuccess, Data: data})
}

// Deleted writes a 202 envelope with a message, used after removals.
func Deleted(c *gin.Context, message string) {
	c.JSON(http.StatusAccepted, Envelope{Status: StatusSuccess, Message: message})
}

// Message writes a 200 envelope with a message only, used by toggles.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Message: message})
}

// Error writes an error envelope with an explicit status code.
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, Envelope{Status: StatusError, Message: message})
}

// HandleError maps a service error to its HTTP status and envelope.
func HandleError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindConflict:
		Error(c, http.StatusUnprocessableEntity, err.Error())
	case apperr.KindNotFound:
		Error(c, http.StatusNotFound, err.Error())
	case apperr.KindAuth:
		Error(c, http.StatusBadRequest, err.Error())
	case apperr.KindForbidden:
		Error(c, http.StatusForbidden, err.Error())
	default:
		Error(c, http.StatusInternalServerError, "Something went wrong.")
	}
}
