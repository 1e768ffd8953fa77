package handler

import (
	"errors"
	"log"
	"net/http"

	"qrmenu/internal/domain"

	"github.com/gin-gonic/gin"
)

// respond writes the standard success envelope with the given payload
// merged in.
func respond(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// fail maps the error taxonomy to HTTP status codes and writes the failure
// envelope. Internal and upstream errors are logged with detail but the
// client only sees a generic message.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, domain.ErrAuthentication):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, domain.ErrUpstream):
		log.Printf("[http] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "upstream service failure"})
	default:
		log.Printf("[http] %s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}

// badRequest rejects malformed JSON bodies before they reach a service.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body: " + err.Error()})
}
