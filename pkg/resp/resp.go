package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quickbite/pkg/apperr"
)

// All handlers answer with the same envelope: {"success": true, "data": ...}
// on success, {"success": false, "error": ...} on failure.

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": msg})
}

func Forbidden(c *gin.Context, msg string) {
	c.JSON(http.StatusForbidden, gin.H{"success": false, "error": msg})
}

func ValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "error": err.Error()})
}

// Error maps an application error to its status; unknown errors become a
// plain 500 without leaking internals.
func Error(c *gin.Context, err error) {
	ae := apperr.From(err)
	c.JSON(ae.Status, gin.H{"success": false, "error": ae.Message, "code": ae.Code})
}
