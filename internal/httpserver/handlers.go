package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handlers binds the wire layer to the services. Validation and business
// rules live below; handlers only parse, delegate and translate errors.
type handlers struct {
	deps   Deps
	logger *zap.Logger
}

// pathID parses a numeric path parameter. A malformed id short-circuits the
// handler with a 400.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body. A malformed payload short-circuits with a 400.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return false
	}
	return true
}
