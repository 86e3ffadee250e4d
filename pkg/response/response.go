package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/pkg/apperror"
)

// CallerKey is the gin context key the auth middleware stores the caller under.
const CallerKey = "caller"

// GetCaller retrieves the caller context set by the auth middleware. Routes
// without the middleware see an anonymous caller.
func GetCaller(c *gin.Context) authz.Caller {
	v, exists := c.Get(CallerKey)
	if !exists {
		return authz.Anonymous()
	}
	caller, ok := v.(authz.Caller)
	if !ok {
		return authz.Anonymous()
	}
	return caller
}

// Error renders a failure as {"error": {"kind": ..., "message": ...}}. The
// kind/message pair is the whole outward contract; internal representations
// never leak into the body.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("[internal error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(code, gin.H{"error": gin.H{
			"kind":    apperror.KindInternal,
			"message": "internal server error",
		}})
		return
	}

	c.JSON(code, gin.H{"error": gin.H{
		"kind":    apperror.KindOf(err),
		"message": err.Error(),
	}})
}

// Message renders a human-readable confirmation.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
