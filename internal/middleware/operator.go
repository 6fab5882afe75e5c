package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const OperatorKey = "operator"

// OperatorIdentity extracts the operator name from the X-Operator header.
// Requests without the header pass through anonymously; endpoints that
// trigger external automations gate on RequireOperator instead.
func OperatorIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		operator := strings.TrimSpace(c.GetHeader("X-Operator"))
		if operator == "" {
			c.Next()
			return
		}

		c.Set(OperatorKey, operator)
		c.Next()
	}
}

// GetOperator retrieves the operator name from the context
func GetOperator(c *gin.Context) (string, bool) {
	operator, exists := c.Get(OperatorKey)
	if !exists {
		return "", false
	}
	return operator.(string), true
}

// RequireOperator ensures the request carries an operator identity
func RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetOperator(c); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "operator identity required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
