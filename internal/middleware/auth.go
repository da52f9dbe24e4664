package middleware

import (
	"net/http"
	"strings"

	"gitfolio-core/internal/application/dto"

	"github.com/gin-gonic/gin"
)

// tokenContextKey is where the extracted GitHub token is stored in the gin
// context. The token is never logged or echoed back.
const tokenContextKey = "github_token"

// RequireGitHubToken extracts the GitHub token from the Authorization header
// and aborts with 401 when it is missing or malformed. Both the "Bearer" and
// GitHub's legacy "token" schemes are accepted. No local validation is
// performed; the upstream API is the authority on the credential.
func RequireGitHubToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: dto.ErrorDetail{
					Kind:    "auth",
					Message: "Authorization header is required",
				},
			})
			c.Abort()
			return
		}

		token := extractToken(authHeader)
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: dto.ErrorDetail{
					Kind:    "auth",
					Message: "Authorization header must be of the form 'Bearer <token>'",
				},
			})
			c.Abort()
			return
		}

		c.Set(tokenContextKey, token)
		c.Next()
	}
}

// TokenFromContext returns the GitHub token stored by RequireGitHubToken
func TokenFromContext(c *gin.Context) string {
	token, _ := c.Get(tokenContextKey)
	if s, ok := token.(string); ok {
		return s
	}
	return ""
}

// extractToken parses an Authorization header value. Returns an empty string
// when the header does not carry a usable credential.
func extractToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return ""
	}
	scheme := strings.ToLower(parts[0])
	if scheme != "bearer" && scheme != "token" {
		return ""
	}
	return parts[1]
}
