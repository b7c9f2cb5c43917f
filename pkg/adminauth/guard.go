package adminauth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/akeren/waitlist-api/internal/log"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

const (
	// PlaceholderSecret ships in example env files and never grants access.
	PlaceholderSecret = "your_admin_secret_key_here"

	QueryParam          = "secret"
	UnauthorizedMessage = "Unauthorized access"
)

// Guard checks a shared admin secret.
type Guard struct {
	secret []byte
}

func NewGuard(secret string) *Guard {
	secret = strings.TrimSpace(secret)
	if secret == PlaceholderSecret {
		secret = ""
	}

	return &Guard{secret: []byte(secret)}
}

// Configured is false when every request will be denied.
func (g *Guard) Configured() bool {
	return g != nil && len(g.secret) > 0
}

func (g *Guard) Authorize(credential string) bool {
	if !g.Configured() || credential == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(credential), g.secret) == 1
}

// Credentials returns the ?secret= value and the bearer token. Either may be empty.
func Credentials(r *http.Request) (query, bearer string) {
	query = r.URL.Query().Get(QueryParam)

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		bearer = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	return query, bearer
}

// AuthorizeRequest grants access when either credential source matches.
// Both sources are always compared.
func (g *Guard) AuthorizeRequest(r *http.Request) bool {
	query, bearer := Credentials(r)
	queryOK := g.Authorize(query)
	bearerOK := g.Authorize(bearer)
	return queryOK || bearerOK
}

// Middleware aborts with 401 unless the request carries the secret.
func (g *Guard) Middleware(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if g.AuthorizeRequest(c.Request) {
			c.Next()
			return
		}

		reason := "invalid_secret"
		if !g.Configured() {
			reason = "secret_not_configured"
		}

		log.GetLoggerInstanceFromContext(c.Request.Context(), logger).Warn("Admin authentication failed",
			"reason", reason,
			"path", c.Request.URL.Path,
			"remote_addr", c.ClientIP(),
		)

		c.AbortWithStatusJSON(apperrors.Render(apperrors.NewUnauthorizedError(UnauthorizedMessage, nil)))
	}
}
