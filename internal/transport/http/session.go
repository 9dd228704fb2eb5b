package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionIDValue = "sid"
	sessionIDKey   = "sessionID"
)

// SessionManager hands every browser a signed cookie carrying an opaque session id.
// The state behind the id lives in the app's SessionRepository, not in the cookie.
type SessionManager struct {
	store sessions.Store
	name  string
}

func NewSessionManager(secret []byte, name string, ttl time.Duration, secure bool) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store, name: name}
}

// Middleware resolves the session id for the request, issuing a new one when the
// cookie is missing or fails verification.
func (m *SessionManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := m.store.Get(c.Request, m.name)
		if err != nil {
			log.Printf("session cookie rejected: %v", err)
		}
		id, _ := session.Values[sessionIDValue].(string)
		if id == "" {
			id = uuid.NewString()
			session.Values[sessionIDValue] = id
			if err := session.Save(c.Request, c.Writer); err != nil {
				log.Printf("save session cookie: %v", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}
		c.Set(sessionIDKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
