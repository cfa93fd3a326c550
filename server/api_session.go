package consoleserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authapp "github.com/Apurer/pizzeria-console/internal/domains/auth/application"
)

// Session is the transport view of the console identity.
type Session struct {
	UserID    string `json:"userId"`
	Anonymous bool   `json:"anonymous"`
}

// SessionAPI exposes sign-in state.
type SessionAPI struct {
	auth *authapp.Service
}

func NewSessionAPI(auth *authapp.Service) *SessionAPI {
	return &SessionAPI{auth: auth}
}

// Post /v1/session
// Signs the console in, anonymously if needed
func (api *SessionAPI) EnsureSession(c *gin.Context) {
	session, err := api.auth.EnsureSession(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, Session{UserID: session.UserID, Anonymous: session.Anonymous})
}

// Delete /v1/session
// Forgets the stored identity
func (api *SessionAPI) SignOut(c *gin.Context) {
	if err := api.auth.SignOut(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
