package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/folio/internal/store"
)

const (
	viewCookie = "folio_view"
	viewKey    = "view"
)

// withView attaches the reader's own view state to the request. Readers are
// told apart by a random cookie; a missing or malformed one starts a fresh
// view.
func (s *Server) withView() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(viewCookie)
		if err != nil {
			id = uuid.NewString()
		} else if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(viewCookie, id, int(s.viewIdle.Seconds()), "/", "", false, true)
		c.Set(viewKey, s.views.Get(id))
		c.Next()
	}
}

func viewOf(c *gin.Context) *store.View {
	return c.MustGet(viewKey).(*store.View)
}
