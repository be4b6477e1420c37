package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/folio/internal/store"
)

// broker fans store changes out to the open event streams. A stream that
// falls behind misses changes rather than holding up the store.
type broker struct {
	mu      sync.Mutex
	clients map[chan store.Change]struct{}
}

func newBroker() *broker {
	return &broker{clients: make(map[chan store.Change]struct{})}
}

func (b *broker) add() chan store.Change {
	ch := make(chan store.Change, 16)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *broker) remove(ch chan store.Change) {
	b.mu.Lock()
	delete(b.clients, ch)
	b.mu.Unlock()
}

func (b *broker) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

func (b *broker) publish(c store.Change) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- c:
		default:
		}
	}
}

// publishShared passes on what every reader shares: content and the loading
// flag. The Store's own view is not any reader's.
func (b *broker) publishShared(c store.Change) {
	if c.Kind == store.ChangeContent || c.Kind == store.ChangeLoading {
		b.publish(c)
	}
}

// handleEvents streams content changes and the reader's own section and
// theme changes as server-sent events. The first event is the current view
// state.
func (s *Server) handleEvents(c *gin.Context) {
	v := viewOf(c)
	ch := s.events.add()
	defer s.events.remove(ch)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("state", s.viewState(v))
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			s.log.Debug("event stream closed", zap.String("requestID", c.GetString("requestID")))
			return
		case change := <-ch:
			if change.View != "" && change.View != v.ID() {
				continue
			}
			c.SSEvent(string(change.Kind), change)
			c.Writer.Flush()
		}
	}
}
