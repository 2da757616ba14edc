package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arnelectric/storefront-backend/internal/adapters/repository"
	"github.com/arnelectric/storefront-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderWatcher struct {
	once  sync.Once
	ready chan struct{}
	fn    func(repository.OrderEvent)
}

func newStubOrderWatcher() *stubOrderWatcher {
	return &stubOrderWatcher{ready: make(chan struct{})}
}

func (w *stubOrderWatcher) WatchOrders(ctx context.Context, fn func(repository.OrderEvent)) error {
	w.once.Do(func() {
		w.fn = fn
		close(w.ready)
	})
	<-ctx.Done()
	return ctx.Err()
}

func (w *stubOrderWatcher) emit(t *testing.T, ev repository.OrderEvent) {
	t.Helper()
	select {
	case <-w.ready:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher was never started")
	}
	w.fn(ev)
}

func newStreamFixture(t *testing.T) (*StreamHandler, *stubOrderWatcher, *websocket.Conn) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	watcher := newStubOrderWatcher()
	handler := NewStreamHandler(watcher, nil)

	router := gin.New()
	router.GET("/stream", handler.AdminStream)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return handler, watcher, conn
}

func TestAdminStreamHandshakeThenEvents(t *testing.T) {
	_, watcher, conn := newStreamFixture(t)

	var hello streamMessage
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "system", hello.Channel)
	assert.Equal(t, "connected", hello.Type)

	watcher.emit(t, repository.OrderEvent{
		Type:  "insert",
		Order: models.Order{ID: "ARN-1", Status: models.StatusPending},
	})

	var msg streamMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "orders", msg.Channel)
	assert.Equal(t, "insert", msg.Type)
}

// Broadcasts and keep-alive pings share one connection; every write has
// to go through the per-client lock or gorilla panics the process.
func TestStreamWritesAreSerializedPerConnection(t *testing.T) {
	handler, _, conn := newStreamFixture(t)

	var hello streamMessage
	require.NoError(t, conn.ReadJSON(&hello))

	var client *streamClient
	require.Eventually(t, func() bool {
		handler.mu.Lock()
		defer handler.mu.Unlock()
		for cl := range handler.clients {
			client = cl
			return true
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	// Drain everything the server pushes; pongs are handled during reads.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				handler.broadcast(streamMessage{Channel: "orders", Type: "update"})
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 50; j++ {
			assert.NoError(t, client.ping())
		}
	}()
	wg.Wait()

	handler.mu.Lock()
	stillConnected := handler.clients[client]
	handler.mu.Unlock()
	assert.True(t, stillConnected)

	conn.Close()
	<-done
}
