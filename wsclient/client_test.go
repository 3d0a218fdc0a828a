package wsclient

import (
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer starts a TLS websocket echo-ish server and returns a
// Config wired to reach it, plus a teardown func. The server's own
// certificate is written out as the client's trusted CA, since this
// package refuses to fall back to the system root pool.
func newTestServer(t *testing.T, handler func(*websocket.Conn)) (Config, func()) {
	t.Helper()
	upgrader := websocket.Upgrader{}

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if handler != nil {
			handler(conn)
		}
	}))

	caPath := filepath.Join(t.TempDir(), "ca.pem")
	block := &pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw}
	require.NoError(t, os.WriteFile(caPath, pem.EncodeToMemory(block), 0o600))

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	cfg := Config{
		Endpoint: Endpoint{
			Host: u.Hostname(),
			Path: "/",
			Port: u.Port(),
		},
		CACertPath:     caPath,
		ConnectTimeout: 5 * time.Second,
	}
	return cfg, srv.Close
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func TestClientConnectReachesOpen(t *testing.T) {
	cfg, teardown := newTestServer(t, nil)
	defer teardown()

	c, err := NewClient(cfg, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	var connectErr error
	c.Connect(func(err error) {
		connectErr = err
		close(done)
	}, nil, nil)

	waitFor(t, done)
	assert.NoError(t, connectErr)
	assert.Equal(t, StateOpen, c.State())
}

func TestClientConnectResolveFailure(t *testing.T) {
	cfg, teardown := newTestServer(t, nil)
	teardown()

	cfg.Endpoint.Host = "no-such-host.invalid"
	c, err := NewClient(cfg, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	var connectErr error
	c.Connect(func(err error) {
		connectErr = err
		close(done)
	}, nil, nil)

	waitFor(t, done)
	require.Error(t, connectErr)
	var terr *TransportError
	require.ErrorAs(t, connectErr, &terr)
	assert.Equal(t, KindResolveError, terr.Kind)
	assert.Equal(t, StateFailed, c.State())
}

func TestClientReceivesMessage(t *testing.T) {
	cfg, teardown := newTestServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte("hello"))
	})
	defer teardown()

	c, err := NewClient(cfg, nil)
	require.NoError(t, err)

	connected := make(chan struct{})
	c.Connect(func(err error) { require.NoError(t, err); close(connected) }, nil, nil)
	waitFor(t, connected)

	received := make(chan string, 1)
	c2, err := NewClient(cfg, nil)
	require.NoError(t, err)
	done := make(chan struct{})
	c2.Connect(func(err error) { require.NoError(t, err); close(done) },
		func(err error, payload string) {
			require.NoError(t, err)
			received <- payload
		}, nil)
	waitFor(t, done)

	select {
	case msg := <-received:
		assert.Equal(t, "hello", msg)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestClientSendRejectsConcurrent(t *testing.T) {
	block := make(chan struct{})
	cfg, teardown := newTestServer(t, func(conn *websocket.Conn) {
		<-block
		conn.ReadMessage()
	})
	defer teardown()
	defer close(block)

	c, err := NewClient(cfg, nil)
	require.NoError(t, err)

	connected := make(chan struct{})
	c.Connect(func(err error) { require.NoError(t, err); close(connected) }, nil, nil)
	waitFor(t, connected)

	first := make(chan struct{})
	c.Send("one", func(err error, n int) { close(first) })

	second := make(chan error, 1)
	c.Send("two", func(err error, n int) { second <- err })

	select {
	case err := <-second:
		assert.ErrorIs(t, err, ErrBusyWrite)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ErrBusyWrite")
	}
	<-first
}

func TestClientCloseFiresOnDisconnectAsAborted(t *testing.T) {
	cfg, teardown := newTestServer(t, func(conn *websocket.Conn) {
		time.Sleep(3 * time.Second)
	})
	defer teardown()

	c, err := NewClient(cfg, nil)
	require.NoError(t, err)

	connected := make(chan struct{})
	disconnected := make(chan error, 1)
	c.Connect(func(err error) { require.NoError(t, err); close(connected) },
		nil,
		func(err error) { disconnected <- err })
	waitFor(t, connected)

	closed := make(chan struct{})
	c.Close(func(err error) {
		assert.NoError(t, err)
		close(closed)
	})
	waitFor(t, closed)
	assert.Equal(t, StateClosed, c.State())

	select {
	case err := <-disconnected:
		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, KindOperationAborted, terr.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for on_disconnect")
	}
}
