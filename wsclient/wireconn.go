package wsclient

import "time"

// wireConn is the narrow capability set Client needs from an
// established WebSocket connection. Production code satisfies it with
// *websocket.Conn; tests can satisfy it with an in-memory fake without
// standing up a real TLS listener.
type wireConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetPongHandler(h func(appData string) error)
	Close() error
}

// idleTimeout bounds how long the connection may go without a pong
// before the read loop gives up and the session is treated as
// disconnected; only the pong handler pushes the read deadline out,
// other received frames do not. pingPeriod must stay comfortably below
// it so a healthy peer has time to answer at least one ping.
const (
	idleTimeout = 90 * time.Second
	pingPeriod  = 30 * time.Second
)
