package wsclient

import (
	"errors"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// closeDeadline bounds how long the close control frame write may
// block before the client gives up and tears down the connection
// anyway.
const closeDeadline = 5 * time.Second

func deadlineIn(d time.Duration) time.Time {
	return time.Now().Add(d)
}

// startReadLoop arms the single outstanding read for the session. It
// must only be called from the strand, with the session already Open.
// Each completed read posts its result back onto the strand, then
// re-arms the next read -- enforcing "at most one read in flight" and
// "messages delivered in arrival order" by construction: there is only
// ever one goroutine calling ReadMessage for this connection.
func (c *Client) startReadLoop() {
	conn := c.conn
	go func() {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.handleReadError(err)
			return
		}
		c.post(func() {
			if c.state != StateOpen {
				return
			}
			if c.onMessage != nil {
				c.onMessage(nil, string(data))
			}
			c.startReadLoop()
		})
	}()
}

// handleReadError classifies a terminal read failure and routes it to
// on_disconnect, never on_message: in this unidirectional feed client,
// a remote-initiated close or our own Close() canceling the
// outstanding read surfaces as OperationAborted, and any other read
// failure (an expired idle deadline, a broken connection) as
// ReadError. on_disconnect fires even when Close's own completion has
// already moved the session to Closed or Failed.
func (c *Client) handleReadError(err error) {
	c.post(func() {
		kind := KindReadError
		if isAbortedRead(err) {
			kind = KindOperationAborted
		}
		if c.state == StateOpen || c.state == StateClosing {
			c.state = StateClosed
		}
		c.stopPingLoop()
		if c.onDisconnect != nil {
			c.onDisconnect(newTransportError(kind, err))
		}
	})
}

func isAbortedRead(err error) bool {
	if errors.Is(err, net.ErrClosed) {
		return true
	}
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return true
	}
	return false
}

// Send enqueues a single text payload. Calling Send while the session
// is not Open fails immediately with ErrNotOpen. Calling Send again
// before the previous call's on_send has fired fails immediately with
// ErrBusyWrite -- the specification permits either queueing or
// rejecting, and this client rejects.
func (c *Client) Send(text string, onSend OnSend) {
	c.post(func() {
		if c.state != StateOpen {
			if onSend != nil {
				onSend(ErrNotOpen, 0)
			}
			return
		}
		if c.writeInFlight {
			if onSend != nil {
				onSend(ErrBusyWrite, 0)
			}
			return
		}
		c.writeInFlight = true
		conn := c.conn
		go func() {
			err := conn.WriteMessage(websocket.TextMessage, []byte(text))
			c.post(func() {
				c.writeInFlight = false
				if err != nil {
					if onSend != nil {
						onSend(newTransportError(KindWriteError, err), 0)
					}
					return
				}
				if onSend != nil {
					onSend(nil, len(text))
				}
			})
		}()
	})
}

// Close initiates a graceful close. It cancels the outstanding read
// (surfacing OperationAborted to on_disconnect, see handleReadError)
// and fires onClose exactly once when the session reaches Closed or
// Failed. Closing an already-Closed/Failed session (including one whose
// connect attempt failed) is idempotent and succeeds; closing one that
// is Idle or still connecting fails with ErrNotOpen, since there is no
// open session to close gracefully.
func (c *Client) Close(onClose OnClose) {
	c.post(func() {
		if c.state == StateClosed || c.state == StateFailed {
			if onClose != nil {
				onClose(nil)
			}
			return
		}
		if c.state != StateOpen && c.state != StateClosing {
			if onClose != nil {
				onClose(ErrNotOpen)
			}
			return
		}
		c.state = StateClosing
		c.stopPingLoop()
		conn := c.conn
		go func() {
			writeErr := conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				deadlineIn(closeDeadline),
			)
			closeErr := conn.Close()
			c.post(func() {
				if writeErr != nil {
					c.state = StateFailed
					if onClose != nil {
						onClose(newTransportError(KindCloseError, writeErr))
					}
					return
				}
				if closeErr != nil {
					c.state = StateFailed
					if onClose != nil {
						onClose(newTransportError(KindCloseError, closeErr))
					}
					return
				}
				c.state = StateClosed
				if onClose != nil {
					onClose(nil)
				}
			})
		}()
	})
}
