package wsclient

import (
	"time"

	"github.com/gorilla/websocket"
)

// armIdleDeadline sets the read deadline and installs the pong
// handler that pushes it back out. Must be called from the strand
// with conn already set. The lower TCP-level connect deadline is
// retired once Open; this is the idle policy that replaces it.
func (c *Client) armIdleDeadline() {
	conn := c.conn
	conn.SetReadDeadline(deadlineIn(idleTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(deadlineIn(idleTimeout))
		return nil
	})
}

// startPingLoop pings the peer on pingPeriod while the session is
// Open. It exits on its own once a ping write fails or the strand
// reports the session has left Open.
func (c *Client) startPingLoop() {
	c.pingDone = make(chan struct{})
	done := c.pingDone
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				result := make(chan bool, 1)
				c.post(func() {
					if c.state != StateOpen {
						result <- false
						return
					}
					if c.writeInFlight {
						result <- true
						return
					}
					err := c.conn.WriteControl(websocket.PingMessage, nil, deadlineIn(closeDeadline))
					result <- err == nil
				})
				if !<-result {
					return
				}
			}
		}
	}()
}

func (c *Client) stopPingLoop() {
	if c.pingDone != nil {
		close(c.pingDone)
		c.pingDone = nil
	}
}
