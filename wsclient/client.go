// Package wsclient is a single-connection, asynchronous, secure
// WebSocket client layered over TCP -> TLS -> WebSocket, exposing a
// callback-oriented connect/send/close contract.
//
// The cooperative reactor this client assumes (per the package's
// specification) is modeled with a "strand": a single goroutine that
// owns all mutable session state and drains a queue of closures.
// connect/send/close post a closure onto that queue; the actual
// blocking I/O for an operation runs on its own short-lived goroutine,
// which reports back onto the strand when it completes. This is the
// idiomatic Go translation of a Boost.Asio-style strand: goroutines
// are cheap enough that parking one per in-flight I/O op stands in for
// true non-blocking completion-based I/O, while the strand channel
// guarantees state transitions and callback invocations are never
// concurrent with one another.
package wsclient

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// DefaultConnectTimeout bounds DNS resolution, the TCP handshake and
// the TLS handshake, per the specification's default of 60 seconds.
const DefaultConnectTimeout = 60 * time.Second

// OnConnect is invoked exactly once per Connect call made while the
// session is Idle, when the session reaches StateOpen or StateFailed.
// A Connect call made in any other state is ignored and its OnConnect
// is never invoked.
type OnConnect func(err error)

// OnMessage is invoked once per successfully received text payload
// while the session is Open. ownership of payload passes to the
// handler.
type OnMessage func(err error, payload string)

// OnSend is invoked exactly once per Send call.
type OnSend func(err error, bytesWritten int)

// OnClose is invoked exactly once per Close call, when the session
// reaches StateClosed or StateFailed.
type OnClose func(err error)

// OnDisconnect is invoked when the session's read loop ends: a
// remote-initiated close, a read failure, or the aborted read caused
// by Close canceling the outstanding read.
type OnDisconnect func(err error)

// Client is a single WebSocket session. The zero value is not usable;
// construct one with NewClient.
type Client struct {
	cfg Config
	log *logrus.Entry

	strand chan func()

	state         State
	conn          wireConn
	tlsConn       net.Conn
	onMessage     OnMessage
	onDisconnect  OnDisconnect
	writeInFlight bool
	pingDone      chan struct{}
}

// NewClient constructs a Client for the given endpoint. It does not
// initiate a connection; call Connect to do that. NewClient fails only
// if the CA certificate file cannot be read or contains no usable
// certificate.
func NewClient(cfg Config, log *logrus.Entry) (*Client, error) {
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if _, err := loadTLSConfig(cfg.Endpoint.Host, cfg.CACertPath); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:    cfg,
		log:    log,
		strand: make(chan func()),
		state:  StateIdle,
	}
	go c.run()
	return c, nil
}

func (c *Client) run() {
	for fn := range c.strand {
		fn()
	}
}

func (c *Client) post(fn func()) {
	c.strand <- fn
}

// State returns the session's current state. Safe to call from any
// goroutine: it round-trips through the strand.
func (c *Client) State() State {
	result := make(chan State, 1)
	c.post(func() { result <- c.state })
	return <-result
}

// Connect initiates the Idle -> ... -> Open transition. onConnect
// fires exactly once, whether the session reaches Open or Failed. If
// the session is not Idle, the call is logged and ignored, and
// onConnect is not invoked.
func (c *Client) Connect(onConnect OnConnect, onMessage OnMessage, onDisconnect OnDisconnect) {
	c.post(func() {
		if c.state != StateIdle {
			c.log.Warn("wsclient: Connect called while not Idle, ignoring")
			return
		}
		c.onMessage = onMessage
		c.onDisconnect = onDisconnect
		c.state = StateResolving
		go c.dial(onConnect)
	})
}

// dial runs off the strand: it performs DNS resolution, TCP connect,
// TLS handshake, and the WebSocket upgrade handshake in sequence,
// reporting each phase's state transition back onto the strand, and
// finally posting the terminal onConnect callback.
func (c *Client) dial(onConnect OnConnect) {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.ConnectTimeout)
	defer cancel()

	host, port, path := c.cfg.Endpoint.Host, c.cfg.Endpoint.Port, c.cfg.Endpoint.Path

	resolver := &net.Resolver{}
	addrs, err := resolver.LookupIPAddr(ctx, host)
	if err != nil {
		c.failConnect(KindResolveError, err, onConnect)
		return
	}
	if len(addrs) == 0 {
		c.failConnect(KindResolveError, errNoAddresses, onConnect)
		return
	}

	c.post(func() { c.state = StateConnecting })

	dialer := &net.Dialer{}
	tcpConn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(addrs[0].String(), port))
	if err != nil {
		c.failConnect(KindConnectError, err, onConnect)
		return
	}

	c.post(func() { c.state = StateTLSHandshaking })

	tlsConfig, err := loadTLSConfig(host, c.cfg.CACertPath)
	if err != nil {
		tcpConn.Close()
		c.failConnect(KindTLSError, err, onConnect)
		return
	}
	tlsConn := tls.Client(tcpConn, tlsConfig)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		tcpConn.Close()
		c.failConnect(KindTLSError, err, onConnect)
		return
	}

	c.post(func() { c.state = StateWSHandshaking })

	u := &url.URL{Scheme: "wss", Host: net.JoinHostPort(host, port), Path: path}
	header := http.Header{}
	header.Set("Host", host)
	wsConn, _, err := websocket.NewClient(tlsConn, u, header, 0, 0)
	if err != nil {
		tlsConn.Close()
		c.failConnect(KindHandshakeError, err, onConnect)
		return
	}

	c.post(func() {
		c.conn = wsConn
		c.tlsConn = tlsConn
		c.state = StateOpen
		c.armIdleDeadline()
		if onConnect != nil {
			onConnect(nil)
		}
		c.startReadLoop()
		c.startPingLoop()
	})
}

func (c *Client) failConnect(kind ErrorKind, cause error, onConnect OnConnect) {
	c.post(func() {
		c.state = StateFailed
		if onConnect != nil {
			onConnect(newTransportError(kind, cause))
		}
	})
}
