package wsclient

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is the closed taxonomy of transport failures this client
// can surface. Each is delivered wrapped in a *TransportError through
// whichever callback is pending at the time of failure (see package
// doc).
type ErrorKind int

const (
	KindResolveError ErrorKind = iota
	KindConnectError
	KindTLSError
	KindHandshakeError
	KindReadError
	KindWriteError
	KindCloseError
	KindOperationAborted
)

func (k ErrorKind) String() string {
	switch k {
	case KindResolveError:
		return "ResolveError"
	case KindConnectError:
		return "ConnectError"
	case KindTLSError:
		return "TlsError"
	case KindHandshakeError:
		return "HandshakeError"
	case KindReadError:
		return "ReadError"
	case KindWriteError:
		return "WriteError"
	case KindCloseError:
		return "CloseError"
	case KindOperationAborted:
		return "OperationAborted"
	default:
		return "Unknown"
	}
}

// TransportError is the error type delivered through every wsclient
// callback. It wraps the underlying net/tls/websocket cause so callers
// can still errors.As down to it.
type TransportError struct {
	Kind  ErrorKind
	cause error
}

func newTransportError(kind ErrorKind, cause error) *TransportError {
	return &TransportError{Kind: kind, cause: errors.WithStack(cause)}
}

func (e *TransportError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("wsclient: %s", e.Kind)
	}
	return fmt.Sprintf("wsclient: %s: %s", e.Kind, e.cause)
}

func (e *TransportError) Unwrap() error {
	return e.cause
}

// ErrBusyWrite is returned by Send when a previous Send's on_send
// callback has not yet fired. The specification permits either
// queueing or rejecting a concurrent Send; this client rejects.
var ErrBusyWrite = errors.New("wsclient: a write is already in flight")

var errNoAddresses = errors.New("wsclient: DNS resolution returned no addresses")

// ErrNotOpen is delivered via on_send when Send is called outside
// StateOpen, and via on_close when Close is called on a session that
// is Idle or still connecting.
var ErrNotOpen = errors.New("wsclient: session is not open")
