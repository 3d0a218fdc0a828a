// Package stompframe parses, validates, and serializes STOMP 1.2
// frames. The body returned by Parse aliases the input buffer without
// copying; header values are copied into strings and do not alias it.
package stompframe
