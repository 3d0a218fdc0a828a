package transportnetwork

import "github.com/pkg/errors"

// Mutation and query failures. Query operations that must answer
// (PassengerCount, RoutesServing) fail with one of these; travel-time
// queries never fail, returning the sentinel 0 instead (see
// TravelTime, TravelTimeAdjacent).
var (
	ErrDuplicateStation = errors.New("transportnetwork: station already exists")
	ErrDuplicateLine    = errors.New("transportnetwork: line already exists")
	ErrDuplicateRoute   = errors.New("transportnetwork: route already exists")
	ErrUnknownStation   = errors.New("transportnetwork: unknown station")
	ErrNotAdjacent      = errors.New("transportnetwork: stations are not adjacent")
)
