package monitor

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/tubenet/networkmonitor/transportnetwork"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// feedEvent is the wire shape of a single passenger-event MESSAGE
// body. "in"/"out" are the only recognized kinds.
type feedEvent struct {
	StationID string `json:"station_id"`
	Kind      string `json:"kind"`
}

var errUnknownEventKind = errors.New("monitor: unrecognized passenger event kind")

// decodePassengerEvent is the one piece of domain logic the feed loop
// performs on a MESSAGE body before handing it to the network graph.
func decodePassengerEvent(body []byte) (transportnetwork.PassengerEvent, error) {
	var fe feedEvent
	if err := json.Unmarshal(body, &fe); err != nil {
		return transportnetwork.PassengerEvent{}, errors.Wrap(err, "monitor: decode passenger event")
	}

	var kind transportnetwork.PassengerEventKind
	switch fe.Kind {
	case "in":
		kind = transportnetwork.PassengerIn
	case "out":
		kind = transportnetwork.PassengerOut
	default:
		return transportnetwork.PassengerEvent{}, errors.Wrapf(errUnknownEventKind, "kind=%q", fe.Kind)
	}

	return transportnetwork.PassengerEvent{StationID: fe.StationID, Kind: kind}, nil
}
