// Package networklayout converts a declarative network-layout document
// (as fetched and parsed by an external collaborator) into a populated
// transportnetwork.Network.
package networklayout

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/tubenet/networkmonitor/transportnetwork"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the top-level shape of a network-layout JSON document.
// Field names are wire-stable.
type Document struct {
	Stations     []StationDoc    `json:"stations"`
	Lines        []LineDoc       `json:"lines"`
	TravelTimes  []TravelTimeDoc `json:"travel_times"`
}

type StationDoc struct {
	StationID string `json:"station_id"`
	Name      string `json:"name"`
}

type LineDoc struct {
	LineID string     `json:"line_id"`
	Name   string     `json:"name"`
	Routes []RouteDoc `json:"routes"`
}

type RouteDoc struct {
	RouteID        string   `json:"route_id"`
	Direction      string   `json:"direction"`
	LineID         string   `json:"line_id"`
	StartStationID string   `json:"start_station_id"`
	EndStationID   string   `json:"end_station_id"`
	RouteStops     []string `json:"route_stops"`
}

type TravelTimeDoc struct {
	LineID         string `json:"line_id"`
	RouteID        string `json:"route_id"`
	StartStationID string `json:"start_station_id"`
	EndStationID   string `json:"end_station_id"`
	TravelTime     uint   `json:"travel_time"`
}

// Parse decodes a network-layout document from raw JSON bytes. Parse
// itself performs no network I/O and no disk access; src is expected
// to already be in memory, handed over by the file-downloading
// collaborator this package doesn't own.
func Parse(src []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(src, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}
