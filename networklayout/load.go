package networklayout

import (
	"github.com/pkg/errors"

	"github.com/tubenet/networkmonitor/transportnetwork"
)

// ErrNonPositiveTravelTime is returned by Load when, after applying
// every travel time in the document, some edge is left at its zero
// value. A fully loaded network must have a strictly positive travel
// time on every edge.
var ErrNonPositiveTravelTime = errors.New("networklayout: network has an edge with non-positive travel time")

// Load populates net from doc: stations first, then lines (with all
// their routes), then travel times, in that order, finally verifying
// that every edge ended up with a strictly positive travel time. A
// failed network mutation is returned wrapped with the offending id; a
// failed final check returns ErrNonPositiveTravelTime itself. On any
// failure Load leaves net in an
// indeterminate, non-corrupt state; the caller is expected to discard
// it rather than keep using a partially loaded network.
func Load(net *transportnetwork.Network, doc Document) error {
	for _, s := range doc.Stations {
		station := transportnetwork.Station{ID: s.StationID, Name: s.Name}
		if err := net.AddStation(station); err != nil {
			return errors.Wrapf(err, "add station %q", s.StationID)
		}
	}

	for _, l := range doc.Lines {
		line := transportnetwork.Line{
			ID:     l.LineID,
			Name:   l.Name,
			Routes: make([]transportnetwork.Route, len(l.Routes)),
		}
		for i, r := range l.Routes {
			line.Routes[i] = transportnetwork.Route{
				ID:             r.RouteID,
				Direction:      r.Direction,
				LineID:         r.LineID,
				StartStationID: r.StartStationID,
				EndStationID:   r.EndStationID,
				Stops:          append([]string(nil), r.RouteStops...),
			}
		}
		if err := net.AddLine(line); err != nil {
			return errors.Wrapf(err, "add line %q", l.LineID)
		}
	}

	for _, tt := range doc.TravelTimes {
		if err := net.SetTravelTime(tt.StartStationID, tt.EndStationID, tt.TravelTime); err != nil {
			return errors.Wrapf(err, "set travel time %s -> %s", tt.StartStationID, tt.EndStationID)
		}
	}

	if err := verifyPositiveTravelTimes(net, doc); err != nil {
		return err
	}
	return nil
}

// verifyPositiveTravelTimes walks every route's consecutive stop pairs
// and confirms the resulting edge has a strictly positive travel time.
func verifyPositiveTravelTimes(net *transportnetwork.Network, doc Document) error {
	for _, l := range doc.Lines {
		for _, r := range l.Routes {
			for i := 0; i+1 < len(r.RouteStops); i++ {
				from, to := r.RouteStops[i], r.RouteStops[i+1]
				if net.TravelTimeAdjacent(from, to) == 0 {
					return ErrNonPositiveTravelTime
				}
			}
		}
	}
	return nil
}
