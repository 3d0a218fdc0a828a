// Package transportnetwork models an underground transport network as
// a directed multigraph of stations and lines/routes. The network is
// not safe for concurrent use: it is owned by one logical actor (the
// monitor's strand goroutine, see the wsclient/monitor packages) and
// must only be mutated or queried from that actor's context.
package transportnetwork

// node is a station plus the edges leaving it and its passenger
// tally. All cross-references inside Network are ids resolved by map
// lookup, never live pointers between Route/Line/Station values, so
// the owned data can never form a reference cycle.
type node struct {
	station    Station
	edges      map[Id]*edge // keyed by destination station id
	passengers int64
	routes     map[Id]struct{} // route ids serving this station
}

// Network is a directed multigraph of stations and lines/routes. The
// zero value is not usable; construct one with NewNetwork.
type Network struct {
	stations map[Id]*node
	lines    map[Id]*Line
	routes   map[Id]*Route // routeID -> route (route.LineID names its line)
}

// NewNetwork returns an empty, ready-to-use Network.
func NewNetwork() *Network {
	return &Network{
		stations: make(map[Id]*node),
		lines:    make(map[Id]*Line),
		routes:   make(map[Id]*Route),
	}
}

// AddStation adds a station to the network. It fails if a station
// with the same id is already present.
func (n *Network) AddStation(s Station) error {
	if _, exists := n.stations[s.ID]; exists {
		return ErrDuplicateStation
	}
	n.stations[s.ID] = &node{
		station: s,
		edges:   make(map[Id]*edge),
		routes:  make(map[Id]struct{}),
	}
	return nil
}

// AddLine adds a line and all of its routes to the network. Every
// station referenced by every route (including intermediate stops)
// must already be present, and neither the line nor any of its routes
// may already exist. On any failure the network is left unchanged.
func (n *Network) AddLine(l Line) error {
	if _, exists := n.lines[l.ID]; exists {
		return ErrDuplicateLine
	}
	for _, r := range l.Routes {
		if _, exists := n.routes[r.ID]; exists {
			return ErrDuplicateRoute
		}
		if err := n.validateRouteStations(r); err != nil {
			return err
		}
	}

	stored := l
	stored.Routes = append([]Route(nil), l.Routes...)
	n.lines[l.ID] = &stored

	for i := range stored.Routes {
		r := &stored.Routes[i]
		n.routes[r.ID] = r
		n.linkRoute(r)
	}
	return nil
}

func (n *Network) validateRouteStations(r Route) error {
	if _, ok := n.stations[r.StartStationID]; !ok {
		return ErrUnknownStation
	}
	if _, ok := n.stations[r.EndStationID]; !ok {
		return ErrUnknownStation
	}
	for _, sid := range r.Stops {
		if _, ok := n.stations[sid]; !ok {
			return ErrUnknownStation
		}
	}
	return nil
}

// linkRoute records the route against every station it serves and
// creates an edge for every consecutive stop pair that doesn't
// already have one in that direction.
func (n *Network) linkRoute(r *Route) {
	for _, sid := range r.Stops {
		n.stations[sid].routes[r.ID] = struct{}{}
	}
	for i := 0; i+1 < len(r.Stops); i++ {
		from, to := r.Stops[i], r.Stops[i+1]
		fromNode := n.stations[from]
		if _, exists := fromNode.edges[to]; exists {
			continue
		}
		fromNode.edges[to] = &edge{
			lineID:  r.LineID,
			routeID: r.ID,
			to:      to,
		}
	}
}

// RecordPassengerEvent applies a passenger entering or leaving a
// station. The resulting count may go negative if events were
// recorded starting mid-day, after more exits than entries; this is
// by design, not a bug.
func (n *Network) RecordPassengerEvent(ev PassengerEvent) error {
	nd, ok := n.stations[ev.StationID]
	if !ok {
		return ErrUnknownStation
	}
	switch ev.Kind {
	case PassengerIn:
		nd.passengers++
	case PassengerOut:
		nd.passengers--
	}
	return nil
}

// PassengerCount returns the signed passenger tally for a station.
func (n *Network) PassengerCount(station Id) (int64, error) {
	nd, ok := n.stations[station]
	if !ok {
		return 0, ErrUnknownStation
	}
	return nd.passengers, nil
}

// RoutesServing returns every route id whose stops include station.
func (n *Network) RoutesServing(station Id) ([]Id, error) {
	nd, ok := n.stations[station]
	if !ok {
		return nil, ErrUnknownStation
	}
	out := make([]Id, 0, len(nd.routes))
	for rid := range nd.routes {
		out = append(out, rid)
	}
	return out, nil
}

// SetTravelTime sets the travel time on both directed edges a->b and
// b->a, for whichever of the two exist (physical track carries one
// timing value regardless of direction). It fails if either station
// is unknown, or if neither directed edge exists. It succeeds if at
// least one direction was updated.
func (n *Network) SetTravelTime(a, b Id, t uint) error {
	na, ok := n.stations[a]
	if !ok {
		return ErrUnknownStation
	}
	nb, ok := n.stations[b]
	if !ok {
		return ErrUnknownStation
	}

	updated := false
	if e, ok := na.edges[b]; ok {
		e.travelTime = t
		updated = true
	}
	if e, ok := nb.edges[a]; ok {
		e.travelTime = t
		updated = true
	}
	if !updated {
		return ErrNotAdjacent
	}
	return nil
}

// TravelTimeAdjacent returns the travel time of the directed edge
// a->b, or 0 if no such edge exists.
func (n *Network) TravelTimeAdjacent(a, b Id) uint {
	na, ok := n.stations[a]
	if !ok {
		return 0
	}
	e, ok := na.edges[b]
	if !ok {
		return 0
	}
	return e.travelTime
}

// TravelTime sums the per-edge travel time along route's stops,
// starting at the first occurrence of a and ending at b. It returns 0
// if line or route is unknown, if route does not belong to line, if
// either station is not on the route, or if a does not precede b on
// the route.
func (n *Network) TravelTime(line, route, a, b Id) uint {
	r, ok := n.routes[route]
	if !ok || r.LineID != line {
		return 0
	}

	startIdx := -1
	for i, sid := range r.Stops {
		if sid == a {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return 0
	}

	var total uint
	for i := startIdx; i < len(r.Stops); i++ {
		if r.Stops[i] == b {
			return total
		}
		if i+1 >= len(r.Stops) {
			break
		}
		total += n.TravelTimeAdjacent(r.Stops[i], r.Stops[i+1])
	}
	return 0
}
