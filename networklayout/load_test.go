package networklayout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubenet/networkmonitor/transportnetwork"
)

const sampleDoc = `{
  "stations": [
    {"station_id": "s0", "name": "Station Zero"},
    {"station_id": "s1", "name": "Station One"}
  ],
  "lines": [
    {
      "line_id": "line1",
      "name": "Line One",
      "routes": [
        {
          "route_id": "r1",
          "direction": "outbound",
          "line_id": "line1",
          "start_station_id": "s0",
          "end_station_id": "s1",
          "route_stops": ["s0", "s1"]
        }
      ]
    }
  ],
  "travel_times": [
    {"line_id": "line1", "route_id": "r1", "start_station_id": "s0", "end_station_id": "s1", "travel_time": 5}
  ]
}`

func TestParse_DecodesDocument(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Len(t, doc.Stations, 2)
	assert.Len(t, doc.Lines, 1)
	assert.Len(t, doc.TravelTimes, 1)
}

func TestLoad_PopulatesNetwork(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	net := transportnetwork.NewNetwork()
	require.NoError(t, Load(net, doc))

	assert.EqualValues(t, 5, net.TravelTimeAdjacent("s0", "s1"))
	assert.EqualValues(t, 5, net.TravelTime("line1", "r1", "s0", "s1"))
}

func TestLoad_MissingTravelTimeFailsInvariant(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	doc.TravelTimes = nil

	net := transportnetwork.NewNetwork()
	err = Load(net, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonPositiveTravelTime)
}

func TestLoad_UnknownStationFails(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	doc.Lines[0].Routes[0].RouteStops = []string{"s0", "missing"}

	net := transportnetwork.NewNetwork()
	err = Load(net, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, transportnetwork.ErrUnknownStation)
}
