package movement

import (
	"errors"
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/hexmap"
)

// ErrNoRoute is returned when no passable chain of hexes links the
// endpoints for the marching army.
var ErrNoRoute = errors.New("no route to destination")

const (
	hexMiles = 6.0

	// One road hex takes half a marching day; off-road takes a full one.
	roadLegHours    = 12.0
	offroadLegHours = 24.0

	damagedRoadMultiplier = 2.0

	// A ford stalls the column while the slow troops wade: half a day per
	// mile of infantry-and-followers column.
	fordHoursPerColumnMile = 12.0
)

// RouteLeg is one planned step of a marching route.
type RouteLeg struct {
	FromHexID    campaign.HexID
	ToHexID      campaign.HexID
	Miles        float64
	Hours        float64
	OnRoad       bool
	HasRiverFord bool
}

type edgeKey struct {
	a, b campaign.HexID
}

func normalizeEdge(a, b campaign.HexID) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a: a, b: b}
}

// PlanRoute finds the fastest marching route between two hexes with
// Dijkstra over the road graph. Roads cost half a day per hex, double when
// damaged; off-road costs a full day and is closed to armies with wagons;
// water is impassable. River crossings must be open: bridges are free,
// fords add the army's wading delay and are closed to wagons.
func PlanRoute(
	c *campaign.Campaign,
	army *campaign.Army,
	fromHexID, toHexID campaign.HexID,
) ([]RouteLeg, error) {
	start, ok := c.Map.Hexes[fromHexID]
	if !ok {
		return nil, fmt.Errorf("route start hex %d not found", fromHexID)
	}
	goal, ok := c.Map.Hexes[toHexID]
	if !ok {
		return nil, fmt.Errorf("route destination hex %d not found", toHexID)
	}

	byCoord := make(map[hexmap.Coord]*campaign.Hex, len(c.Map.Hexes))
	for _, hx := range c.Map.Hexes {
		byCoord[hx.Coord()] = hx
	}

	roads := make(map[edgeKey]*campaign.RoadEdge, len(c.Map.Roads))
	for i := range c.Map.Roads {
		edge := &c.Map.Roads[i]
		if edge.Status != "" && edge.Status != "open" && edge.Status != "damaged" {
			continue
		}
		roads[normalizeEdge(edge.FromHexID, edge.ToHexID)] = edge
	}
	crossings := make(map[edgeKey]*campaign.RiverCrossing, len(c.Map.RiverCrossings))
	for i := range c.Map.RiverCrossings {
		crossing := &c.Map.RiverCrossings[i]
		crossings[normalizeEdge(crossing.FromHexID, crossing.ToHexID)] = crossing
	}

	hasWagons := army != nil && army.TotalWagons() > 0
	fordDelay := 0.0
	if army != nil {
		fordDelay = fordDelayHours(c, army)
	}

	cost := func(from, to hexmap.Coord) (float64, bool) {
		fromHex := byCoord[from]
		toHex := byCoord[to]
		if fromHex == nil || toHex == nil {
			return 0, false
		}
		if toHex.Terrain == campaign.Water {
			return 0, false
		}

		hours := offroadLegHours
		road := roads[normalizeEdge(fromHex.ID, toHex.ID)]
		if road != nil {
			hours = roadLegHours
			if road.Status == "damaged" {
				hours *= damagedRoadMultiplier
			}
		} else if hasWagons {
			return 0, false
		}

		if crossing := crossings[normalizeEdge(fromHex.ID, toHex.ID)]; crossing != nil {
			if crossing.Status != "" && crossing.Status != "open" {
				return 0, false
			}
			switch crossing.CrossingType {
			case "ford":
				if hasWagons {
					return 0, false
				}
				hours += fordDelay
			case "bridge":
				// No delay.
			default:
				return 0, false
			}
		}
		return hours, true
	}

	coords, _, err := hexmap.FindRoute(start.Coord(), goal.Coord(), cost)
	if err != nil {
		if errors.Is(err, hexmap.ErrNoRoute) {
			return nil, fmt.Errorf("%w: hex %d to hex %d", ErrNoRoute, fromHexID, toHexID)
		}
		return nil, err
	}

	legs := make([]RouteLeg, 0, len(coords)-1)
	for i := 1; i < len(coords); i++ {
		fromHex := byCoord[coords[i-1]]
		toHex := byCoord[coords[i]]
		key := normalizeEdge(fromHex.ID, toHex.ID)
		road := roads[key]
		crossing := crossings[key]

		hours := offroadLegHours
		if road != nil {
			hours = roadLegHours
			if road.Status == "damaged" {
				hours *= damagedRoadMultiplier
			}
		}
		isFord := crossing != nil && crossing.CrossingType == "ford"
		if isFord {
			hours += fordDelay
		}
		legs = append(legs, RouteLeg{
			FromHexID:    fromHex.ID,
			ToHexID:      toHex.ID,
			Miles:        hexMiles,
			Hours:        hours,
			OnRoad:       road != nil,
			HasRiverFord: isFord,
		})
	}
	return legs, nil
}

// fordDelayHours estimates how long the army's foot column takes to wade a
// ford: cavalry splashes straight through, everyone else queues.
func fordDelayHours(c *campaign.Campaign, army *campaign.Army) float64 {
	slow := 0
	for _, det := range army.Detachments {
		if c.UnitTypes[det.UnitTypeID].IsCavalry() {
			continue
		}
		slow += det.Soldiers
	}
	if slow == 0 {
		return 0
	}
	columnMiles := float64(slow+army.NoncombatantCount) / 5000.0
	return columnMiles * fordHoursPerColumnMile
}
