// Package naval implements ship transport: embarking and disembarking
// armies, plotting courses, and the per-part travel advance.
package naval

import (
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/hexmap"
	"github.com/talgya/warmarch/internal/rules"
)

// HexMiles is the width of one map hex in miles.
const HexMiles = 6

// ActionResult is the outcome of an embark, disembark, or course action.
type ActionResult struct {
	Success bool
	Detail  string
}

// Embark loads an army onto a co-located ship. Embarkation costs a day of
// ship time.
func Embark(army *campaign.Army, ship *campaign.Ship, r rules.Rules) ActionResult {
	if army.EmbarkedShipID != nil {
		return ActionResult{Detail: "army already embarked"}
	}
	if ship.EmbarkedArmyID != nil {
		return ActionResult{Detail: "ship already transporting an army"}
	}
	if army.CurrentHexID != ship.CurrentHexID {
		return ActionResult{Detail: "army and ship must share a hex"}
	}
	if ship.Status == campaign.ShipFled {
		return ActionResult{Detail: fmt.Sprintf("ship status %s disallows embarkation", ship.Status)}
	}

	shipID := ship.ID
	armyID := army.ID
	army.EmbarkedShipID = &shipID
	ship.EmbarkedArmyID = &armyID
	ship.Status = campaign.ShipTransporting
	ship.TravelDaysRemaining = rules.Max(ship.TravelDaysRemaining, float64(r.Naval.EmbarkDays))

	return ActionResult{Success: true, Detail: "army embarked"}
}

// Disembark unloads an army from its ship once the ship has arrived.
func Disembark(army *campaign.Army, ship *campaign.Ship, r rules.Rules) ActionResult {
	if army.EmbarkedShipID == nil || *army.EmbarkedShipID != ship.ID ||
		ship.EmbarkedArmyID == nil || *ship.EmbarkedArmyID != army.ID {
		return ActionResult{Detail: "army not embarked on specified ship"}
	}
	if ship.TravelDaysRemaining > 0 {
		return ActionResult{Detail: "ship is still en route"}
	}

	army.EmbarkedShipID = nil
	ship.EmbarkedArmyID = nil
	ship.Status = campaign.ShipAvailable
	ship.TravelDaysRemaining = float64(r.Naval.DisembarkDays)
	army.CurrentHexID = ship.CurrentHexID

	return ActionResult{Success: true, Detail: "army disembarked"}
}

// SetCourse plots a route hex by hex and computes the travel time from the
// friendly sailing rate.
func SetCourse(c *campaign.Campaign, ship *campaign.Ship, route []campaign.HexID, r rules.Rules) ActionResult {
	if len(route) == 0 {
		return ActionResult{Detail: "route required"}
	}
	if ship.EmbarkedArmyID != nil && c.Armies[*ship.EmbarkedArmyID] == nil {
		return ActionResult{Detail: "embarked army missing"}
	}

	totalMiles := 0
	current := ship.CurrentHexID
	for _, target := range route {
		from := c.Map.Hexes[current]
		to := c.Map.Hexes[target]
		if from == nil || to == nil {
			return ActionResult{Detail: "route references unknown hex"}
		}
		totalMiles += rules.Max(1, hexmap.Distance(from.Coord(), to.Coord())) * HexMiles
		current = target
	}

	ship.CurrentRoute = route
	ship.TravelDaysRemaining = rules.Max(0, float64(totalMiles)/float64(r.Naval.FriendlyMilesPerDay))
	ship.MovementPointsRemaining = 1.0
	if ship.EmbarkedArmyID != nil {
		ship.Status = campaign.ShipTransporting
	} else {
		ship.Status = campaign.ShipAvailable
	}

	return ActionResult{Success: true, Detail: fmt.Sprintf("course set for %d leg(s)", len(route))}
}

// AdvanceShips burns down ship travel timers by the day fraction and moves
// embarked armies along on arrival.
func AdvanceShips(c *campaign.Campaign, dayFraction float64) {
	for _, ship := range c.Ships {
		if len(ship.CurrentRoute) == 0 {
			if ship.TravelDaysRemaining > 0 {
				ship.TravelDaysRemaining = rules.Max(0, ship.TravelDaysRemaining-dayFraction)
			}
			continue
		}

		ship.TravelDaysRemaining = rules.Max(0, ship.TravelDaysRemaining-dayFraction)
		if ship.TravelDaysRemaining > 0 {
			continue
		}

		destination := ship.CurrentRoute[len(ship.CurrentRoute)-1]
		ship.CurrentHexID = destination
		ship.CurrentRoute = nil
		ship.MovementPointsRemaining = 0
		if ship.EmbarkedArmyID == nil {
			ship.Status = campaign.ShipAvailable
		} else {
			ship.Status = campaign.ShipTransporting
			if army := c.Armies[*ship.EmbarkedArmyID]; army != nil {
				army.CurrentHexID = destination
				army.IsBlockaded = false
			}
		}
	}
}
