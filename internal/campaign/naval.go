package campaign

// ShipType is a catalog entry describing a hull class.
type ShipType struct {
	ID               ShipTypeID `json:"id"`
	Name             string     `json:"name"`
	CapacitySoldiers int        `json:"capacity_soldiers"`
	CapacityCavalry  int        `json:"capacity_cavalry"`
	CapacitySupplies int        `json:"capacity_supplies"`
	DailyCostLoot    int        `json:"daily_cost_loot"`
	CanSea           bool       `json:"can_sea"`
	CanRiver         bool       `json:"can_river"`
}

// Ship is a single hull, possibly carrying an embarked army along a plotted
// route.
type Ship struct {
	ID                   ShipID     `json:"id"`
	Name                 string     `json:"name,omitempty"`
	ControllingFactionID FactionID  `json:"controlling_faction_id"`
	CurrentHexID         HexID      `json:"current_hex_id"`
	ShipTypeID           ShipTypeID `json:"ship_type_id"`
	Status               ShipStatus `json:"status"`

	EmbarkedArmyID          *ArmyID `json:"embarked_army_id,omitempty"`
	MovementPointsRemaining float64 `json:"movement_points_remaining"`
	CurrentRoute            []HexID `json:"current_route,omitempty"`
	TravelDaysRemaining     float64 `json:"travel_days_remaining"`
}
