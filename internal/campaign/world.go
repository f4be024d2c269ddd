package campaign

import "github.com/talgya/warmarch/internal/hexmap"

// Hex is one map tile. Settlement is an abstract population figure that
// drives both foraging yield and recruitment draw.
type Hex struct {
	ID            HexID      `json:"id"`
	Q             int        `json:"q"`
	R             int        `json:"r"`
	Terrain       HexTerrain `json:"terrain"`
	Settlement    int        `json:"settlement"`
	IsGoodCountry bool       `json:"is_good_country,omitempty"`
	HasRoad       bool       `json:"has_road,omitempty"`
	RiverSides    []string   `json:"river_sides,omitempty"`

	ForagingTimesRemaining int  `json:"foraging_times_remaining"`
	IsTorched              bool `json:"is_torched,omitempty"`

	LastForagedDay       *int `json:"last_foraged_day,omitempty"`
	LastRecruitedDay     *int `json:"last_recruited_day,omitempty"`
	LastTorchedDay       *int `json:"last_torched_day,omitempty"`
	LastControlChangeDay *int `json:"last_control_change_day,omitempty"`

	ControllingFactionID *FactionID `json:"controlling_faction_id,omitempty"`
}

// Coord returns the hex's axial coordinate.
func (h *Hex) Coord() hexmap.Coord {
	return hexmap.Coord{Q: h.Q, R: h.R}
}

// RoadEdge is a road graph edge between two adjacent hexes.
type RoadEdge struct {
	FromHexID HexID  `json:"from_hex_id"`
	ToHexID   HexID  `json:"to_hex_id"`
	Quality   string `json:"quality,omitempty"`
	Status    string `json:"status,omitempty"`
}

// RiverCrossing is a bridge or ford connecting two hexes.
type RiverCrossing struct {
	FromHexID    HexID  `json:"from_hex_id"`
	ToHexID      HexID  `json:"to_hex_id"`
	CrossingType string `json:"crossing_type"` // bridge | ford | none
	Status       string `json:"status,omitempty"`
}

// Stronghold is a fortified settlement sitting on a hex.
type Stronghold struct {
	ID                   StrongholdID   `json:"id"`
	Name                 string         `json:"name,omitempty"`
	HexID                HexID          `json:"hex_id"`
	Type                 StrongholdType `json:"type"`
	ControllingFactionID FactionID      `json:"controlling_faction_id"`
	DefensiveBonus       int            `json:"defensive_bonus"`
	Threshold            int            `json:"threshold"`
	CurrentThreshold     int            `json:"current_threshold"`
	GatesOpen            bool           `json:"gates_open,omitempty"`
	GarrisonArmyID       *ArmyID        `json:"garrison_army_id,omitempty"`
	SuppliesHeld         int            `json:"supplies_held"`
	LootHeld             int            `json:"loot_held"`
}

// Special ability keys carried by unit types.
const (
	AbilityOffroadFullSpeed      = "offroad_full_speed"
	AbilityActsAsCavalryForaging = "acts_as_cavalry_for_foraging"
	AbilitySkirmisher            = "skirmisher"
)

// UnitType is a catalog entry describing a detachment class.
type UnitType struct {
	ID               UnitTypeID      `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"` // infantry | cavalry | support
	BattleMultiplier float64         `json:"battle_multiplier"`
	SupplyCostPerDay int             `json:"supply_cost_per_day"`
	CanTravelOffroad bool            `json:"can_travel_offroad"`
	SpecialAbilities map[string]bool `json:"special_abilities,omitempty"`
}

// HasAbility reports whether the unit type carries the named ability.
func (u *UnitType) HasAbility(name string) bool {
	if u == nil {
		return false
	}
	return u.SpecialAbilities[name]
}

// IsCavalry reports whether the unit type rides.
func (u *UnitType) IsCavalry() bool {
	return u != nil && u.Category == "cavalry"
}
