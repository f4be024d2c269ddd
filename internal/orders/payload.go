package orders

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
)

// Per-kind payload shapes. Parameters arrive as decoded JSON on the order;
// each handler round-trips them through the matching struct with unknown
// fields disallowed, so a malformed payload fails the order before any
// state is touched.

// MovementLeg is one step of a movement order.
type MovementLeg struct {
	ToHexID        campaign.HexID  `json:"to_hex_id"`
	DistanceMiles  float64         `json:"distance_miles"`
	OnRoad         *bool           `json:"on_road,omitempty"`
	HasRiverFord   bool            `json:"has_river_ford,omitempty"`
	IsNight        bool            `json:"is_night,omitempty"`
	HasFork        bool            `json:"has_fork,omitempty"`
	AlternateHexID *campaign.HexID `json:"alternate_hex_id,omitempty"`
}

// Road reports the leg's road flag, defaulting to true when absent.
func (l MovementLeg) Road() bool {
	return l.OnRoad == nil || *l.OnRoad
}

// MovePayload parameterises a move order. Explicit legs take precedence;
// with none given, a destination hex has the route planned over the road
// graph instead.
type MovePayload struct {
	MovementType     string          `json:"movement_type,omitempty"`
	WeatherModifier  int             `json:"weather_modifier,omitempty"`
	Legs             []MovementLeg   `json:"legs,omitempty"`
	DestinationHexID *campaign.HexID `json:"destination_hex_id,omitempty"`
}

// RestPayload parameterises a rest order.
type RestPayload struct {
	DurationDays *int `json:"duration_days,omitempty"`
}

// HexListPayload parameterises forage and torch orders.
type HexListPayload struct {
	HexIDs []campaign.HexID `json:"hex_ids"`
}

// SupplyTransferPayload parameterises a supply_transfer order.
type SupplyTransferPayload struct {
	TargetArmyID campaign.ArmyID `json:"target_army_id"`
	Amount       int             `json:"amount"`
}

// BesiegePayload parameterises a besiege order.
type BesiegePayload struct {
	StrongholdID campaign.StrongholdID `json:"stronghold_id"`
	SiegeEngines int                   `json:"siege_engines,omitempty"`
}

// AssaultPayload parameterises an assault order.
type AssaultPayload struct {
	StrongholdID      campaign.StrongholdID `json:"stronghold_id"`
	AttackerModifier  int                   `json:"attacker_modifier,omitempty"`
	DefenderModifier  int                   `json:"defender_modifier,omitempty"`
	AttackerFixedRoll *int                  `json:"attacker_fixed_roll,omitempty"`
	DefenderFixedRoll *int                  `json:"defender_fixed_roll,omitempty"`
	Pillage           bool                  `json:"pillage,omitempty"`
}

// ShipPayload parameterises embark and disembark orders.
type ShipPayload struct {
	ShipID campaign.ShipID `json:"ship_id"`
}

// NavalMovePayload parameterises a naval_move order.
type NavalMovePayload struct {
	ShipID campaign.ShipID  `json:"ship_id"`
	Route  []campaign.HexID `json:"route"`
}

// SendMessagePayload parameterises a send_message order.
type SendMessagePayload struct {
	RecipientID   campaign.CommanderID `json:"recipient_id"`
	Content       string               `json:"content,omitempty"`
	TerritoryType string               `json:"territory_type,omitempty"`
}

// LaunchOperationPayload parameterises a launch_operation order.
type LaunchOperationPayload struct {
	OperationID        *campaign.OperationID `json:"operation_id,omitempty"`
	OperationType      string                `json:"operation_type,omitempty"`
	TargetDescriptor   map[string]any        `json:"target_descriptor,omitempty"`
	TerritoryType      string                `json:"territory_type,omitempty"`
	DifficultyModifier int                   `json:"difficulty_modifier,omitempty"`
	LootCost           *int                  `json:"loot_cost,omitempty"`
	Complexity         string                `json:"complexity,omitempty"`
}

// RaiseArmyPayload parameterises a raise_army order.
type RaiseArmyPayload struct {
	StrongholdID       campaign.StrongholdID `json:"stronghold_id"`
	NewCommanderID     campaign.CommanderID  `json:"new_commander_id"`
	InfantryUnitTypeID campaign.UnitTypeID   `json:"infantry_unit_type_id"`
	CavalryUnitTypeID  *campaign.UnitTypeID  `json:"cavalry_unit_type_id,omitempty"`
	RallyHexID         *campaign.HexID       `json:"rally_hex_id,omitempty"`
	ArmyName           string                `json:"army_name,omitempty"`
}

// HarryPayload parameterises a harry order.
type HarryPayload struct {
	TargetArmyID  campaign.ArmyID         `json:"target_army_id"`
	DetachmentIDs []campaign.DetachmentID `json:"detachment_ids"`
	Objective     string                  `json:"objective,omitempty"`
}

// decodePayload maps order parameters onto the kind's payload struct.
// Unknown fields and type mismatches are decode errors.
func decodePayload(params map[string]any, dst any) error {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode parameters: %w", err)
	}
	return nil
}
