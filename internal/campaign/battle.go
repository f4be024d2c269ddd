package campaign

// Battle is the stored record of one resolved engagement.
type Battle struct {
	ID      BattleID `json:"id"`
	GameDay int      `json:"game_day"`
	HexID   HexID    `json:"hex_id"`

	AttackerArmyIDs []ArmyID `json:"attacker_army_ids"`
	DefenderArmyIDs []ArmyID `json:"defender_army_ids"`

	AttackerRolls map[ArmyID]int `json:"attacker_rolls,omitempty"`
	DefenderRolls map[ArmyID]int `json:"defender_rolls,omitempty"`

	VictorSide     string `json:"victor_side"` // attacker | defender
	RollDifference int    `json:"roll_difference"`

	Casualties         map[ArmyID]float64 `json:"casualties,omitempty"`
	MoraleChanges      map[ArmyID]int     `json:"morale_changes,omitempty"`
	CommandersCaptured []CommanderID      `json:"commanders_captured,omitempty"`
	LootCaptured       int                `json:"loot_captured"`
	Routs              []ArmyID           `json:"routs,omitempty"`
}
