package campaign

// RecruitmentProject is a muster in progress: the totals are fixed when the
// call goes out, the army forms when the project completes.
type RecruitmentProject struct {
	ID             ProjectID    `json:"id"`
	StrongholdID   StrongholdID `json:"stronghold_id"`
	FactionID      FactionID    `json:"faction_id"`
	CommanderID    CommanderID  `json:"commander_id"`
	RallyHexID     HexID        `json:"rally_hex_id"`
	StartedOnDay   int          `json:"started_on_day"`
	CompletesOnDay int          `json:"completes_on_day"`

	Infantry      int     `json:"infantry"`
	Cavalry       int     `json:"cavalry"`
	Wagons        int     `json:"wagons"`
	Noncombatants int     `json:"noncombatants"`
	SourceHexIDs  []HexID `json:"source_hex_ids"`

	InfantryUnitTypeID UnitTypeID  `json:"infantry_unit_type_id"`
	CavalryUnitTypeID  *UnitTypeID `json:"cavalry_unit_type_id,omitempty"`

	PendingOrderID  OrderID `json:"pending_order_id"`
	RevoltTriggered bool    `json:"revolt_triggered,omitempty"`
}
