package campaign

// Detachment is a block of soldiers of one unit type inside an army.
type Detachment struct {
	ID         DetachmentID       `json:"id"`
	UnitTypeID UnitTypeID         `json:"unit_type_id"`
	Soldiers   int                `json:"soldiers"`
	Wagons     int                `json:"wagons,omitempty"`
	Engines    int                `json:"engines,omitempty"`
	Name       string             `json:"name,omitempty"`
	// Free-form per-instance figures, e.g. a supplies_equivalent entry for
	// detachments that weigh on the supply train without marching.
	InstanceData map[string]float64 `json:"instance_data,omitempty"`
}

// HarriedEffect marks an army slowed by enemy skirmishers.
type HarriedEffect struct {
	Day       int     `json:"day"`
	Objective string  `json:"objective"`
	Penalty   float64 `json:"penalty"`
}

// DepartedDetachments records detachments that walked off after a morale
// failure and when they come back.
type DepartedDetachments struct {
	DetachmentIDs []DetachmentID `json:"detachment_ids"`
	ReturnDay     int            `json:"return_day"`
}

// MercenaryDesertion records a mercenary contract collapsing mid-campaign.
type MercenaryDesertion struct {
	ContractID MercenaryContractID `json:"contract_id"`
	Day        int                 `json:"day"`
}

// StatusEffects collects the lingering conditions that ride on an army.
type StatusEffects struct {
	SickOrExhausted     bool                 `json:"sick_or_exhausted,omitempty"`
	Revolt              bool                 `json:"revolt,omitempty"`
	Harried             *HarriedEffect       `json:"harried,omitempty"`
	DepartedDetachments *DepartedDetachments `json:"departed_detachments,omitempty"`
	MercenariesDeserted *MercenaryDesertion  `json:"mercenaries_deserted,omitempty"`
}

// Army is a field force: detachments, supplies, and a commander.
type Army struct {
	ID           ArmyID       `json:"id"`
	Name         string       `json:"name,omitempty"`
	CommanderID  CommanderID  `json:"commander_id"`
	CurrentHexID HexID        `json:"current_hex_id"`
	Detachments  []Detachment `json:"detachments"`
	Status       ArmyStatus   `json:"status"`

	MovementPointsRemaining float64 `json:"movement_points_remaining"`

	MoraleCurrent int `json:"morale_current"`
	MoraleResting int `json:"morale_resting"`
	MoraleMax     int `json:"morale_max"`

	SuppliesCurrent        int `json:"supplies_current"`
	SuppliesCapacity       int `json:"supplies_capacity"`
	DailySupplyConsumption int `json:"daily_supply_consumption"`
	LootCarried            int `json:"loot_carried"`

	NoncombatantCount      int     `json:"noncombatant_count"`
	NoncombatantPercentage float64 `json:"noncombatant_percentage"`

	ForcedMarchDays     float64 `json:"forced_march_days"`
	DaysWithoutSupplies int     `json:"days_without_supplies"`
	DaysMarchedThisWeek int     `json:"days_marched_this_week"`

	StatusEffects     StatusEffects `json:"status_effects,omitempty"`
	ColumnLengthMiles float64       `json:"column_length_miles"`

	RestDurationDays *int `json:"rest_duration_days,omitempty"`
	RestStartedDay   *int `json:"rest_started_day,omitempty"`

	DestinationHexID *HexID  `json:"destination_hex_id,omitempty"`
	EmbarkedShipID   *ShipID `json:"embarked_ship_id,omitempty"`
	IsBlockaded      bool    `json:"is_blockaded,omitempty"`

	OrdersQueue []OrderID `json:"orders_queue,omitempty"`

	LastBattleDay  *int `json:"last_battle_day,omitempty"`
	LastRetreatDay *int `json:"last_retreat_day,omitempty"`
}

// NewArmy returns an army with the default morale track.
func NewArmy(id ArmyID, commanderID CommanderID, hexID HexID) *Army {
	return &Army{
		ID:                     id,
		CommanderID:            commanderID,
		CurrentHexID:           hexID,
		Status:                 Idle,
		MoraleCurrent:          9,
		MoraleResting:          9,
		MoraleMax:              12,
		NoncombatantPercentage: 0.25,
	}
}

// TotalSoldiers sums soldiers across all detachments.
func (a *Army) TotalSoldiers() int {
	total := 0
	for _, det := range a.Detachments {
		total += det.Soldiers
	}
	return total
}

// TotalWagons sums wagons across all detachments.
func (a *Army) TotalWagons() int {
	total := 0
	for _, det := range a.Detachments {
		total += det.Wagons
	}
	return total
}

// TotalEngines sums siege engines across all detachments.
func (a *Army) TotalEngines() int {
	total := 0
	for _, det := range a.Detachments {
		total += det.Engines
	}
	return total
}

// Detachment returns the detachment with the given id, or nil.
func (a *Army) Detachment(id DetachmentID) *Detachment {
	for i := range a.Detachments {
		if a.Detachments[i].ID == id {
			return &a.Detachments[i]
		}
	}
	return nil
}
