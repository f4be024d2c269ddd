// Package campaign defines the campaign aggregate and every entity the rules
// subsystems operate on. The aggregate is plain data: subsystems mutate it in
// place and the store serialises it whole.
package campaign

// CampaignMap aggregates the hex grid and its connectivity.
type CampaignMap struct {
	Hexes          map[HexID]*Hex  `json:"hexes"`
	Roads          []RoadEdge      `json:"roads,omitempty"`
	RiverCrossings []RiverCrossing `json:"river_crossings,omitempty"`
}

// HexAt returns the hex occupying the given axial coordinate, or nil.
func (m *CampaignMap) HexAt(q, r int) *Hex {
	for _, hx := range m.Hexes {
		if hx.Q == q && hx.R == r {
			return hx
		}
	}
	return nil
}

// WeatherDay records the conditions rolled for one campaign day.
type WeatherDay struct {
	GameDay     int    `json:"game_day"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// Event is one entry in the campaign log.
type Event struct {
	ID          EventID        `json:"id"`
	GameDay     int            `json:"game_day"`
	Part        DayPart        `json:"part"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details,omitempty"`
}

// Campaign is the root aggregate for one running game.
type Campaign struct {
	ID         CampaignID `json:"id"`
	Name       string     `json:"name"`
	StartDate  string     `json:"start_date"`
	CurrentDay int        `json:"current_day"`
	Part       DayPart    `json:"current_part"`
	Season     Season     `json:"season"`
	Status     string     `json:"status"`

	Map         CampaignMap                `json:"map"`
	Factions    map[FactionID]*Faction     `json:"factions"`
	Commanders  map[CommanderID]*Commander `json:"commanders"`
	Armies      map[ArmyID]*Army           `json:"armies"`
	Strongholds map[StrongholdID]*Stronghold `json:"strongholds"`
	Ships       map[ShipID]*Ship           `json:"ships"`
	ShipTypes   map[ShipTypeID]*ShipType   `json:"ship_types,omitempty"`
	UnitTypes   map[UnitTypeID]*UnitType   `json:"unit_types"`
	Sieges      map[SiegeID]*Siege         `json:"sieges"`
	Battles     map[BattleID]*Battle       `json:"battles"`

	MercenaryCompanies map[MercenaryCompanyID]*MercenaryCompany   `json:"mercenary_companies,omitempty"`
	MercenaryContracts map[MercenaryContractID]*MercenaryContract `json:"mercenary_contracts,omitempty"`

	Operations   map[OperationID]*Operation       `json:"operations"`
	Orders       map[OrderID]*Order               `json:"orders"`
	Messages     map[MessageID]*Message           `json:"messages"`
	Events       []Event                          `json:"events"`
	Weather      map[int]WeatherDay               `json:"weather,omitempty"`
	Recruitments map[ProjectID]*RecruitmentProject `json:"recruitments,omitempty"`

	// Monotonic issue counter for order tie-breaking.
	OrderSeq int64 `json:"order_seq"`
}

// New returns an empty campaign with all collections initialised.
func New(id CampaignID, name string) *Campaign {
	return &Campaign{
		ID:     id,
		Name:   name,
		Status: "active",
		Map: CampaignMap{
			Hexes: make(map[HexID]*Hex),
		},
		Factions:           make(map[FactionID]*Faction),
		Commanders:         make(map[CommanderID]*Commander),
		Armies:             make(map[ArmyID]*Army),
		Strongholds:        make(map[StrongholdID]*Stronghold),
		Ships:              make(map[ShipID]*Ship),
		ShipTypes:          make(map[ShipTypeID]*ShipType),
		UnitTypes:          make(map[UnitTypeID]*UnitType),
		Sieges:             make(map[SiegeID]*Siege),
		Battles:            make(map[BattleID]*Battle),
		MercenaryCompanies: make(map[MercenaryCompanyID]*MercenaryCompany),
		MercenaryContracts: make(map[MercenaryContractID]*MercenaryContract),
		Operations:         make(map[OperationID]*Operation),
		Orders:             make(map[OrderID]*Order),
		Messages:           make(map[MessageID]*Message),
		Weather:            make(map[int]WeatherDay),
		Recruitments:       make(map[ProjectID]*RecruitmentProject),
	}
}

// EmitEvent appends an entry to the campaign log and returns it.
func (c *Campaign) EmitEvent(eventType, description string, details map[string]any) Event {
	ev := Event{
		ID:          EventID(len(c.Events) + 1),
		GameDay:     c.CurrentDay,
		Part:        c.Part,
		Type:        eventType,
		Description: description,
		Details:     details,
	}
	c.Events = append(c.Events, ev)
	return ev
}

// NextIssueSeq returns the next order issue sequence number.
func (c *Campaign) NextIssueSeq() int64 {
	c.OrderSeq++
	return c.OrderSeq
}

// Id allocators. New entities minted mid-game use max(existing)+1 so ids stay
// deterministic across runs.

func (c *Campaign) NextArmyID() ArmyID           { return nextKey(c.Armies) }
func (c *Campaign) NextFactionID() FactionID     { return nextKey(c.Factions) }
func (c *Campaign) NextCommanderID() CommanderID { return nextKey(c.Commanders) }
func (c *Campaign) NextSiegeID() SiegeID         { return nextKey(c.Sieges) }
func (c *Campaign) NextBattleID() BattleID       { return nextKey(c.Battles) }
func (c *Campaign) NextMessageID() MessageID     { return nextKey(c.Messages) }
func (c *Campaign) NextOperationID() OperationID { return nextKey(c.Operations) }
func (c *Campaign) NextOrderID() OrderID         { return nextKey(c.Orders) }
func (c *Campaign) NextProjectID() ProjectID     { return nextKey(c.Recruitments) }

// NextDetachmentID scans every army for the highest detachment id in use.
func (c *Campaign) NextDetachmentID() DetachmentID {
	var max DetachmentID
	for _, army := range c.Armies {
		for _, det := range army.Detachments {
			if det.ID > max {
				max = det.ID
			}
		}
	}
	return max + 1
}

// CommanderFor returns the commander leading an army, or nil.
func (c *Campaign) CommanderFor(army *Army) *Commander {
	if army == nil {
		return nil
	}
	return c.Commanders[army.CommanderID]
}

// TraitsFor returns the trait list of an army's commander, empty when the
// commander is missing.
func (c *Campaign) TraitsFor(army *Army) []Trait {
	cmd := c.CommanderFor(army)
	if cmd == nil {
		return nil
	}
	return cmd.Traits
}
