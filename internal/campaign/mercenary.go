package campaign

// MercenaryCompany is a hireable force in the catalog.
type MercenaryCompany struct {
	ID          MercenaryCompanyID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	// Base daily rates per soldier, keyed "infantry" and "cavalry".
	BaseRates map[string]int `json:"base_rates,omitempty"`
	Available bool           `json:"available"`
}

// MercenaryContract is an active hire attached to an army.
type MercenaryContract struct {
	ID          MercenaryContractID `json:"id"`
	CompanyID   MercenaryCompanyID  `json:"company_id"`
	CommanderID CommanderID         `json:"commander_id"`
	ArmyID      *ArmyID             `json:"army_id,omitempty"`
	StartDay    int                 `json:"start_day"`
	EndDay      *int                `json:"end_day,omitempty"`
	Status      ContractStatus      `json:"status"`

	LastUpkeepDay int `json:"last_upkeep_day"`
	DaysUnpaid    int `json:"days_unpaid"`
	// NegotiatedRates overrides the company base rates when present.
	NegotiatedRates map[string]int `json:"negotiated_rates,omitempty"`
}
