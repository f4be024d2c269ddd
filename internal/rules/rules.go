// Package rules holds every tuning constant the campaign engine consumes.
// Subsystems carry no magic numbers of their own: each receives a Rules
// value and reads its figures from here, so a scenario can swap the table.
package rules

// Movement rates in miles per day and the penalties applied to long columns.
type Movement struct {
	RoadStandardMilesPerDay    int     `json:"road_standard_miles_per_day"`
	RoadForcedMilesPerDay      int     `json:"road_forced_miles_per_day"`
	OffroadStandardMilesPerDay int     `json:"offroad_standard_miles_per_day"`
	OffroadForcedMilesPerDay   int     `json:"offroad_forced_miles_per_day"`
	NightMilesPerDay           int     `json:"night_miles_per_day"`
	NightForcedMilesPerDay     int     `json:"night_forced_miles_per_day"`
	CavalryForcedMultiplier    int     `json:"cavalry_forced_multiplier"`
	ColumnLengthThreshold      float64 `json:"column_length_threshold"`
	ColumnCappedStandardSpeed  int     `json:"column_capped_standard_speed"`
	ColumnCappedForcedSpeed    int     `json:"column_capped_forced_speed"`
	NightWrongPathChance       int     `json:"night_wrong_path_chance"` // out of 6
}

// Battle covers field engagements and assault attrition.
type Battle struct {
	RoutThreshold             int     `json:"rout_threshold"`
	RetreatHexesMin           int     `json:"retreat_hexes_min"`
	RetreatHexesMax           int     `json:"retreat_hexes_max"`
	RetreatSupplyLossDie      int     `json:"retreat_supply_loss_die"`
	RetreatSupplyLossPercent  int     `json:"retreat_supply_loss_percent"` // per pip
	CaptureChanceMinor        int     `json:"capture_chance_minor"`        // out of 6, diff 4-5
	CaptureChanceMajor        int     `json:"capture_chance_major"`        // out of 6, diff 6+
	NumericBonusRatio         float64 `json:"numeric_bonus_ratio"`
	AssaultLoserExtraCasualty float64 `json:"assault_loser_extra_casualty"`
}

// Supply groups carrying capacity, consumption, and foraging figures.
type Supply struct {
	InfantryCapacity            int     `json:"infantry_capacity"`
	NoncombatantCapacity        int     `json:"noncombatant_capacity"`
	CavalryCapacity             int     `json:"cavalry_capacity"`
	WagonCapacity               int     `json:"wagon_capacity"`
	InfantryConsumption         int     `json:"infantry_consumption"`
	NoncombatantConsumption     int     `json:"noncombatant_consumption"`
	CavalryConsumption          int     `json:"cavalry_consumption"`
	WagonConsumption            int     `json:"wagon_consumption"`
	BaseNoncombatantRatio       float64 `json:"base_noncombatant_ratio"`
	SpartanRatio                float64 `json:"spartan_ratio"`
	ExclusiveSkirmisherRatio    float64 `json:"exclusive_skirmisher_ratio"`
	WizardSupplyEncumbrance     int     `json:"wizard_supply_encumbrance"`
	ForagingMultiplier          int     `json:"foraging_multiplier"`
	ForagingLimitPerSeason      int     `json:"foraging_limit_per_season"`
	TorchRevoltChance           int     `json:"torch_revolt_chance"`         // out of 6
	ForageRevoltChanceRepeat    int     `json:"forage_revolt_chance_repeat"` // out of 6
	ForageRevoltHostileModifier int     `json:"forage_revolt_hostile_modifier"`
	TorchRevoltHostileModifier  int     `json:"torch_revolt_hostile_modifier"`
	RevoltCooldownDays          int     `json:"revolt_cooldown_days"`
	RecentlyConqueredDays       int     `json:"recently_conquered_days"`
}

// Morale thresholds shared by rest, starvation, and battle outcomes.
type Morale struct {
	DefaultResting            int `json:"default_resting"`
	DefaultMax                int `json:"default_max"`
	ForcedMarchLossPerWeek    int `json:"forced_march_loss_per_week"`
	StarvationLossPerDay      int `json:"starvation_loss_per_day"`
	StarvationDissolutionDays int `json:"starvation_dissolution_days"`
}

// Visibility radii used for scouting and forage range.
type Visibility struct {
	BaseRadius            int `json:"base_radius"`
	CavalryBonus          int `json:"cavalry_bonus"`
	OutriderBonus         int `json:"outrider_bonus"`
	BadWeatherPenalty     int `json:"bad_weather_penalty"`
	VeryBadWeatherPenalty int `json:"very_bad_weather_penalty"`
}

// Siege progression parameters.
type Siege struct {
	TownThreshold            int `json:"town_threshold"`
	CityThreshold            int `json:"city_threshold"`
	FortressThreshold        int `json:"fortress_threshold"`
	WeeklyModifier           int `json:"weekly_modifier"`
	DiseaseModifier          int `json:"disease_modifier"`
	ResupplyModifier         int `json:"resupply_modifier"`
	AttackedModifier         int `json:"attacked_modifier"`
	EngineReductionPerDetach int `json:"engine_reduction_per_detachment"`
	StarvationThreshold      int `json:"starvation_threshold"`
	SurrenderCheckTarget     int `json:"surrender_check_target"`
}

// Naval travel and embarkation figures.
type Naval struct {
	FriendlyMilesPerDay   int     `json:"friendly_miles_per_day"`
	HostileMilesPerDay    int     `json:"hostile_miles_per_day"`
	RiverineMilesPerDay   int     `json:"riverine_miles_per_day"`
	EmbarkDays            int     `json:"embark_days"`
	DisembarkDays         int     `json:"disembark_days"`
	BlockadeSupplyPenalty float64 `json:"blockade_supply_penalty"`
}

// Messaging covers courier speed and interception odds.
type Messaging struct {
	FriendlySuccessNumerator   int `json:"friendly_success_numerator"`
	FriendlySuccessDenominator int `json:"friendly_success_denominator"`
	HostileSuccessNumerator    int `json:"hostile_success_numerator"`
	HostileSuccessDenominator  int `json:"hostile_success_denominator"`
	FriendlyMilesPerDay        int `json:"friendly_miles_per_day"`
	NeutralMilesPerDay         int `json:"neutral_miles_per_day"`
	HostileMilesPerDay         int `json:"hostile_miles_per_day"`
}

// Mercenary upkeep constants.
type Mercenary struct {
	InfantryUpkeepPerDay       int `json:"infantry_upkeep_per_day"`
	CavalryUpkeepPerDay        int `json:"cavalry_upkeep_per_day"`
	GraceDaysWithoutPay        int `json:"grace_days_without_pay"`
	MoralePenaltyUnpaid        int `json:"morale_penalty_unpaid"`
	DesertionChanceNumerator   int `json:"desertion_chance_numerator"`
	DesertionChanceDenominator int `json:"desertion_chance_denominator"`
}

// Recruitment timing and revolt odds.
type Recruitment struct {
	MusterDurationDays    int `json:"muster_duration_days"`
	CooldownDays          int `json:"cooldown_days"`
	RevoltChance          int `json:"revolt_chance"` // out of 6
	RecentlyConqueredDays int `json:"recently_conquered_days"`
	RevoltInfantryDie     int `json:"revolt_infantry_die"`
	RevoltInfantryScale   int `json:"revolt_infantry_scale"`
	RevoltInfantryMinimum int `json:"revolt_infantry_minimum"`
	SuppliedDays          int `json:"supplied_days"`
}

// Operations tuning for covert actions.
type Operations struct {
	BaseSuccessTarget        int `json:"base_success_target"`
	SimpleModifier           int `json:"simple_modifier"`
	ComplexModifier          int `json:"complex_modifier"`
	HostileTerritoryModifier int `json:"hostile_territory_modifier"`
	LootCostDefault          int `json:"loot_cost_default"`
}

// Rules is the complete rule table handed to every subsystem.
type Rules struct {
	Movement    Movement    `json:"movement"`
	Battle      Battle      `json:"battle"`
	Supply      Supply      `json:"supply"`
	Morale      Morale      `json:"morale"`
	Visibility  Visibility  `json:"visibility"`
	Siege       Siege       `json:"siege"`
	Naval       Naval       `json:"naval"`
	Messaging   Messaging   `json:"messaging"`
	Mercenary   Mercenary   `json:"mercenary"`
	Recruitment Recruitment `json:"recruitment"`
	Operations  Operations  `json:"operations"`
}

// Default returns the standard rule table.
func Default() Rules {
	return Rules{
		Movement: Movement{
			RoadStandardMilesPerDay:    12,
			RoadForcedMilesPerDay:      18,
			OffroadStandardMilesPerDay: 6,
			OffroadForcedMilesPerDay:   9,
			NightMilesPerDay:           6,
			NightForcedMilesPerDay:     12,
			CavalryForcedMultiplier:    2,
			ColumnLengthThreshold:      6.0,
			ColumnCappedStandardSpeed:  6,
			ColumnCappedForcedSpeed:    12,
			NightWrongPathChance:       2,
		},
		Battle: Battle{
			RoutThreshold:             2,
			RetreatHexesMin:           1,
			RetreatHexesMax:           6,
			RetreatSupplyLossDie:      6,
			RetreatSupplyLossPercent:  10,
			CaptureChanceMinor:        1,
			CaptureChanceMajor:        2,
			NumericBonusRatio:         0.1,
			AssaultLoserExtraCasualty: 0.10,
		},
		Supply: Supply{
			InfantryCapacity:         15,
			NoncombatantCapacity:     15,
			CavalryCapacity:          75,
			WagonCapacity:            1000,
			InfantryConsumption:      1,
			NoncombatantConsumption:  1,
			CavalryConsumption:       10,
			WagonConsumption:         10,
			BaseNoncombatantRatio:       0.25,
			SpartanRatio:                0.125,
			ExclusiveSkirmisherRatio:    0.10,
			WizardSupplyEncumbrance:     1000,
			ForagingMultiplier:          500,
			ForagingLimitPerSeason:      5,
			TorchRevoltChance:           1,
			ForageRevoltChanceRepeat:    2,
			ForageRevoltHostileModifier: 1,
			TorchRevoltHostileModifier:  1,
			RevoltCooldownDays:          365,
			RecentlyConqueredDays:       90,
		},
		Morale: Morale{
			DefaultResting:            9,
			DefaultMax:                12,
			ForcedMarchLossPerWeek:    1,
			StarvationLossPerDay:      1,
			StarvationDissolutionDays: 14,
		},
		Visibility: Visibility{
			BaseRadius:            1,
			CavalryBonus:          1,
			OutriderBonus:         1,
			BadWeatherPenalty:     1,
			VeryBadWeatherPenalty: 2,
		},
		Siege: Siege{
			TownThreshold:            10,
			CityThreshold:            15,
			FortressThreshold:        20,
			WeeklyModifier:           -1,
			DiseaseModifier:          -1,
			ResupplyModifier:         2,
			AttackedModifier:         1,
			EngineReductionPerDetach: 1,
			StarvationThreshold:      0,
			SurrenderCheckTarget:     12,
		},
		Naval: Naval{
			FriendlyMilesPerDay:   48,
			HostileMilesPerDay:    36,
			RiverineMilesPerDay:   36,
			EmbarkDays:            1,
			DisembarkDays:         1,
			BlockadeSupplyPenalty: 0.5,
		},
		Messaging: Messaging{
			FriendlySuccessNumerator:   19,
			FriendlySuccessDenominator: 20,
			HostileSuccessNumerator:    5,
			HostileSuccessDenominator:  6,
			FriendlyMilesPerDay:        48,
			NeutralMilesPerDay:         42,
			HostileMilesPerDay:         36,
		},
		Mercenary: Mercenary{
			InfantryUpkeepPerDay:       1,
			CavalryUpkeepPerDay:        3,
			GraceDaysWithoutPay:        3,
			MoralePenaltyUnpaid:        1,
			DesertionChanceNumerator:   1,
			DesertionChanceDenominator: 6,
		},
		Recruitment: Recruitment{
			MusterDurationDays:    30,
			CooldownDays:          365,
			RevoltChance:          1,
			RecentlyConqueredDays: 90,
			RevoltInfantryDie:     20,
			RevoltInfantryScale:   500,
			RevoltInfantryMinimum: 500,
			SuppliedDays:          14,
		},
		Operations: Operations{
			BaseSuccessTarget:        7,
			SimpleModifier:           2,
			ComplexModifier:          -2,
			HostileTerritoryModifier: -1,
			LootCostDefault:          100,
		},
	}
}
