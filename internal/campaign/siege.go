package campaign

// Siege modifier kinds. A modifier with a non-nil Value applies that value
// directly; otherwise the kind selects a figure from the rule table.
const (
	SiegeModifierDisease  = "disease"
	SiegeModifierResupply = "resupply"
	SiegeModifierAttacked = "attacked"
)

// SiegeModifier adjusts the weekly threshold update.
type SiegeModifier struct {
	Type  string `json:"type,omitempty"`
	Value *int   `json:"value,omitempty"`
}

// SiegeAttempt records one assault made during the siege.
type SiegeAttempt struct {
	Day     int    `json:"day"`
	Outcome string `json:"outcome"`
}

// Siege is an ongoing investment of a stronghold.
type Siege struct {
	ID                 SiegeID         `json:"id"`
	StrongholdID       StrongholdID    `json:"stronghold_id"`
	AttackerArmyIDs    []ArmyID        `json:"attacker_army_ids"`
	DefenderArmyID     *ArmyID         `json:"defender_army_id,omitempty"`
	StartedOnDay       int             `json:"started_on_day"`
	WeeksElapsed       int             `json:"weeks_elapsed"`
	CurrentThreshold   int             `json:"current_threshold"`
	ThresholdModifiers []SiegeModifier `json:"threshold_modifiers,omitempty"`
	SiegeEnginesCount  int             `json:"siege_engines_count"`
	Attempts           []SiegeAttempt  `json:"attempts,omitempty"`
	Status             SiegeStatus     `json:"status"`
}

// HasAttacker reports whether the army already takes part in the siege.
func (s *Siege) HasAttacker(id ArmyID) bool {
	for _, existing := range s.AttackerArmyIDs {
		if existing == id {
			return true
		}
	}
	return false
}
