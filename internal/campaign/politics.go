package campaign

import "strings"

// Commander trait names the rules recognise. Matching is case-insensitive.
const (
	TraitLogistician = "Logistician"
	TraitSpartan     = "Spartan"
	TraitRanger      = "Ranger"
	TraitRaider      = "Raider"
	TraitOutrider    = "Outrider"
	TraitHonorable   = "Honorable"
	TraitPoet        = "Poet"
)

// Trait is a commander trait catalog entry.
type Trait struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// HasTrait reports whether the named trait appears in the list.
func HasTrait(traits []Trait, name string) bool {
	for _, t := range traits {
		if strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

// Commander leads armies and carries traits that bend the rules around them.
type Commander struct {
	ID           CommanderID     `json:"id"`
	Name         string          `json:"name"`
	FactionID    FactionID       `json:"faction_id"`
	Age          int             `json:"age"`
	Traits       []Trait         `json:"traits,omitempty"`
	CurrentHexID *HexID          `json:"current_hex_id,omitempty"`
	Status       CommanderStatus `json:"status"`

	CapturedByFactionID *FactionID `json:"captured_by_faction_id,omitempty"`
}

// FactionRelation records how one faction stands toward another.
type FactionRelation struct {
	OtherFactionID FactionID    `json:"other_faction_id"`
	Relation       RelationType `json:"relation_type"`
	SinceDay       int          `json:"since_day"`
}

// Faction controls territory, strongholds, and commanders.
type Faction struct {
	ID          FactionID                     `json:"id"`
	Name        string                        `json:"name"`
	Color       string                        `json:"color"`
	Description string                        `json:"description,omitempty"`
	Relations   map[FactionID]FactionRelation `json:"relations,omitempty"`
}

// RelationTo returns the stance toward another faction, defaulting to
// neutral when no relation is recorded. A faction is allied with itself.
func (f *Faction) RelationTo(other FactionID) RelationType {
	if f == nil {
		return Neutral
	}
	if f.ID == other {
		return Allied
	}
	if rel, ok := f.Relations[other]; ok {
		return rel.Relation
	}
	return Neutral
}
