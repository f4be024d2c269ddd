// Package supply implements the logistics rules: carrying capacity, daily
// consumption, column length, foraging, and torching. All functions mutate
// the campaign aggregate in place and report outcomes as plain values.
package supply

import (
	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/hexmap"
	"github.com/talgya/warmarch/internal/rules"
)

// Snapshot summarises the logistics figures derived from an army's
// detachments. The engine refreshes these onto the army each morning.
type Snapshot struct {
	TotalSoldiers     int
	TotalCavalry      int
	TotalWagons       int
	Noncombatants     int
	Capacity          int
	Consumption       int
	ColumnLengthMiles float64
	WizardDetachments int
}

// totals aggregates the composition figures capacity and consumption share.
type totals struct {
	infantry      int
	cavalry       int
	wagons        int
	noncombatants int
}

// BuildSnapshot calculates capacity, consumption, and column length for an
// army from its current detachments and commander traits.
func BuildSnapshot(c *campaign.Campaign, army *campaign.Army, r rules.Rules) Snapshot {
	traits := c.TraitsFor(army)

	soldiers := army.TotalSoldiers()
	cavalry := cavalrySoldiers(c.UnitTypes, army)
	wagons := army.TotalWagons()

	noncombatants := calculateNoncombatants(army, c.UnitTypes, traits, r)
	tot := totals{
		infantry:      soldiers - cavalry,
		cavalry:       cavalry,
		wagons:        wagons,
		noncombatants: noncombatants,
	}

	return Snapshot{
		TotalSoldiers:     soldiers,
		TotalCavalry:      cavalry,
		TotalWagons:       wagons,
		Noncombatants:     noncombatants,
		Capacity:          calculateCapacity(tot, traits, army, r),
		Consumption:       calculateConsumption(tot, r),
		ColumnLengthMiles: columnLength(tot, traits),
		WizardDetachments: countWizardDetachments(army, r.Supply.WizardSupplyEncumbrance),
	}
}

// ColumnLengthMiles computes the marching column length for an army without
// building a full snapshot. Used by the movement planner.
func ColumnLengthMiles(c *campaign.Campaign, army *campaign.Army, r rules.Rules) float64 {
	traits := c.TraitsFor(army)
	cavalry := cavalrySoldiers(c.UnitTypes, army)
	tot := totals{
		infantry:      army.TotalSoldiers() - cavalry,
		cavalry:       cavalry,
		wagons:        army.TotalWagons(),
		noncombatants: calculateNoncombatants(army, c.UnitTypes, traits, r),
	}
	return columnLength(tot, traits)
}

func cavalrySoldiers(unitTypes map[campaign.UnitTypeID]*campaign.UnitType, army *campaign.Army) int {
	total := 0
	for _, det := range army.Detachments {
		if unitTypes[det.UnitTypeID].IsCavalry() {
			total += det.Soldiers
		}
	}
	return total
}

func calculateNoncombatants(
	army *campaign.Army,
	unitTypes map[campaign.UnitTypeID]*campaign.UnitType,
	traits []campaign.Trait,
	r rules.Rules,
) int {
	soldiers := army.TotalSoldiers()

	exclusiveSkirmisher := army.TotalWagons() == 0 && len(army.Detachments) > 0
	for _, det := range army.Detachments {
		ut := unitTypes[det.UnitTypeID]
		if !ut.HasAbility(campaign.AbilityOffroadFullSpeed) ||
			!ut.HasAbility(campaign.AbilityActsAsCavalryForaging) {
			exclusiveSkirmisher = false
			break
		}
	}

	ratio := r.Supply.BaseNoncombatantRatio
	switch {
	case exclusiveSkirmisher:
		ratio = r.Supply.ExclusiveSkirmisherRatio
	case campaign.HasTrait(traits, campaign.TraitSpartan):
		ratio = r.Supply.SpartanRatio
	}
	return int(float64(soldiers) * ratio)
}

func calculateCapacity(tot totals, traits []campaign.Trait, army *campaign.Army, r rules.Rules) int {
	total := (tot.infantry+tot.noncombatants)*r.Supply.InfantryCapacity +
		tot.cavalry*r.Supply.CavalryCapacity +
		tot.wagons*r.Supply.WagonCapacity

	if campaign.HasTrait(traits, campaign.TraitLogistician) {
		total = int(float64(total) * 1.20)
	}
	total -= countWizardDetachments(army, r.Supply.WizardSupplyEncumbrance) * r.Supply.WizardSupplyEncumbrance
	return rules.Max(0, total)
}

func calculateConsumption(tot totals, r rules.Rules) int {
	return (tot.infantry+tot.noncombatants)*r.Supply.InfantryConsumption +
		tot.cavalry*r.Supply.CavalryConsumption +
		tot.wagons*r.Supply.WagonConsumption
}

func columnLength(tot totals, traits []campaign.Trait) float64 {
	infantry := float64(tot.infantry+tot.noncombatants) / 5000.0
	cavalry := float64(tot.cavalry) / 2000.0
	wagons := float64(tot.wagons) / 50.0
	column := rules.Max(infantry, rules.Max(cavalry, wagons))
	if campaign.HasTrait(traits, campaign.TraitLogistician) {
		column *= 0.5
	}
	return column
}

// Wizard detachments do not march, but they weigh on the supply train at a
// fixed rate recorded in their instance data.
func countWizardDetachments(army *campaign.Army, encumbrance int) int {
	count := 0
	for _, det := range army.Detachments {
		if det.InstanceData["supplies_equivalent"] == float64(encumbrance) {
			count++
		}
	}
	return count
}

// ForagingRange returns how many hexes out an army can forage or torch:
// base visibility, plus one with cavalry, plus one more for an Outrider
// commander with cavalry, minus the weather penalty (Rangers ignore weather).
func ForagingRange(c *campaign.Campaign, army *campaign.Army, weather string, r rules.Rules) int {
	traits := c.TraitsFor(army)
	radius := r.Visibility.BaseRadius

	hasCavalry := false
	for _, det := range army.Detachments {
		ut := c.UnitTypes[det.UnitTypeID]
		if ut.IsCavalry() || ut.HasAbility(campaign.AbilityActsAsCavalryForaging) {
			hasCavalry = true
			break
		}
	}
	if hasCavalry {
		radius += r.Visibility.CavalryBonus
		if campaign.HasTrait(traits, campaign.TraitOutrider) {
			radius += r.Visibility.OutriderBonus
		}
	}

	penalty := 0
	switch weather {
	case "bad", "storm":
		penalty = r.Visibility.BadWeatherPenalty
	case "very_bad":
		penalty = r.Visibility.VeryBadWeatherPenalty
	}
	if campaign.HasTrait(traits, campaign.TraitRanger) {
		penalty = 0
	}
	return rules.Max(0, radius-penalty)
}

// FailedHex records why a target hex could not be foraged or torched.
type FailedHex struct {
	HexID  campaign.HexID
	Reason string
}

// ForageOutcome reports the result of a foraging action.
type ForageOutcome struct {
	Success         bool
	SuppliesGained  int
	ForagedHexes    []campaign.HexID
	FailedHexes     []FailedHex
	RevoltTriggered bool
}

// TorchOutcome reports the result of a torching action.
type TorchOutcome struct {
	Success         bool
	TorchedHexes    []campaign.HexID
	FailedHexes     []FailedHex
	RevoltTriggered bool
}

// Options carries the optional knobs for forage and torch actions. RollD6
// injects the revolt die; when nil no revolt can trigger, which keeps the
// functions deterministic for callers that do not care.
type Options struct {
	Weather string
	RollD6  func() int
	Rules   rules.Rules
}

// Forage gathers supplies from the target hexes. The campaign state is
// mutated (army supplies, hex foraging counters); a triggered revolt is only
// signalled so the caller can orchestrate rebel army creation centrally.
func Forage(c *campaign.Campaign, army *campaign.Army, targets []campaign.HexID, opts Options) ForageOutcome {
	r := opts.Rules
	armyHex := c.Map.Hexes[army.CurrentHexID]
	if armyHex == nil {
		return ForageOutcome{FailedHexes: []FailedHex{{army.CurrentHexID, "army hex missing"}}}
	}

	traits := c.TraitsFor(army)
	forageRange := ForagingRange(c, army, opts.Weather, r)
	snapshot := BuildSnapshot(c, army, r)

	out := ForageOutcome{}
	for _, hexID := range targets {
		target := c.Map.Hexes[hexID]
		switch {
		case target == nil:
			out.FailedHexes = append(out.FailedHexes, FailedHex{hexID, "hex not found"})
			continue
		case hexmap.Distance(armyHex.Coord(), target.Coord()) > forageRange:
			out.FailedHexes = append(out.FailedHexes, FailedHex{hexID, "hex out of range"})
			continue
		case target.IsTorched:
			out.FailedHexes = append(out.FailedHexes, FailedHex{hexID, "hex torched"})
			continue
		case target.ForagingTimesRemaining <= 0:
			out.FailedHexes = append(out.FailedHexes, FailedHex{hexID, "foraging exhausted"})
			continue
		case target.Settlement <= 0:
			out.FailedHexes = append(out.FailedHexes, FailedHex{hexID, "no settlement"})
			continue
		}

		if checkRevolt(c, army, target, "forage", opts.RollD6, r) {
			out.RevoltTriggered = true
		}

		gained := target.Settlement * r.Supply.ForagingMultiplier
		if campaign.HasTrait(traits, campaign.TraitRaider) {
			gained = int(float64(gained) * 1.10)
		}

		target.ForagingTimesRemaining--
		day := c.CurrentDay
		target.LastForagedDay = &day
		out.SuppliesGained += gained
		out.ForagedHexes = append(out.ForagedHexes, hexID)
	}

	if out.SuppliesGained > 0 {
		capacity := army.SuppliesCapacity
		if capacity == 0 {
			capacity = snapshot.Capacity
		}
		army.SuppliesCurrent = rules.Min(capacity, army.SuppliesCurrent+out.SuppliesGained)
	}

	out.Success = len(out.ForagedHexes) > 0
	return out
}

// Torch burns the target hexes and every hex within the army's reach of
// each, zeroing their foraging value.
func Torch(c *campaign.Campaign, army *campaign.Army, targets []campaign.HexID, opts Options) TorchOutcome {
	r := opts.Rules
	armyHex := c.Map.Hexes[army.CurrentHexID]
	if armyHex == nil {
		return TorchOutcome{FailedHexes: []FailedHex{{army.CurrentHexID, "army hex missing"}}}
	}

	torchRange := ForagingRange(c, army, opts.Weather, r)

	out := TorchOutcome{}
	for _, hexID := range targets {
		target := c.Map.Hexes[hexID]
		if target == nil {
			out.FailedHexes = append(out.FailedHexes, FailedHex{hexID, "hex not found"})
			continue
		}
		if hexmap.Distance(armyHex.Coord(), target.Coord()) > torchRange {
			out.FailedHexes = append(out.FailedHexes, FailedHex{hexID, "hex out of range"})
			continue
		}

		if checkRevolt(c, army, target, "torch", opts.RollD6, r) {
			out.RevoltTriggered = true
		}

		applyTorch(c, target, torchRange)
		out.TorchedHexes = append(out.TorchedHexes, hexID)
	}

	if len(out.TorchedHexes) > 0 {
		army.Status = campaign.Torching
	}
	out.Success = len(out.TorchedHexes) > 0
	return out
}

func applyTorch(c *campaign.Campaign, target *campaign.Hex, torchRange int) {
	day := c.CurrentDay
	target.IsTorched = true
	target.ForagingTimesRemaining = 0
	target.LastTorchedDay = &day

	coords, err := hexmap.InRange(target.Coord(), torchRange)
	if err != nil {
		return
	}
	for _, coord := range coords {
		if coord.Q == target.Q && coord.R == target.R {
			continue
		}
		affected := c.Map.HexAt(coord.Q, coord.R)
		if affected == nil {
			continue
		}
		affected.IsTorched = true
		affected.ForagingTimesRemaining = 0
		affected.LastTorchedDay = &day
	}
}

func checkRevolt(
	c *campaign.Campaign,
	army *campaign.Army,
	target *campaign.Hex,
	action string,
	rollD6 func() int,
	r rules.Rules,
) bool {
	if rollD6 == nil {
		return false
	}

	var chance int
	if action == "forage" {
		// Foraging only risks revolt when the hex was already foraged
		// within the cooldown window.
		if target.LastForagedDay == nil ||
			c.CurrentDay-*target.LastForagedDay > r.Supply.RevoltCooldownDays {
			return false
		}
		chance = r.Supply.ForageRevoltChanceRepeat
	} else {
		chance = r.Supply.TorchRevoltChance
	}

	if classifyTerritory(c, army, target) == campaign.TerritoryHostile {
		if action == "forage" {
			chance += r.Supply.ForageRevoltHostileModifier
		} else {
			chance += r.Supply.TorchRevoltHostileModifier
		}
	}
	if campaign.HasTrait(c.TraitsFor(army), campaign.TraitHonorable) {
		chance = rules.Max(0, chance-1)
	}
	return rollD6() <= chance
}

func classifyTerritory(c *campaign.Campaign, army *campaign.Army, target *campaign.Hex) campaign.Territory {
	if target.ControllingFactionID == nil {
		return campaign.TerritoryNeutral
	}
	cmd := c.CommanderFor(army)
	if cmd != nil && cmd.FactionID == *target.ControllingFactionID {
		return campaign.TerritoryFriendly
	}
	return campaign.TerritoryHostile
}
