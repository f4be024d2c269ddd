// Package harrying resolves skirmisher raids against marching armies:
// killing stragglers, torching supply wagons, or stealing from the train.
package harrying

import (
	"errors"
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
)

// Raid objectives.
const (
	ObjectiveKill  = "kill"
	ObjectiveTorch = "torch"
	ObjectiveSteal = "steal"
)

const (
	baseSuccessThreshold = 2
	casualtyRatioPct     = 20
	harriedPenalty       = 0.5
)

var (
	// ErrNoDetachments reports a raid with nothing detached to carry it out.
	ErrNoDetachments = errors.New("harrying requires at least one detachment")
	// ErrNoSoldiers reports a detached force with zero soldiers.
	ErrNoSoldiers = errors.New("harrying detachment has no soldiers")
	// ErrUnknownObjective reports an objective outside kill, torch, or steal.
	ErrUnknownObjective = errors.New("unknown harrying objective")
)

// Result is the outcome of a single harrying attempt.
type Result struct {
	Success             bool   `json:"success"`
	Detail              string `json:"detail"`
	Roll                int    `json:"roll"`
	Modifier            int    `json:"modifier"`
	InflictedCasualties int    `json:"inflicted_casualties,omitempty"`
	AttackerLosses      int    `json:"attacker_losses,omitempty"`
	SuppliesBurned      int    `json:"supplies_burned,omitempty"`
	SuppliesStolen      int    `json:"supplies_stolen,omitempty"`
	LootStolen          int    `json:"loot_stolen,omitempty"`
}

// Resolve executes a harrying attempt from attacker against target using the
// detached detachments. Skirmishers and cavalry widen the success window.
// Regardless of outcome the attacker spends its day harrying and the target
// is slowed for the rest of it.
func Resolve(
	c *campaign.Campaign,
	attacker, target *campaign.Army,
	detached []*campaign.Detachment,
	objective string,
) (Result, error) {
	if len(detached) == 0 {
		return Result{}, ErrNoDetachments
	}
	totalSoldiers := 0
	for _, det := range detached {
		totalSoldiers += det.Soldiers
	}
	if totalSoldiers <= 0 {
		return Result{}, ErrNoSoldiers
	}
	switch objective {
	case ObjectiveKill, ObjectiveTorch, ObjectiveSteal:
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownObjective, objective)
	}

	modifier := raidModifier(c.UnitTypes, detached)
	seed := fmt.Sprintf("harry:%d:%d:%d", attacker.ID, target.ID, c.CurrentDay)
	roll, err := rng.RollDice(seed, "1d6")
	if err != nil {
		return Result{}, err
	}
	success := roll.Total <= rules.Min(6, baseSuccessThreshold+modifier)

	markHarryingState(attacker, target, c.CurrentDay, objective)

	if !success {
		losses := rules.Max(1, totalSoldiers*casualtyRatioPct/100)
		applyCasualtiesToDetachments(detached, losses)
		return Result{
			Success:        false,
			Detail:         fmt.Sprintf("harrying failed: detachment lost %d soldiers", losses),
			Roll:           roll.Total,
			Modifier:       modifier,
			AttackerLosses: losses,
		}, nil
	}

	result := Result{Success: true, Roll: roll.Total, Modifier: modifier}
	switch objective {
	case ObjectiveKill:
		casualties := rules.Max(1, totalSoldiers*casualtyRatioPct/100)
		applyCasualties(target, casualties)
		result.InflictedCasualties = casualties
		result.Detail = fmt.Sprintf("harrying success: inflicted %d casualties", casualties)

	case ObjectiveTorch:
		burnRoll, err := rng.RollDice(seed+":torch", "2d6")
		if err != nil {
			return Result{}, err
		}
		burned := totalSoldiers * rules.Max(1, burnRoll.Total+modifier)
		removed := rules.Min(burned, target.SuppliesCurrent)
		target.SuppliesCurrent -= removed
		result.SuppliesBurned = removed
		result.Detail = fmt.Sprintf("harrying success: torched %d supplies", removed)

	case ObjectiveSteal:
		stealRoll, err := rng.RollDice(seed+":steal", "1d6")
		if err != nil {
			return Result{}, err
		}
		haul := totalSoldiers * rules.Max(1, stealRoll.Total+modifier)
		lootTaken := rules.Min(haul, target.LootCarried)
		target.LootCarried -= lootTaken
		attacker.LootCarried += lootTaken

		suppliesTaken := 0
		if remaining := haul - lootTaken; remaining > 0 {
			capacity := rules.Max(0, attacker.SuppliesCapacity-attacker.SuppliesCurrent)
			suppliesTaken = rules.Min(rules.Min(remaining, target.SuppliesCurrent), capacity)
			target.SuppliesCurrent -= suppliesTaken
			attacker.SuppliesCurrent += suppliesTaken
		}
		result.LootStolen = lootTaken
		result.SuppliesStolen = suppliesTaken
		result.Detail = fmt.Sprintf("harrying success: stole %d loot", lootTaken)
		if suppliesTaken > 0 {
			result.Detail += fmt.Sprintf(" and %d supplies", suppliesTaken)
		}
	}
	return result, nil
}

func raidModifier(unitTypes map[campaign.UnitTypeID]*campaign.UnitType, detached []*campaign.Detachment) int {
	hasSkirmisher, hasCavalry := false, false
	for _, det := range detached {
		ut := unitTypes[det.UnitTypeID]
		if ut == nil {
			continue
		}
		if ut.HasAbility(campaign.AbilitySkirmisher) {
			hasSkirmisher = true
		}
		if ut.Category == "cavalry" {
			hasCavalry = true
		}
	}
	mod := 0
	if hasSkirmisher {
		mod++
	}
	if hasCavalry {
		mod += 2
	}
	return mod
}

func markHarryingState(attacker, target *campaign.Army, currentDay int, objective string) {
	attacker.Status = campaign.Harrying
	attacker.MovementPointsRemaining = 0

	target.StatusEffects.Harried = &campaign.HarriedEffect{
		Day:       currentDay,
		Objective: objective,
		Penalty:   harriedPenalty,
	}
	if target.MovementPointsRemaining > harriedPenalty {
		target.MovementPointsRemaining = harriedPenalty
	}
}

// applyCasualties removes soldiers from the target's detachments front to
// back, spilling into noncombatants once the line is empty.
func applyCasualties(target *campaign.Army, casualties int) {
	remaining := casualties
	for i := range target.Detachments {
		if remaining <= 0 {
			break
		}
		loss := rules.Min(target.Detachments[i].Soldiers, remaining)
		target.Detachments[i].Soldiers -= loss
		remaining -= loss
	}
	if remaining > 0 {
		target.NoncombatantCount = rules.Max(0, target.NoncombatantCount-remaining)
	}
}

func applyCasualtiesToDetachments(detached []*campaign.Detachment, losses int) {
	remaining := losses
	for _, det := range detached {
		if remaining <= 0 {
			break
		}
		loss := rules.Min(det.Soldiers, remaining)
		det.Soldiers -= loss
		remaining -= loss
	}
}
