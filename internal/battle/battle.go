// Package battle resolves multi-army engagements: per-army rolls with
// modifier breakdowns, a casualty and morale table keyed on the roll
// difference, routs, commander capture, and retreats.
//
// The resolver is total for well-formed input: degenerate numerics (zero
// strength, empty enemy rolls) are absorbed by floors and clamps so a battle
// always produces a defined outcome.
package battle

import (
	"fmt"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/morale"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
)

// Roll-difference breakpoints for the casualty and capture tables.
const (
	majorCaptureDiff        = 6
	minorCaptureDiff        = 4
	majorCasualtyDiff       = 6
	significantCasualtyDiff = 4
	moderateCasualtyDiff    = 2
)

// Options configures one battle: flat per-side modifiers, per-army
// modifiers and fixed rolls by army id, and the seed prefixes each side's
// rolls derive from.
type Options struct {
	AttackerModifier   int
	DefenderModifier   int
	AttackerModifiers  map[campaign.ArmyID]int
	DefenderModifiers  map[campaign.ArmyID]int
	AttackerFixedRolls map[campaign.ArmyID]int
	DefenderFixedRolls map[campaign.ArmyID]int
	AttackerSeed       string
	DefenderSeed       string
}

// ArmyRecord is the per-army outcome: the final roll with its modifier
// breakdown, and the casualties and morale shift applied.
type ArmyRecord struct {
	Roll              int            `json:"roll"`
	Modifiers         map[string]int `json:"modifiers,omitempty"`
	CasualtyPct       float64        `json:"casualty_pct"`
	MoraleDelta       int            `json:"morale_delta"`
	Routed            bool           `json:"routed,omitempty"`
	RetreatHexes      int            `json:"retreat_hexes,omitempty"`
	CommanderCaptured bool           `json:"commander_captured,omitempty"`
}

// Result summarises a resolved battle. It is consumed by the caller and
// never persisted as-is.
type Result struct {
	Winner             string // "attacker" or "defender"
	AttackerRecords    map[campaign.ArmyID]*ArmyRecord
	DefenderRecords    map[campaign.ArmyID]*ArmyRecord
	RollDifference     int
	CapturedCommanders []campaign.CommanderID
}

// sideContext caches the values shared by every army on one side.
type sideContext struct {
	strength     float64
	seed         string
	fixedRolls   map[campaign.ArmyID]int
	modifiers    map[campaign.ArmyID]int
	sideModifier int
}

// Resolve fights one battle between the two army lists, mutating the armies
// in place (casualties, supplies, morale, status). Each side must hold at
// least one army; that precondition is the caller's.
func Resolve(
	attackers, defenders []*campaign.Army,
	unitTypes map[campaign.UnitTypeID]*campaign.UnitType,
	opts Options,
	r rules.Rules,
) (*Result, error) {
	if opts.AttackerSeed == "" {
		opts.AttackerSeed = "attacker-battle"
	}
	if opts.DefenderSeed == "" {
		opts.DefenderSeed = "defender-battle"
	}

	attackerStrength := sideStrength(attackers, unitTypes)
	defenderStrength := sideStrength(defenders, unitTypes)

	attackerCtx := sideContext{
		strength:     attackerStrength,
		seed:         opts.AttackerSeed,
		fixedRolls:   opts.AttackerFixedRolls,
		modifiers:    opts.AttackerModifiers,
		sideModifier: opts.AttackerModifier,
	}
	defenderCtx := sideContext{
		strength:     defenderStrength,
		seed:         opts.DefenderSeed,
		fixedRolls:   opts.DefenderFixedRolls,
		modifiers:    opts.DefenderModifiers,
		sideModifier: opts.DefenderModifier,
	}

	attackerRecords, err := rollSide(attackers, attackerCtx, defenderStrength, r)
	if err != nil {
		return nil, err
	}
	defenderRecords, err := rollSide(defenders, defenderCtx, attackerStrength, r)
	if err != nil {
		return nil, err
	}

	attackerBest := bestRoll(attackerRecords)
	defenderBest := bestRoll(defenderRecords)
	raw := attackerBest - defenderBest

	// An exact tie goes to the defender with difference zero. Preserved
	// verbatim from the tabletop rules.
	winner := "defender"
	difference := -raw
	if raw > 0 {
		winner = "attacker"
		difference = raw
	} else if raw == 0 {
		difference = 0
	}

	result := &Result{
		Winner:          winner,
		AttackerRecords: attackerRecords,
		DefenderRecords: defenderRecords,
		RollDifference:  difference,
	}

	for _, army := range attackers {
		rec := attackerRecords[army.ID]
		if err := applyResolution(army, rec, rec.Roll-defenderBest, winner == "attacker", attackerCtx.seed, r); err != nil {
			return nil, err
		}
		if rec.CommanderCaptured {
			result.CapturedCommanders = append(result.CapturedCommanders, army.CommanderID)
		}
	}
	for _, army := range defenders {
		rec := defenderRecords[army.ID]
		if err := applyResolution(army, rec, rec.Roll-attackerBest, winner == "defender", defenderCtx.seed, r); err != nil {
			return nil, err
		}
		if rec.CommanderCaptured {
			result.CapturedCommanders = append(result.CapturedCommanders, army.CommanderID)
		}
	}

	// Retreat pass for the losing side.
	losers := attackers
	losingRecords := attackerRecords
	losingSeed := attackerCtx.seed
	if winner == "attacker" {
		losers = defenders
		losingRecords = defenderRecords
		losingSeed = defenderCtx.seed
	}
	for _, army := range losers {
		if err := applyRetreat(army, losingRecords[army.ID], difference, losingSeed, r); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// sideStrength sums soldiers weighted by unit battle multiplier, floored at
// one so strength ratios never divide by zero.
func sideStrength(armies []*campaign.Army, unitTypes map[campaign.UnitTypeID]*campaign.UnitType) float64 {
	strength := 0.0
	for _, army := range armies {
		for _, det := range army.Detachments {
			multiplier := 1.0
			if ut := unitTypes[det.UnitTypeID]; ut != nil && ut.BattleMultiplier > 0 {
				multiplier = ut.BattleMultiplier
			}
			strength += float64(det.Soldiers) * multiplier
		}
	}
	return rules.Max(1.0, strength)
}

func rollSide(
	armies []*campaign.Army,
	ctx sideContext,
	enemyStrength float64,
	r rules.Rules,
) (map[campaign.ArmyID]*ArmyRecord, error) {
	records := make(map[campaign.ArmyID]*ArmyRecord, len(armies))
	for _, army := range armies {
		rec, err := rollForArmy(army, ctx, enemyStrength, r)
		if err != nil {
			return nil, err
		}
		records[army.ID] = rec
	}
	return records, nil
}

func rollForArmy(
	army *campaign.Army,
	ctx sideContext,
	enemyStrength float64,
	r rules.Rules,
) (*ArmyRecord, error) {
	base, fixed := ctx.fixedRolls[army.ID]
	if !fixed {
		roll, err := rng.RollDice(fmt.Sprintf("%s:%d", ctx.seed, army.ID), "2d6")
		if err != nil {
			return nil, err
		}
		base = roll.Total
	}

	modifiers := make(map[string]int)
	if numeric := numericAdvantage(ctx.strength, enemyStrength, r); numeric != 0 {
		modifiers["numeric"] = numeric
	}
	if bonus := rules.Clamp(rules.FloorDiv(army.MoraleCurrent-army.MoraleResting, 2), -2, 2); bonus != 0 {
		modifiers["morale"] = bonus
	}
	if army.StatusEffects.SickOrExhausted {
		modifiers["exhaustion"] = -1
	}
	if perArmy := ctx.modifiers[army.ID]; perArmy != 0 {
		modifiers["order"] = perArmy
	}
	if ctx.sideModifier != 0 {
		modifiers["side"] = ctx.sideModifier
	}

	total := base
	for _, mod := range modifiers {
		total += mod
	}
	return &ArmyRecord{Roll: total, Modifiers: modifiers}, nil
}

// numericAdvantage grants one pip per configured ratio of outnumbering, or
// a flat +3 against an enemy with no strength at all.
func numericAdvantage(own, enemy float64, r rules.Rules) int {
	if enemy <= 0 {
		return 3
	}
	ratio := own / enemy
	if ratio <= 1 {
		return 0
	}
	return int((ratio - 1) / r.Battle.NumericBonusRatio)
}

func bestRoll(records map[campaign.ArmyID]*ArmyRecord) int {
	best := 0
	first := true
	for _, rec := range records {
		if first || rec.Roll > best {
			best = rec.Roll
			first = false
		}
	}
	return best
}

// casualtyRow is one entry in the outcome table: casualty fractions for the
// winning and losing side plus their morale shifts.
type casualtyRow struct {
	winnerCasualty float64
	loserCasualty  float64
	winnerMorale   int
	loserMorale    int
}

func lookupCasualties(diff int) casualtyRow {
	switch {
	case diff >= majorCasualtyDiff:
		return casualtyRow{0.05, 0.20, +2, -2}
	case diff >= significantCasualtyDiff:
		return casualtyRow{0.05, 0.15, +2, -2}
	case diff >= moderateCasualtyDiff:
		return casualtyRow{0.05, 0.10, +1, -2}
	case diff >= 1:
		return casualtyRow{0.10, 0.10, 0, -1}
	default:
		return casualtyRow{0.05, 0.05, -1, 0}
	}
}

// applyResolution applies the per-army casualty and morale outcome, plus
// the commander capture check for armies that lost badly. rollDifference is
// this army's roll minus the enemy side's best roll.
func applyResolution(
	army *campaign.Army,
	rec *ArmyRecord,
	rollDifference int,
	winning bool,
	seed string,
	r rules.Rules,
) error {
	diff := rollDifference
	if diff < 0 {
		diff = -diff
	}
	row := lookupCasualties(diff)

	casualty := row.loserCasualty
	moraleDelta := row.loserMorale
	if winning {
		casualty = row.winnerCasualty
		moraleDelta = row.winnerMorale
	}
	rec.CasualtyPct = casualty
	rec.MoraleDelta = moraleDelta

	for i := range army.Detachments {
		det := &army.Detachments[i]
		det.Soldiers = rules.Max(1, int(float64(det.Soldiers)*(1-casualty)))
	}
	army.SuppliesCurrent = int(float64(army.SuppliesCurrent) * (1 - casualty))
	morale.Adjust(army, moraleDelta)

	if army.MoraleCurrent <= r.Battle.RoutThreshold {
		army.Status = campaign.Routed
		rec.Routed = true
	}

	captureTarget := 0
	switch {
	case !winning && rollDifference <= -majorCaptureDiff:
		captureTarget = r.Battle.CaptureChanceMajor
	case !winning && rollDifference <= -minorCaptureDiff:
		captureTarget = r.Battle.CaptureChanceMinor
	}
	if captureTarget > 0 {
		roll, err := rng.RollDice(fmt.Sprintf("%s:capture:%d", seed, army.ID), "1d6")
		if err != nil {
			return err
		}
		if roll.Total <= captureTarget {
			rec.CommanderCaptured = true
		}
	}
	return nil
}

// applyRetreat handles the losing side after resolution: routed armies fall
// back a rolled number of hexes and shed supplies; a side that merely lost
// still has a 1-in-2 chance of giving ground.
func applyRetreat(army *campaign.Army, rec *ArmyRecord, difference int, seed string, r rules.Rules) error {
	if rec.Routed {
		retreatRoll, err := rng.RollDice(
			fmt.Sprintf("%s:retreat:%d", seed, army.ID),
			fmt.Sprintf("1d%d", r.Battle.RetreatHexesMax),
		)
		if err != nil {
			return err
		}
		rec.RetreatHexes = rules.Clamp(retreatRoll.Total, r.Battle.RetreatHexesMin, r.Battle.RetreatHexesMax)

		lossRoll, err := rng.RollDice(
			fmt.Sprintf("%s:retreat-supplies:%d", seed, army.ID),
			fmt.Sprintf("1d%d", r.Battle.RetreatSupplyLossDie),
		)
		if err != nil {
			return err
		}
		lossPct := float64(lossRoll.Total*r.Battle.RetreatSupplyLossPercent) / 100.0
		army.SuppliesCurrent = int(float64(army.SuppliesCurrent) * (1 - lossPct))
		return nil
	}

	if difference <= 0 {
		return nil
	}

	fallback, err := rng.RollDice(fmt.Sprintf("%s:fallback:%d", seed, army.ID), "1d2")
	if err != nil {
		return err
	}
	if fallback.Total == 1 {
		rec.RetreatHexes = r.Battle.RetreatHexesMin
	}
	return nil
}
