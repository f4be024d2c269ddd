// Package movement implements the march planner contract: per-leg daily
// allowances, order validation, and the night-fork diversion check.
package movement

import (
	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
	"github.com/talgya/warmarch/internal/supply"
)

// Validation is the outcome of checking a movement order against the rules.
type Validation struct {
	Valid bool
	Error string
}

// ValidateMovementOrder rejects the combinations the rules forbid: wagons
// off-road, night marches off-road, and wagons at river fords.
func ValidateMovementOrder(
	army *campaign.Army,
	offRoadLegs []bool,
	fordLegs []bool,
	isNight bool,
) Validation {
	wagons := army.TotalWagons()

	if anyTrue(offRoadLegs) && wagons > 0 {
		return Validation{Error: "cannot travel off-road with wagons"}
	}
	if isNight && anyTrue(offRoadLegs) {
		return Validation{Error: "cannot night march off-road"}
	}
	if anyTrue(fordLegs) && wagons > 0 {
		return Validation{Error: "cannot ford rivers with wagons"}
	}
	return Validation{Valid: true}
}

func anyTrue(flags []bool) bool {
	for _, f := range flags {
		if f {
			return true
		}
	}
	return false
}

// Options carries the per-leg context for an allowance calculation.
type Options struct {
	OnRoad          bool
	Traits          []campaign.Trait
	WeatherModifier int // negative miles in bad weather
	Rules           rules.Rules
}

// DailyMovementMiles returns how far the army can march in one day under
// the given movement type. Road/off-road bases come from the rule table;
// cavalry-only armies double the forced rate; weather subtracts miles unless
// the commander is a Ranger; columns longer than the threshold cap out at
// the reduced column speeds.
func DailyMovementMiles(
	c *campaign.Campaign,
	army *campaign.Army,
	movementType campaign.MovementType,
	opts Options,
) float64 {
	m := opts.Rules.Movement

	var base int
	switch movementType {
	case campaign.MoveForced:
		base = m.OffroadForcedMilesPerDay
		if opts.OnRoad {
			base = m.RoadForcedMilesPerDay
		}
	case campaign.MoveNight:
		// Night marching is road-only; the off-road case is rejected by
		// validation and yields no allowance here.
		base = 0
		if opts.OnRoad {
			base = m.NightMilesPerDay
		}
	default:
		base = m.OffroadStandardMilesPerDay
		if opts.OnRoad {
			base = m.RoadStandardMilesPerDay
		}
	}

	if movementType == campaign.MoveForced && cavalryOnly(c, army) {
		base *= m.CavalryForcedMultiplier
	}

	if !campaign.HasTrait(opts.Traits, campaign.TraitRanger) {
		base += opts.WeatherModifier
	}
	base = rules.Max(0, base)

	column := army.ColumnLengthMiles
	if column == 0 {
		column = supply.ColumnLengthMiles(c, army, opts.Rules)
	}
	if column > m.ColumnLengthThreshold {
		capped := base
		switch movementType {
		case campaign.MoveStandard:
			capped = m.ColumnCappedStandardSpeed
		case campaign.MoveForced:
			capped = m.ColumnCappedForcedSpeed
		}
		return float64(rules.Min(base, capped))
	}
	return float64(base)
}

func cavalryOnly(c *campaign.Campaign, army *campaign.Army) bool {
	if len(army.Detachments) == 0 {
		return false
	}
	for _, det := range army.Detachments {
		if !c.UnitTypes[det.UnitTypeID].IsCavalry() {
			return false
		}
	}
	return true
}

// ShouldTakeWrongFork rolls whether a night column misses its turning at a
// fork. The chance is expressed as pips on a d6 in the rule table.
func ShouldTakeWrongFork(seed string, r rules.Rules) (bool, error) {
	roll, err := rng.RollDice(seed, "1d6")
	if err != nil {
		return false, err
	}
	return roll.Total <= r.Movement.NightWrongPathChance, nil
}
