// Package recruitment implements army raising: drawing soldiers from the
// hexes a stronghold commands, mustering over a fixed number of days, and
// the revolt risk of pressing a region twice in a year.
package recruitment

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/talgya/warmarch/internal/campaign"
	"github.com/talgya/warmarch/internal/hexmap"
	"github.com/talgya/warmarch/internal/rng"
	"github.com/talgya/warmarch/internal/rules"
	"github.com/talgya/warmarch/internal/supply"
)

var (
	// ErrNoEligibleHexes reports a stronghold with no recruitment catchment.
	ErrNoEligibleHexes = errors.New("no eligible hexes for recruitment")
	// ErrNoSettlement reports a catchment with zero settlement value.
	ErrNoSettlement = errors.New("recruitment area has zero settlement")
)

// Input holds the validated parameters for starting a recruitment.
type Input struct {
	Stronghold     *campaign.Stronghold
	Commander      *campaign.Commander
	RallyHexID     campaign.HexID
	PendingOrderID campaign.OrderID
}

// StartResult is returned when a recruitment project begins.
type StartResult struct {
	Project *campaign.RecruitmentProject
	Revolts []*campaign.Army
	Detail  string
}

// CompletionOptions controls how a finished project forms its army.
type CompletionOptions struct {
	ArmyName     string
	InfantryType *campaign.UnitType
	CavalryType  *campaign.UnitType
	Rules        rules.Rules
}

// Completion is returned when a recruitment project finishes.
type Completion struct {
	Army   *campaign.Army
	Detail string
}

// Start creates a recruitment project from the stronghold's catchment and
// applies any revolt consequences immediately. Infantry is drawn from every
// eligible hex's settlement value and rounded to the nearest hundred;
// good-country hexes add cavalry and wagons in proportion.
func Start(c *campaign.Campaign, in Input, r rules.Rules) (StartResult, error) {
	eligible := EligibleHexes(c, in.Stronghold)
	if len(eligible) == 0 {
		return StartResult{}, ErrNoEligibleHexes
	}

	infantryRaw := 0
	cavalryRaw, wagonRaw := 0.0, 0.0
	for _, hexID := range eligible {
		hx := c.Map.Hexes[hexID]
		infantryRaw += hx.Settlement
		if hx.IsGoodCountry {
			cavalryRaw += float64(hx.Settlement) * 0.25
			wagonRaw += float64(hx.Settlement) * 0.05
		}
	}
	if infantryRaw <= 0 {
		return StartResult{}, ErrNoSettlement
	}

	infantry := roundToNearestHundred(infantryRaw)
	if infantry <= 0 {
		return StartResult{}, fmt.Errorf("recruitment yielded too few infantry")
	}

	scale := float64(infantry) / float64(infantryRaw)
	cavalry := int(math.Round(cavalryRaw * scale))
	wagons := int(math.Round(wagonRaw * scale))
	noncombatants := int(float64(infantry) * r.Supply.BaseNoncombatantRatio)

	var revolts []*campaign.Army
	for _, hexID := range eligible {
		hx := c.Map.Hexes[hexID]
		shouldRevolt, err := checkRevolt(c, hx, r)
		if err != nil {
			return StartResult{}, err
		}
		if shouldRevolt {
			rebel, err := spawnRevolt(c, hx, r)
			if err != nil {
				return StartResult{}, err
			}
			revolts = append(revolts, rebel)
		}
		day := c.CurrentDay
		hx.LastRecruitedDay = &day
	}

	project := &campaign.RecruitmentProject{
		ID:              c.NextProjectID(),
		StrongholdID:    in.Stronghold.ID,
		FactionID:       in.Commander.FactionID,
		CommanderID:     in.Commander.ID,
		RallyHexID:      in.RallyHexID,
		StartedOnDay:    c.CurrentDay,
		CompletesOnDay:  c.CurrentDay + r.Recruitment.MusterDurationDays,
		Infantry:        infantry,
		Cavalry:         cavalry,
		Wagons:          wagons,
		Noncombatants:   noncombatants,
		SourceHexIDs:    eligible,
		PendingOrderID:  in.PendingOrderID,
		RevoltTriggered: len(revolts) > 0,
	}
	c.Recruitments[project.ID] = project

	detail := fmt.Sprintf(
		"recruitment underway; infantry=%d, cavalry=%d, wagons=%d, completes day %d",
		infantry, cavalry, wagons, project.CompletesOnDay,
	)
	return StartResult{Project: project, Revolts: revolts, Detail: detail}, nil
}

// Complete forms the mustered army at the rally hex, supplied for a fixed
// number of days, and removes the project.
func Complete(c *campaign.Campaign, project *campaign.RecruitmentProject, opts CompletionOptions) (Completion, error) {
	commander := c.Commanders[project.CommanderID]
	if commander == nil {
		return Completion{}, fmt.Errorf("assigned commander not found")
	}
	if c.Map.Hexes[project.RallyHexID] == nil {
		return Completion{}, fmt.Errorf("rally hex not found")
	}

	r := opts.Rules
	army := campaign.NewArmy(c.NextArmyID(), commander.ID, project.RallyHexID)
	army.Name = opts.ArmyName
	army.MoraleCurrent = r.Morale.DefaultResting
	army.MoraleResting = r.Morale.DefaultResting
	army.MoraleMax = r.Morale.DefaultMax
	army.NoncombatantCount = project.Noncombatants
	army.NoncombatantPercentage = r.Supply.BaseNoncombatantRatio

	detID := c.NextDetachmentID()
	army.Detachments = append(army.Detachments, campaign.Detachment{
		ID:         detID,
		UnitTypeID: opts.InfantryType.ID,
		Soldiers:   project.Infantry,
		Wagons:     project.Wagons,
		Name:       opts.ArmyName + " Infantry",
	})
	if project.Cavalry > 0 && opts.CavalryType != nil {
		army.Detachments = append(army.Detachments, campaign.Detachment{
			ID:         detID + 1,
			UnitTypeID: opts.CavalryType.ID,
			Soldiers:   project.Cavalry,
			Name:       opts.ArmyName + " Cavalry",
		})
	}

	c.Armies[army.ID] = army
	rally := project.RallyHexID
	commander.CurrentHexID = &rally

	snapshot := supply.BuildSnapshot(c, army, r)
	army.SuppliesCapacity = snapshot.Capacity
	army.DailySupplyConsumption = snapshot.Consumption
	army.ColumnLengthMiles = snapshot.ColumnLengthMiles
	army.SuppliesCurrent = snapshot.Consumption * r.Recruitment.SuppliedDays

	detail := fmt.Sprintf("army %s raised with %d infantry", opts.ArmyName, project.Infantry)
	if project.Cavalry > 0 {
		detail += fmt.Sprintf(" and %d cavalry", project.Cavalry)
	}

	delete(c.Recruitments, project.ID)
	return Completion{Army: army, Detail: detail}, nil
}

// EligibleHexes returns the hexes that recruit to the stronghold: same
// faction, settled, and no other stronghold strictly nearer. Distance ties
// go to the higher-priority stronghold type, then the lower id.
func EligibleHexes(c *campaign.Campaign, stronghold *campaign.Stronghold) []campaign.HexID {
	strongholdHex := c.Map.Hexes[stronghold.HexID]
	if strongholdHex == nil {
		return nil
	}
	center := strongholdHex.Coord()
	priority := stronghold.Type.Priority()

	var eligible []campaign.HexID
	for _, hx := range c.Map.Hexes {
		if hx.ControllingFactionID == nil || *hx.ControllingFactionID != stronghold.ControllingFactionID {
			continue
		}
		if hx.Settlement <= 0 {
			continue
		}
		coord := hx.Coord()
		distance := hexmap.Distance(coord, center)

		closerElsewhere := false
		for _, other := range c.Strongholds {
			if other.ID == stronghold.ID {
				continue
			}
			otherHex := c.Map.Hexes[other.HexID]
			if otherHex == nil {
				continue
			}
			otherDistance := hexmap.Distance(coord, otherHex.Coord())
			if otherDistance < distance {
				closerElsewhere = true
				break
			}
			if otherDistance == distance {
				otherPriority := other.Type.Priority()
				if otherPriority > priority || (otherPriority == priority && other.ID < stronghold.ID) {
					closerElsewhere = true
					break
				}
			}
		}
		if !closerElsewhere {
			eligible = append(eligible, hx.ID)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i] < eligible[j] })
	return eligible
}

func roundToNearestHundred(v int) int {
	return int(math.Round(float64(v)/100.0) * 100)
}

// checkRevolt rolls for unrest in a source hex that was already recruited
// from within the cooldown window. Recently conquered hexes double the odds.
func checkRevolt(c *campaign.Campaign, hx *campaign.Hex, r rules.Rules) (bool, error) {
	if hx.LastRecruitedDay == nil ||
		c.CurrentDay-*hx.LastRecruitedDay > r.Recruitment.CooldownDays {
		return false, nil
	}

	chance := r.Recruitment.RevoltChance
	if hx.LastControlChangeDay != nil &&
		c.CurrentDay-*hx.LastControlChangeDay <= r.Recruitment.RecentlyConqueredDays {
		chance = rules.Min(6, chance*2)
	}
	if chance <= 0 {
		return false, nil
	}

	roll, err := rng.RollDice(fmt.Sprintf("recruit-revolt:%d:%d", hx.ID, c.CurrentDay), "1d6")
	if err != nil {
		return false, err
	}
	return roll.Total <= chance, nil
}

// spawnRevolt creates a rebel faction, commander, and army at the hex. The
// rebel force is all infantry, sized by a seeded die roll.
func spawnRevolt(c *campaign.Campaign, hx *campaign.Hex, r rules.Rules) (*campaign.Army, error) {
	faction := &campaign.Faction{
		ID:    c.NextFactionID(),
		Name:  fmt.Sprintf("Rebels of Hex %d", hx.ID),
		Color: "#777777",
	}
	c.Factions[faction.ID] = faction

	hexID := hx.ID
	commanderID := c.NextCommanderID()
	commander := &campaign.Commander{
		ID:           commanderID,
		Name:         fmt.Sprintf("Rebel Leader %d", commanderID),
		FactionID:    faction.ID,
		Age:          30,
		CurrentHexID: &hexID,
	}
	c.Commanders[commander.ID] = commander

	roll, err := rng.RollDice(
		fmt.Sprintf("revolt-size:%d:%d", hx.ID, c.CurrentDay),
		fmt.Sprintf("1d%d", r.Recruitment.RevoltInfantryDie),
	)
	if err != nil {
		return nil, err
	}
	infantry := rules.Max(r.Recruitment.RevoltInfantryMinimum, roll.Total*r.Recruitment.RevoltInfantryScale)

	army := campaign.NewArmy(c.NextArmyID(), commander.ID, hx.ID)
	army.Name = faction.Name
	army.MoraleCurrent = r.Morale.DefaultResting
	army.MoraleResting = r.Morale.DefaultResting
	army.MoraleMax = r.Morale.DefaultMax
	army.NoncombatantCount = int(float64(infantry) * r.Supply.BaseNoncombatantRatio)
	army.StatusEffects.Revolt = true
	army.Detachments = []campaign.Detachment{{
		ID:         c.NextDetachmentID(),
		UnitTypeID: defaultInfantryType(c),
		Soldiers:   infantry,
	}}
	c.Armies[army.ID] = army

	snapshot := supply.BuildSnapshot(c, army, r)
	army.SuppliesCapacity = snapshot.Capacity
	army.DailySupplyConsumption = snapshot.Consumption
	army.SuppliesCurrent = snapshot.Consumption * r.Recruitment.SuppliedDays

	return army, nil
}

func defaultInfantryType(c *campaign.Campaign) campaign.UnitTypeID {
	ids := make([]campaign.UnitTypeID, 0, len(c.UnitTypes))
	for id := range c.UnitTypes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if c.UnitTypes[id].Category == "infantry" {
			return id
		}
	}
	if len(ids) > 0 {
		return ids[len(ids)-1]
	}
	return 1
}
